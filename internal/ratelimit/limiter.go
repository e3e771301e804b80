// Package ratelimit: допуск запросов по фиксированным окнам. Действуют одновременно две квоты:
// глобальная на клиента (все эндпоинты) и квота класса эндпоинта. Запрос проходит, только если
// место есть в обеих.
package ratelimit

import (
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"momentumRider/internal/domain"
)

// Class: класс эндпоинта. У тяжёлых вычислительных эндпоинтов потолок ниже, чем у чтения.
type Class string

const (
	ClassRead    Class = "read"
	ClassCompute Class = "compute"

	// classGlobal: окно глобальной квоты клиента.
	classGlobal Class = "*"
)

var decisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rate_limit_decisions_total",
		Help: "Admission decisions by endpoint class",
	},
	[]string{"class", "decision"},
)

// Quota: не больше Limit запросов за Window. Limit <= 0 отключает квоту.
type Quota struct {
	Limit  int
	Window time.Duration
}

func (q Quota) enabled() bool { return q.Limit > 0 && q.Window > 0 }

// Decision: результат допуска. RetryAfter > 0 только при отказе.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

type windowKey struct {
	client string
	class  Class
}

// window: счётчик одного окна. Проверка и инкремент выполняются под mu.
type window struct {
	mu    sync.Mutex
	start time.Time
	count int
	quota Quota
	dead  bool
}

// roll сбрасывает счётчик, если окно истекло. Вызывается под mu.
func (w *window) roll(now time.Time) {
	if w.start.IsZero() || !now.Before(w.start.Add(w.quota.Window)) {
		w.start = now
		w.count = 0
	}
}

func (w *window) remaining(now time.Time) time.Duration {
	return w.start.Add(w.quota.Window).Sub(now)
}

// Limiter хранит окна по ключу (clientKey, class). Блокировка только на затронутые окна.
type Limiter struct {
	global  Quota
	classes map[Class]Quota
	windows sync.Map
	now     func() time.Time
	log     *slog.Logger
}

// Option настраивает Limiter.
type Option func(*Limiter)

// WithClock подменяет часы (для тестов).
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New создаёт лимитер с глобальной квотой и квотами по классам.
func New(global Quota, classes map[Class]Quota, log *slog.Logger, opts ...Option) *Limiter {
	if log == nil {
		log = slog.Default()
	}
	l := &Limiter{global: global, classes: classes, now: time.Now, log: log}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Limiter) window(k windowKey, q Quota) *window {
	if !q.enabled() {
		return nil
	}
	if w, ok := l.windows.Load(k); ok {
		return w.(*window)
	}
	w, _ := l.windows.LoadOrStore(k, &window{quota: q})
	return w.(*window)
}

// Admit проверяет обе квоты и при успехе увеличивает оба счётчика одним атомарным шагом.
// При отказе ни один счётчик не меняется.
func (l *Limiter) Admit(clientKey string, class Class) Decision {
	for {
		now := l.now()
		// порядок захвата фиксирован: сначала глобальное окно, потом окно класса
		g := l.window(windowKey{clientKey, classGlobal}, l.global)
		c := l.window(windowKey{clientKey, class}, l.classes[class])
		held := make([]*window, 0, 2)
		for _, w := range []*window{g, c} {
			if w != nil {
				w.mu.Lock()
				held = append(held, w)
			}
		}

		retry := false
		for _, w := range held {
			if w.dead {
				retry = true
			}
		}
		if retry {
			unlockAll(held)
			continue
		}

		d := Decision{Allowed: true}
		for _, w := range held {
			w.roll(now)
			if w.count >= w.quota.Limit {
				d.Allowed = false
				if r := w.remaining(now); r > d.RetryAfter {
					d.RetryAfter = r
				}
			}
		}
		if d.Allowed {
			for _, w := range held {
				w.count++
			}
		}
		unlockAll(held)

		if d.Allowed {
			decisionsTotal.WithLabelValues(string(class), "allow").Inc()
		} else {
			decisionsTotal.WithLabelValues(string(class), "deny").Inc()
			l.log.Debug("rate limit exceeded", "client", clientKey, "class", class, "retry_after", d.RetryAfter)
		}
		return d
	}
}

// Check: то же, что Admit, но отказ возвращается как RateLimitExceededError.
func (l *Limiter) Check(clientKey string, class Class) error {
	d := l.Admit(clientKey, class)
	if d.Allowed {
		return nil
	}
	return domain.NewRateLimitExceededError(d.RetryAfter)
}

// Sweep удаляет истёкшие окна и возвращает их число.
func (l *Limiter) Sweep() int {
	now := l.now()
	removed := 0
	l.windows.Range(func(k, v any) bool {
		w := v.(*window)
		w.mu.Lock()
		if !now.Before(w.start.Add(w.quota.Window)) {
			w.dead = true
			l.windows.Delete(k)
			removed++
		}
		w.mu.Unlock()
		return true
	})
	if removed > 0 {
		l.log.Debug("rate limit windows swept", "removed", removed)
	}
	return removed
}

func unlockAll(ws []*window) {
	for i := len(ws) - 1; i >= 0; i-- {
		ws[i].mu.Unlock()
	}
}
