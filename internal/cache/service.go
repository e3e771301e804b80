// Package cache: двухуровневый кэш. Распределённый уровень (Redis) опрашивается первым, если он
// настроен и доступен; иначе работает локальный уровень процесса. Локальный уровень нужен только
// чтобы пережить недоступность Redis, поэтому чтения из Redis в него не зеркалируются.
package cache

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

var _ ports.ITieredCache = (*Service)(nil)

const (
	probeKey = "momentum:healthcheck"
	probeTTL = 10 * time.Second
)

var probeValue = []byte("ok")

// Service: кэш-сервис. Состояние доступности Redis принадлежит экземпляру и меняется только health check'ом.
type Service struct {
	remote ports.IDistributedCache
	local  ports.ICacheTier
	cfg    Config
	log    *slog.Logger

	fallbackOnly atomic.Bool
	group        singleflight.Group
}

// New создаёт сервис. remote == nil: распределённый уровень не настроен, сервис работает только
// на локальном уровне и никогда не ходит в сеть.
func New(remote ports.IDistributedCache, local ports.ICacheTier, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{remote: remote, local: local, cfg: cfg.withDefaults(), log: log}
	s.setGauge()
	return s
}

// IsConfigured: задан ли распределённый уровень. Решается один раз при создании.
func (s *Service) IsConfigured() bool {
	return s.remote != nil
}

func (s *Service) distributedActive() bool {
	return s.remote != nil && !s.fallbackOnly.Load()
}

// ActiveTier: уровень, который сейчас обслуживает операции.
func (s *Service) ActiveTier() domain.CacheTier {
	if s.distributedActive() {
		return domain.TierDistributed
	}
	return domain.TierFallback
}

// TTL возвращает TTL записей по умолчанию.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// Get читает ключ из активного уровня. Сбой Redis на этой операции логируется и операция
// повторяется на локальном уровне. Сбой локального уровня возвращается как CacheTierError.
func (s *Service) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.distributedActive() {
		tctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		v, found, err := s.remote.Get(tctx, key)
		cancel()
		if err == nil {
			lookupsTotal.WithLabelValues(string(domain.TierDistributed), result(found)).Inc()
			return v, found, nil
		}
		tierErrorsTotal.WithLabelValues(string(domain.TierDistributed), "get").Inc()
		s.log.Warn("distributed cache get failed, using fallback", "key", key, "error", err)
	}

	v, found, err := s.local.Get(ctx, key)
	if err != nil {
		tierErrorsTotal.WithLabelValues(string(domain.TierFallback), "get").Inc()
		return nil, false, domain.NewCacheTierError(domain.TierFallback, "get", err)
	}
	lookupsTotal.WithLabelValues(string(domain.TierFallback), result(found)).Inc()
	return v, found, nil
}

// Set пишет в активный уровень. ttl <= 0 означает TTL из конфига.
func (s *Service) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.cfg.TTL
	}
	if s.distributedActive() {
		tctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		err := s.remote.Set(tctx, key, value, ttl)
		cancel()
		if err == nil {
			return nil
		}
		tierErrorsTotal.WithLabelValues(string(domain.TierDistributed), "set").Inc()
		s.log.Warn("distributed cache set failed, using fallback", "key", key, "error", err)
	}

	if err := s.local.Set(ctx, key, value, ttl); err != nil {
		tierErrorsTotal.WithLabelValues(string(domain.TierFallback), "set").Inc()
		return domain.NewCacheTierError(domain.TierFallback, "set", err)
	}
	return nil
}

// Invalidate удаляет ключ с обоих уровней (принудительное обновление).
func (s *Service) Invalidate(ctx context.Context, key string) error {
	if s.distributedActive() {
		tctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		err := s.remote.Delete(tctx, key)
		cancel()
		if err != nil {
			tierErrorsTotal.WithLabelValues(string(domain.TierDistributed), "delete").Inc()
			s.log.Warn("distributed cache delete failed", "key", key, "error", err)
		}
	}
	if err := s.local.Delete(ctx, key); err != nil {
		tierErrorsTotal.WithLabelValues(string(domain.TierFallback), "delete").Inc()
		return domain.NewCacheTierError(domain.TierFallback, "delete", err)
	}
	return nil
}

// GetOrLoad: чтение, а при промахе расчёт и запись (write-through) до возврата результата.
// На один ключ одновременно выполняется не больше одного расчёта: остальные ждут его результат.
// Расчёт и запись не отменяются вместе с запросом, который их начал; отменённый вызывающий просто
// перестаёт ждать. Ошибка кэша не роняет запрос: значение пересчитывается.
func (s *Service) GetOrLoad(ctx context.Context, key string, load ports.Loader) ([]byte, bool, error) {
	v, found, err := s.Get(ctx, key)
	switch {
	case err != nil:
		s.log.Warn("cache lookup failed, recomputing", "key", key, "error", err)
	case found:
		return v, true, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		lctx, cancel := s.detached(ctx)
		defer cancel()

		// предыдущий расчёт мог завершиться между нашим промахом и входом сюда
		if v, found, err := s.Get(lctx, key); err == nil && found {
			return loaded{value: v, stored: true}, nil
		}
		return s.loadAndStore(lctx, key, load, "miss")
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.(loaded).value, false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// loaded: результат общего расчёта ключа. stored == false: значение посчитано, но не записано.
type loaded struct {
	value  []byte
	stored bool
}

// detached отвязывает общий расчёт от отмены вызывающего и ограничивает его LoadTimeout.
func (s *Service) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.cfg.LoadTimeout)
}

func (s *Service) loadAndStore(ctx context.Context, key string, load ports.Loader, source string) (loaded, error) {
	v, err := load(ctx, key)
	if err != nil {
		loadsTotal.WithLabelValues(source, "error").Inc()
		return loaded{}, err
	}
	loadsTotal.WithLabelValues(source, "ok").Inc()

	entry := domain.CacheEntry{Key: key, Value: v, TTL: s.cfg.TTL, Tier: s.ActiveTier()}
	if err := s.Set(ctx, entry.Key, entry.Value, entry.TTL); err != nil {
		s.log.Error("cache write failed", "key", key, "error", err)
		return loaded{value: v}, nil
	}
	s.log.Debug("cache entry stored", "key", entry.Key, "tier", entry.Tier, "ttl", entry.TTL, "bytes", len(entry.Value))
	return loaded{value: v, stored: true}, nil
}

// Warm считает и записывает значения для набора горячих ключей, обновляя TTL уже прогретых.
// Прогретым считается только записанный ключ. Ошибки по отдельным ключам логируются и не
// считаются; сам прогрев не падает. Расчёт идёт в общей группе с GetOrLoad, поэтому отмена ctx
// только прекращает ожидание и не обрывает запись для других ожидающих.
// Возвращает число прогретых ключей.
func (s *Service) Warm(ctx context.Context, keys []string, load ports.Loader) int {
	var (
		warmed atomic.Int32
		g      errgroup.Group
	)
	g.SetLimit(s.cfg.WarmConcurrency)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			ch := s.group.DoChan(key, func() (any, error) {
				lctx, cancel := s.detached(ctx)
				defer cancel()
				return s.loadAndStore(lctx, key, load, "warm")
			})

			select {
			case res := <-ch:
				if res.Err != nil {
					s.log.Warn("cache warm failed", "key", key, "error", res.Err)
					return nil
				}
				if !res.Val.(loaded).stored {
					s.log.Warn("cache warm not stored", "key", key)
					return nil
				}
				warmed.Add(1)
			case <-ctx.Done():
				s.log.Warn("cache warm interrupted", "key", key, "error", ctx.Err())
			}
			return nil
		})
	}
	_ = g.Wait()

	n := int(warmed.Load())
	s.log.Info("cache warmed", "keys", len(keys), "warmed", n, "tier", s.ActiveTier())
	return n
}

// HealthCheck пингует Redis с ограничением по времени и делает пробную запись/чтение.
// Ping не прошёл: unreachable, сервис переходит в режим только локального уровня до следующей
// успешной проверки. Ping прошёл, проба нет: degraded. Иначе healthy.
// Без настроенного Redis сеть не трогается: healthy на локальном уровне.
func (s *Service) HealthCheck(ctx context.Context) domain.CacheHealth {
	h := domain.CacheHealth{Configured: s.IsConfigured(), CheckedAt: time.Now().UTC()}
	if !s.IsConfigured() {
		h.Status = domain.CacheHealthy
		h.Tier = domain.TierFallback
		return h
	}

	tctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	err := s.remote.Ping(tctx)
	cancel()
	if err != nil {
		if !s.fallbackOnly.Swap(true) {
			s.log.Warn("distributed cache unreachable, switching to fallback-only mode", "error", err)
		}
		s.setGauge()
		h.Status = domain.CacheUnreachable
		h.Tier = domain.TierFallback
		return h
	}

	if s.fallbackOnly.Swap(false) {
		s.log.Info("distributed cache reachable again, leaving fallback-only mode")
	}
	s.setGauge()

	h.Status = domain.CacheHealthy
	if err := s.probe(ctx); err != nil {
		s.log.Warn("distributed cache degraded", "error", err)
		h.Status = domain.CacheDegraded
	}
	h.Tier = s.ActiveTier()
	return h
}

var errProbeMismatch = errors.New("probe value mismatch")

func (s *Service) probe(ctx context.Context) error {
	tctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	if err := s.remote.Set(tctx, probeKey, probeValue, probeTTL); err != nil {
		return err
	}
	v, found, err := s.remote.Get(tctx, probeKey)
	if err != nil {
		return err
	}
	if !found || !bytes.Equal(v, probeValue) {
		return errProbeMismatch
	}
	return nil
}

func (s *Service) setGauge() {
	if s.distributedActive() {
		distributedUp.Set(1)
		return
	}
	distributedUp.Set(0)
}

func result(found bool) string {
	if found {
		return "hit"
	}
	return "miss"
}
