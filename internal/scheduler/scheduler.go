// Package scheduler: фоновые задачи по cron. Прогрев горячих инструментов, health check кэша
// и чистка истёкших окон лимитера.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"momentumRider/internal/domain"
)

// Warmer прогревает кэш и отдаёт его состояние.
type Warmer interface {
	Warm(ctx context.Context) (int, error)
	CacheHealth(ctx context.Context) domain.CacheHealth
}

// Sweeper чистит истёкшие окна.
type Sweeper interface {
	Sweep() int
}

// Config: расписания задач (формат cron с секундами или @every).
type Config struct {
	WarmCron   string
	HealthCron string
	SweepCron  string
	JobTimeout time.Duration
}

// Scheduler управляет cron-задачами. Задача не запускается, пока не закончился её предыдущий запуск.
type Scheduler struct {
	cron    *cron.Cron
	warmer  Warmer
	sweeper Sweeper
	timeout time.Duration
	log     *slog.Logger
}

// New создаёт планировщик.
func New(warmer Warmer, sweeper Sweeper, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		warmer:  warmer,
		sweeper: sweeper,
		timeout: time.Minute,
		log:     log,
	}
}

// RegisterAll регистрирует задачи. Пустое расписание отключает задачу.
func (s *Scheduler) RegisterAll(cfg Config) error {
	if cfg.JobTimeout > 0 {
		s.timeout = cfg.JobTimeout
	}
	jobs := []struct {
		name string
		spec string
		fn   func()
	}{
		{"warm", cfg.WarmCron, s.warmTask},
		{"health", cfg.HealthCron, s.healthTask},
		{"sweep", cfg.SweepCron, s.sweepTask},
	}
	for _, j := range jobs {
		if j.spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(j.spec, j.fn); err != nil {
			return fmt.Errorf("register %s task: %w", j.name, err)
		}
		s.log.Debug("task registered", "task", j.name, "spec", j.spec)
	}
	return nil
}

// Start запускает планировщик.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", "tasks", len(s.cron.Entries()))
}

// Stop останавливает планировщик и ждёт завершения текущих задач (или ctx).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out", "error", ctx.Err())
	}
}

func (s *Scheduler) warmTask() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.warmer.Warm(ctx)
	if err != nil {
		s.log.Error("scheduled warm failed", "error", err)
		return
	}
	s.log.Debug("scheduled warm done", "warmed", n)
}

func (s *Scheduler) healthTask() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	h := s.warmer.CacheHealth(ctx)
	if h.Status != domain.CacheHealthy {
		s.log.Warn("cache health", "status", h.Status, "tier", h.Tier)
		return
	}
	s.log.Debug("cache health", "status", h.Status, "tier", h.Tier)
}

func (s *Scheduler) sweepTask() {
	s.sweeper.Sweep()
}
