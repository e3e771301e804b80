package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	apihttp "momentumRider/internal/api/http"
	cachectl "momentumRider/internal/api/http/controllers/cache"
	"momentumRider/internal/api/http/controllers/momentum"
	"momentumRider/internal/api/http/controllers/system"
	"momentumRider/internal/api/http/pipeline"
	"momentumRider/internal/cache"
	"momentumRider/internal/calculator"
	"momentumRider/internal/infrastructure/click"
	"momentumRider/internal/infrastructure/kafka"
	"momentumRider/internal/infrastructure/local"
	"momentumRider/internal/infrastructure/pg"
	"momentumRider/internal/infrastructure/redis"
	"momentumRider/internal/infrastructure/yahoo"
	"momentumRider/internal/instruments"
	"momentumRider/internal/pkg/logger"
	"momentumRider/internal/ports"
	"momentumRider/internal/ratelimit"
	"momentumRider/internal/scheduler"
	momentumUsecase "momentumRider/internal/usecase/momentum"
)

const shutdownTimeout = 10 * time.Second

// App: приложение, хранит конфиг и список функций закрытия ресурсов.
type App struct {
	cfg     Config
	closers []func() error
}

// New создаёт приложение с конфигом (подключения открываются в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Run поднимает инфраструктуру, собирает зависимости и запускает HTTP-сервер (блокирующий вызов).
// Redis, PostgreSQL, Kafka и ClickHouse подключаются, только если заданы их адреса.
func (a *App) Run() error {
	log := logger.New(a.cfg.Log)
	slog.SetDefault(log)
	defer a.close(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := a.registry(ctx, log)
	if err != nil {
		return err
	}

	tiered, err := a.cache(log)
	if err != nil {
		return err
	}

	horizons, weights, err := a.cfg.Score.Parse()
	if err != nil {
		return fmt.Errorf("score config: %w", err)
	}
	calc := calculator.New(calculator.WithWeights(weights))
	prices := yahoo.New(a.cfg.Prices, log)

	var broker ports.IProducer
	if a.cfg.Kafka.Configured() {
		p := kafka.NewProducer(&a.cfg.Kafka)
		a.closers = append(a.closers, p.Close)
		broker = p
	}

	var analytics ports.IScoreAnalytics
	if a.cfg.ClickHouse.Configured() {
		ch, err := click.New(&a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		a.closers = append(a.closers, ch.Close)
		w := click.NewScoreWriter(ch)
		if err := w.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse schema: %w", err)
		}
		analytics = w
	}

	uc := momentumUsecase.New(registry, prices, tiered, calc, horizons, broker, analytics, log)

	if a.cfg.Kafka.Configured() && analytics != nil {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, uc, log)
		a.closers = append(a.closers, consumer.Close)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("score consumer failed", "error", err)
			}
		}()
	}

	global, classes := a.cfg.RateLimit.Quotas()
	limiter := ratelimit.New(global, classes, log)

	sched := scheduler.New(uc, limiter, log)
	if err := sched.RegisterAll(scheduler.Config{
		WarmCron:   a.cfg.Cache.WarmCron,
		HealthCron: a.cfg.Cache.HealthCron,
		SweepCron:  a.cfg.RateLimit.SweepCron,
		JobTimeout: a.cfg.Cache.LoadTimeout,
	}); err != nil {
		return err
	}

	if tiered.IsConfigured() {
		h := tiered.HealthCheck(ctx)
		log.Info("cache health at startup", "status", h.Status, "tier", h.Tier)
	}
	if a.cfg.Cache.WarmOnStart {
		go func() {
			n, err := uc.Warm(ctx)
			if err != nil {
				log.Warn("startup warm failed", "error", err)
				return
			}
			log.Info("startup warm done", "warmed", n)
		}()
	}
	sched.Start()

	resp := pipeline.NewResponder(log, a.cfg.Server.Development())
	srv := apihttp.NewServer(a.cfg.Server, log)
	srv.AddController(
		system.New(registry, log),
		momentum.New(uc, limiter, resp, log),
		cachectl.New(uc, limiter, resp, log),
	)

	log.Info("application started",
		"http", a.cfg.Server.Host+":"+a.cfg.Server.Port,
		"redis", a.cfg.Redis.Configured(),
		"db", a.cfg.DB.Configured(),
		"kafka", a.cfg.Kafka.Configured(),
		"clickhouse", a.cfg.ClickHouse.Configured(),
	)

	err = srv.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	sched.Stop(shutdownCtx)
	return err
}

// registry: PostgreSQL, если задан (схема и сид из YAML при пустой таблице), иначе YAML.
func (a *App) registry(ctx context.Context, log *slog.Logger) (ports.IInstrumentRegistry, error) {
	list, err := instruments.Load(a.cfg.Instruments)
	if err != nil {
		return nil, fmt.Errorf("instruments: %w", err)
	}
	if !a.cfg.DB.Configured() {
		return list, nil
	}

	db, err := pg.New(&a.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	if err := pg.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	repo := pg.NewInstrumentRepo(db, log)
	n, err := repo.SeedIfEmpty(ctx, list.All())
	if err != nil {
		return nil, fmt.Errorf("seed instruments: %w", err)
	}
	if n > 0 {
		log.Info("instruments seeded", "count", n)
	}
	return repo, nil
}

// cache: локальный уровень всегда, Redis только если задан.
func (a *App) cache(log *slog.Logger) (*cache.Service, error) {
	fallback, err := local.New(a.cfg.Local)
	if err != nil {
		return nil, fmt.Errorf("local cache: %w", err)
	}
	a.closers = append(a.closers, func() error { fallback.Close(); return nil })

	if !a.cfg.Redis.Configured() {
		return cache.New(nil, fallback, a.cfg.Cache, log), nil
	}
	rdb := redis.New(&a.cfg.Redis)
	a.closers = append(a.closers, rdb.Close)
	return cache.New(redis.NewCache(rdb, log), fallback, a.cfg.Cache, log), nil
}

// close закрывает ресурсы в обратном порядке.
func (a *App) close(log *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn("close failed", "error", err)
		}
	}
}
