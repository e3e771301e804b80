package momentum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

const publishTimeout = 2 * time.Second

// Score: скор по тикеру через кэш. Неизвестный тикер: NotFoundError. Refresh сбрасывает запись
// и считает заново. Битая запись в кэше удаляется и пересчитывается.
func (u *UseCase) Score(ctx context.Context, q domain.ScoreQuery) (domain.MomentumScore, error) {
	ticker := domain.NormalizeTicker(q.Ticker)
	inst, found, err := u.registry.Lookup(ctx, ticker)
	if err != nil {
		return domain.MomentumScore{}, domain.NewInternalError("instrument lookup failed", err)
	}
	if !found {
		return domain.MomentumScore{}, domain.NewNotFoundError("ticker", ticker)
	}

	key := cacheKey(ticker, u.horizonSet)
	if q.Refresh {
		if err := u.cache.Invalidate(ctx, key); err != nil {
			u.log.Warn("cache invalidate failed", "key", key, "error", err)
		}
	}

	score, hit, err := u.getOrCompute(ctx, key, ticker)
	if err != nil && hit {
		u.log.Warn("corrupted cache entry, recomputing", "key", key, "error", err)
		if err := u.cache.Invalidate(ctx, key); err != nil {
			u.log.Warn("cache invalidate failed", "key", key, "error", err)
		}
		score, _, err = u.getOrCompute(ctx, key, ticker)
	}
	if err != nil {
		return domain.MomentumScore{}, classify(err)
	}

	if q.IncludeName {
		score = score.WithName(inst.Name)
	}
	u.log.Debug("score served", "ticker", ticker, "cache_hit", hit, "composite", score.CompositeScore)
	return score, nil
}

// getOrCompute возвращает hit == true вместе с ошибкой, если из кэша пришла нечитаемая запись.
func (u *UseCase) getOrCompute(ctx context.Context, key, ticker string) (domain.MomentumScore, bool, error) {
	raw, hit, err := u.cache.GetOrLoad(ctx, key, u.loader(ticker))
	if err != nil {
		return domain.MomentumScore{}, false, err
	}
	var score domain.MomentumScore
	if err := json.Unmarshal(raw, &score); err != nil {
		return domain.MomentumScore{}, hit, fmt.Errorf("decode cached score: %w", err)
	}
	if score.Ticker != ticker {
		return domain.MomentumScore{}, hit, fmt.Errorf("cached score for %q under key of %q", score.Ticker, ticker)
	}
	return score, hit, nil
}

// loader считает скор для тикера: цены, расчёт, событие в брокер.
func (u *UseCase) loader(ticker string) ports.Loader {
	return func(ctx context.Context, _ string) ([]byte, error) {
		series, err := u.prices.FetchWeekly(ctx, ticker, domain.MaxWeeks(u.horizons)+1)
		if err != nil {
			return nil, fmt.Errorf("fetch prices %s: %w", ticker, err)
		}
		if len(series) == 0 {
			return nil, domain.NewInternalError("no price history for "+ticker, nil)
		}

		score := u.calc.Score(ticker, series, u.horizons)
		value, err := json.Marshal(score)
		if err != nil {
			return nil, err
		}
		u.log.Info("score computed", "ticker", ticker, "composite", score.CompositeScore, "approximate", score.Approximate)

		u.publish(ctx, score)
		return value, nil
	}
}

// publish отправляет событие о расчёте. Best effort: сбой брокера не роняет расчёт.
func (u *UseCase) publish(ctx context.Context, score domain.MomentumScore) {
	if u.broker == nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := u.broker.PublishScore(pctx, domain.NewScoreEvent(score, u.horizonSet)); err != nil {
		u.log.Warn("score event publish failed", "ticker", score.Ticker, "error", err)
		return
	}
	u.log.Debug("score event published", "ticker", score.Ticker)
}

// Warm прогревает кэш для горячих инструментов. Возвращает число прогретых ключей.
func (u *UseCase) Warm(ctx context.Context) (int, error) {
	hot, err := u.registry.Hot(ctx)
	if err != nil {
		return 0, domain.NewInternalError("hot instruments lookup failed", err)
	}
	keys := make([]string, 0, len(hot))
	tickers := make(map[string]string, len(hot))
	for _, inst := range hot {
		key := cacheKey(inst.Ticker, u.horizonSet)
		keys = append(keys, key)
		tickers[key] = inst.Ticker
	}
	n := u.cache.Warm(ctx, keys, func(ctx context.Context, key string) ([]byte, error) {
		return u.loader(tickers[key])(ctx, key)
	})
	return n, nil
}

// CacheHealth: состояние кэша (обвязка над health check сервиса кэша).
func (u *UseCase) CacheHealth(ctx context.Context) domain.CacheHealth {
	return u.cache.HealthCheck(ctx)
}

// HandleScoreEvent вызывается консьюмером при получении события о расчёте.
func (u *UseCase) HandleScoreEvent(ctx context.Context, ev domain.ScoreEvent) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WriteScore(ctx, ev); err != nil {
		u.log.Warn("analytics write", "ticker", ev.Ticker, "error", err)
		return err
	}
	u.log.Info("score stored to click", "ticker", ev.Ticker, "event_id", ev.ID, "composite", ev.CompositeScore)
	return nil
}

// classify оставляет операционные ошибки и отмену как есть, остальное превращает во внутреннюю.
func classify(err error) error {
	if _, ok := domain.AsError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.NewInternalError("momentum computation failed", err)
}
