// Package momentum: бизнес-логика скоров. Реестр инструментов, кэш, источник цен и калькулятор
// собираются здесь; события о свежих расчётах уходят в брокер, а из брокера в аналитику.
package momentum

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"momentumRider/internal/calculator"
	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

var _ ports.IMomentumUseCase = (*UseCase)(nil)

// keyVersion меняется при несовместимом изменении формата скора в кэше.
const keyVersion = "v1"

// cacheKey формирует ключ скора, например "momentum:v1:SPY:1w-4w-12w".
func cacheKey(ticker, horizonSet string) string {
	return "momentum:" + keyVersion + ":" + ticker + ":" + horizonSet
}

// Config: горизонты и веса композитного скора. Переменные: MOMENTUM_SCORE_HORIZONS, MOMENTUM_SCORE_WEIGHTS.
type Config struct {
	Horizons string `envconfig:"HORIZONS" default:"1,4,12"` // недели через запятую
	Weights  string `envconfig:"WEIGHTS" default:""`        // "1w=0.2,4w=0.3,12w=0.5"; пусто: равные веса
}

// Parse разбирает горизонты и веса.
func (c Config) Parse() ([]domain.Horizon, map[string]decimal.Decimal, error) {
	var horizons []domain.Horizon
	seen := make(map[int]bool)
	for _, part := range strings.Split(c.Horizons, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		weeks, err := strconv.Atoi(strings.TrimSuffix(part, "w"))
		if err != nil || weeks <= 0 {
			return nil, nil, fmt.Errorf("horizon %q: must be a positive number of weeks", part)
		}
		if seen[weeks] {
			return nil, nil, fmt.Errorf("horizon %q: duplicate", part)
		}
		seen[weeks] = true
		horizons = append(horizons, domain.WeeksHorizon(weeks))
	}
	if len(horizons) == 0 {
		horizons = domain.DefaultHorizons
	}

	if strings.TrimSpace(c.Weights) == "" {
		return horizons, nil, nil
	}
	weights := make(map[string]decimal.Decimal)
	for _, part := range strings.Split(c.Weights, ",") {
		name, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, nil, fmt.Errorf("weight %q: want name=value", part)
		}
		w, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil || w.IsNegative() {
			return nil, nil, fmt.Errorf("weight %q: must be a non-negative number", part)
		}
		weights[strings.TrimSpace(name)] = w
	}
	return horizons, weights, nil
}

// UseCase: бизнес-логика скоров. broker и analytics необязательны (nil: выключены).
type UseCase struct {
	registry   ports.IInstrumentRegistry
	prices     ports.IPriceFetcher
	cache      ports.ITieredCache
	calc       *calculator.Calculator
	broker     ports.IProducer
	analytics  ports.IScoreAnalytics
	horizons   []domain.Horizon
	horizonSet string
	log        *slog.Logger
}

// New создаёт юзкейс скоров.
func New(
	registry ports.IInstrumentRegistry,
	prices ports.IPriceFetcher,
	cache ports.ITieredCache,
	calc *calculator.Calculator,
	horizons []domain.Horizon,
	broker ports.IProducer,
	analytics ports.IScoreAnalytics,
	log *slog.Logger,
) *UseCase {
	if len(horizons) == 0 {
		horizons = domain.DefaultHorizons
	}
	return &UseCase{
		registry:   registry,
		prices:     prices,
		cache:      cache,
		calc:       calc,
		broker:     broker,
		analytics:  analytics,
		horizons:   horizons,
		horizonSet: domain.HorizonSetID(horizons),
		log:        log,
	}
}
