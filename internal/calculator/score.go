package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"momentumRider/internal/domain"
)

// Calculator считает momentum score по недельному ряду. Сам по себе без состояния, часы подменяются в тестах.
type Calculator struct {
	now     func() time.Time
	weights map[string]decimal.Decimal
}

// Option настраивает Calculator.
type Option func(*Calculator)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) { c.now = now }
}

// WithWeights задаёт веса горизонтов для композитного скора. Горизонт без веса получает 0.
func WithWeights(weights map[string]decimal.Decimal) Option {
	return func(c *Calculator) { c.weights = weights }
}

// New создаёт калькулятор. Без WithWeights все горизонты равновесны.
func New(opts ...Option) *Calculator {
	c := &Calculator{now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Score считает доходности по каждому горизонту и композитный скор.
// Текущая цена: последняя точка ряда. Историческая: as-of цена на (now - горизонт).
// Композит: взвешенное среднее уже округлённых доходностей, округлённое ещё раз.
func (c *Calculator) Score(ticker string, series domain.WeeklyPriceSeries, horizons []domain.Horizon) domain.MomentumScore {
	now := c.now().UTC()
	latest, _ := series.Latest()

	score := domain.MomentumScore{
		Ticker:         ticker,
		HorizonReturns: make(map[string]decimal.Decimal, len(horizons)),
		ComputedAt:     now,
	}

	returns := make([]decimal.Decimal, len(horizons))
	for i, h := range horizons {
		point, exact, ok := asOf(series, now.Add(-h.Duration()))
		if ok && !exact {
			score.Approximate = true
		}
		returns[i] = ComputeReturn(point.Close, latest.Close)
		score.HorizonReturns[h.Name] = returns[i]
	}
	score.CompositeScore = c.composite(horizons, returns)
	return score
}

func (c *Calculator) composite(horizons []domain.Horizon, returns []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	total := decimal.Zero
	for i, h := range horizons {
		w := decimal.NewFromInt(1)
		if c.weights != nil {
			w = c.weights[h.Name]
		}
		sum = sum.Add(returns[i].Mul(w))
		total = total.Add(w)
	}
	if total.IsZero() {
		return decimal.Zero
	}
	return sum.Div(total).Round(returnPlaces)
}
