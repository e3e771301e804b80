package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint: цена закрытия недели. Date хранится как календарная дата (полночь UTC).
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// WeeklyPriceSeries: недельные точки по возрастанию даты, возможны пропуски (праздники, нет данных).
type WeeklyPriceSeries []PricePoint

// Latest возвращает последнюю точку ряда. ok == false для пустого ряда.
func (s WeeklyPriceSeries) Latest() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Horizon: горизонт доходности в неделях.
type Horizon struct {
	Name  string
	Weeks int
}

// Duration возвращает горизонт как time.Duration (неделя = 7 суток).
func (h Horizon) Duration() time.Duration {
	return time.Duration(h.Weeks) * 7 * 24 * time.Hour
}

// WeeksHorizon создаёт горизонт с именем вида "12w".
func WeeksHorizon(weeks int) Horizon {
	return Horizon{Name: strconv.Itoa(weeks) + "w", Weeks: weeks}
}

// DefaultHorizons: 1, 4 и 12 недель.
var DefaultHorizons = []Horizon{WeeksHorizon(1), WeeksHorizon(4), WeeksHorizon(12)}

// HorizonSetID возвращает детерминированный идентификатор набора горизонтов, например "1w-4w-12w".
func HorizonSetID(horizons []Horizon) string {
	names := make([]string, len(horizons))
	for i, h := range horizons {
		names[i] = h.Name
	}
	return strings.Join(names, "-")
}

// MaxWeeks возвращает самый длинный горизонт набора.
func MaxWeeks(horizons []Horizon) int {
	longest := 0
	for _, h := range horizons {
		if h.Weeks > longest {
			longest = h.Weeks
		}
	}
	return longest
}

// MomentumScore: результат расчёта. После создания не меняется; устаревший скор заменяется новым.
// Approximate выставляется, если хотя бы один горизонт посчитан от самой ранней точки ряда.
type MomentumScore struct {
	Ticker         string                     `json:"ticker"`
	Name           string                     `json:"name,omitempty"`
	HorizonReturns map[string]decimal.Decimal `json:"horizonReturns"`
	CompositeScore decimal.Decimal            `json:"compositeScore"`
	Approximate    bool                       `json:"approximate"`
	ComputedAt     time.Time                  `json:"computedAt"`
}

// WithName возвращает копию скора с заполненным названием инструмента.
func (m MomentumScore) WithName(name string) MomentumScore {
	returns := make(map[string]decimal.Decimal, len(m.HorizonReturns))
	for k, v := range m.HorizonReturns {
		returns[k] = v
	}
	m.HorizonReturns = returns
	m.Name = name
	return m
}

// Instrument: инструмент из фиксированного набора. Hot-инструменты прогреваются в кэше при старте.
type Instrument struct {
	Ticker string `yaml:"ticker" json:"ticker"`
	Name   string `yaml:"name" json:"name"`
	Hot    bool   `yaml:"hot" json:"hot"`
}

// NormalizeTicker приводит тикер к каноническому виду (верхний регистр, без пробелов).
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ScoreQuery: запрос скора. Refresh: пропустить кэш и пересчитать.
type ScoreQuery struct {
	Ticker      string
	IncludeName bool
	Refresh     bool
}
