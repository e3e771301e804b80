package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScoreEvent публикуется в брокер после каждого свежего расчёта и пишется в аналитику.
type ScoreEvent struct {
	ID             uuid.UUID                  `json:"id"`
	Ticker         string                     `json:"ticker"`
	HorizonSet     string                     `json:"horizonSet"`
	HorizonReturns map[string]decimal.Decimal `json:"horizonReturns"`
	CompositeScore decimal.Decimal            `json:"compositeScore"`
	Approximate    bool                       `json:"approximate"`
	ComputedAt     time.Time                  `json:"computedAt"`
}

// NewScoreEvent собирает событие из посчитанного скора.
func NewScoreEvent(score MomentumScore, horizonSet string) ScoreEvent {
	return ScoreEvent{
		ID:             uuid.New(),
		Ticker:         score.Ticker,
		HorizonSet:     horizonSet,
		HorizonReturns: score.HorizonReturns,
		CompositeScore: score.CompositeScore,
		Approximate:    score.Approximate,
		ComputedAt:     score.ComputedAt,
	}
}
