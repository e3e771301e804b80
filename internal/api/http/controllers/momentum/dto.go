package momentum

import (
	"encoding/json"
	"time"

	"momentumRider/internal/domain"
)

// ScoreResponse: скор. Доходности и композит в процентах с двумя знаками.
type ScoreResponse struct {
	Ticker         string                 `json:"ticker"`
	Name           string                 `json:"name,omitempty"`
	HorizonReturns map[string]json.Number `json:"horizonReturns"`
	CompositeScore json.Number            `json:"compositeScore"`
	Approximate    bool                   `json:"approximate"`
	ComputedAt     time.Time              `json:"computedAt"`
}

func toResponse(s domain.MomentumScore) ScoreResponse {
	returns := make(map[string]json.Number, len(s.HorizonReturns))
	for k, v := range s.HorizonReturns {
		returns[k] = json.Number(v.StringFixed(2))
	}
	return ScoreResponse{
		Ticker:         s.Ticker,
		Name:           s.Name,
		HorizonReturns: returns,
		CompositeScore: json.Number(s.CompositeScore.StringFixed(2)),
		Approximate:    s.Approximate,
		ComputedAt:     s.ComputedAt,
	}
}
