package ports

//go:generate mockgen -source=analytics.go -destination=../mocks/analytics_mock.go -package=mocks

import (
	"context"

	"momentumRider/internal/domain"
)

// IScoreAnalytics: запись рассчитанных скоров в хранилище для аналитики (ClickHouse).
type IScoreAnalytics interface {
	WriteScore(ctx context.Context, ev domain.ScoreEvent) error
}
