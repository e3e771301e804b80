package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"momentumRider/internal/domain"
)

// IMomentumUseCase: бизнес-логика скоров (расчёт через кэш, прогрев, здоровье кэша, события из Kafka).
type IMomentumUseCase interface {
	Score(ctx context.Context, q domain.ScoreQuery) (domain.MomentumScore, error)
	Warm(ctx context.Context) (int, error)
	CacheHealth(ctx context.Context) domain.CacheHealth
	HandleScoreEvent(ctx context.Context, ev domain.ScoreEvent) error
}
