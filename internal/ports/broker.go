package ports

//go:generate mockgen -source=broker.go -destination=../mocks/broker_mock.go -package=mocks

import (
	"context"

	"momentumRider/internal/domain"
)

// IProducer: публикация событий о расчётах в брокер (Kafka). Топик задаётся конфигом реализации.
// Use case после свежего расчёта публикует событие; консьюмер живёт в инфраструктуре.
type IProducer interface {
	PublishScore(ctx context.Context, ev domain.ScoreEvent) error
}
