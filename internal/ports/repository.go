package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"momentumRider/internal/domain"
)

// IInstrumentRegistry: фиксированный набор инструментов. Неизвестный тикер: found == false.
type IInstrumentRegistry interface {
	Lookup(ctx context.Context, ticker string) (inst domain.Instrument, found bool, err error)
	Hot(ctx context.Context) ([]domain.Instrument, error)
	Ping(ctx context.Context) error
}
