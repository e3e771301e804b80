package ports

//go:generate mockgen -source=prices.go -destination=../mocks/prices_mock.go -package=mocks

import (
	"context"

	"momentumRider/internal/domain"
)

// IPriceFetcher: источник недельных цен закрытия. Ряд по возрастанию даты, покрывает
// не меньше weeks недель.
type IPriceFetcher interface {
	FetchWeekly(ctx context.Context, ticker string, weeks int) (domain.WeeklyPriceSeries, error)
}
