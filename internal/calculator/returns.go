package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"momentumRider/internal/domain"
)

// returnPlaces: доходности округляются до сотых процента.
const returnPlaces = 2

var hundred = decimal.NewFromInt(100)

// ComputeReturn возвращает доходность в процентах: (current - historical) / historical * 100,
// округление до 2 знаков половиной от нуля. Нулевая или отсутствующая историческая цена даёт 0.
func ComputeReturn(historical, current decimal.Decimal) decimal.Decimal {
	if historical.IsZero() {
		return decimal.Zero
	}
	// умножаем до деления, чтобы Div не терял точность перед округлением
	return current.Sub(historical).Mul(hundred).Div(historical).Round(returnPlaces)
}

// FindPriceOnOrBefore: as-of join. Среди точек с date <= target берёт самую позднюю.
// Если target раньше всех данных, возвращает самую раннюю точку (приближение).
// Для пустого ряда возвращает 0.
func FindPriceOnOrBefore(series domain.WeeklyPriceSeries, target time.Time) decimal.Decimal {
	p, _, ok := asOf(series, target)
	if !ok {
		return decimal.Zero
	}
	return p.Close
}

// asOf возвращает точку и признак точного попадания (false, если сработал откат на самую раннюю точку).
func asOf(series domain.WeeklyPriceSeries, target time.Time) (domain.PricePoint, bool, bool) {
	if len(series) == 0 {
		return domain.PricePoint{}, false, false
	}
	// первая точка строго позже target; предыдущая и есть ответ
	i := sort.Search(len(series), func(i int) bool { return series[i].Date.After(target) })
	if i == 0 {
		return series[0], false, true
	}
	return series[i-1], true, true
}
