package validator

import (
	"math"

	"github.com/shopspring/decimal"
)

// TickSizeFactor is the power of ten that turns the tick size into a whole
// number, e.g. 100 for 0.05 and 1 for 5.
func TickSizeFactor(tickSize float64) float64 {
	exp := decimal.NewFromFloat(tickSize).Exponent()
	if exp >= 0 {
		return 1
	}

	return math.Pow(10, float64(-exp))
}

// IsTickAligned reports whether price is a whole multiple of tickSize. Both are
// scaled to integers first; float modulo would misreport prices like 10.05.
func IsTickAligned(price, tickSize float64) bool {
	factor := TickSizeFactor(tickSize)
	scaledTick := int64(math.Round(tickSize * factor))
	if scaledTick == 0 {
		return false
	}

	return int64(math.Round(price*factor))%scaledTick == 0
}
