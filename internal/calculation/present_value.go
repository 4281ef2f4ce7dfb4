package calculation

import (
	"math"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// DaysPerYear is the day-count convention used for discounting.
const DaysPerYear = 365

// DiscountFactor returns (1 + annualRate) ^ (days / 365). The exponent is
// fractional, so the power is taken in float64.
func DiscountFactor(days int, annualRate decimal.Decimal) (decimal.Decimal, error) {
	if days < 0 {
		return decimal.Zero, domain.NewInvalidParameterError("days", days, "must be non-negative")
	}
	if annualRate.IsNegative() {
		return decimal.Zero, domain.NewInvalidParameterError("annual_rate", annualRate, "must be non-negative")
	}
	if days == 0 || annualRate.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	rate := annualRate.InexactFloat64()
	return decimal.NewFromFloat(math.Pow(1+rate, float64(days)/DaysPerYear)), nil
}

// PresentValue discounts amount received after days at annualRate. A zero
// amount, zero days or zero rate returns amount unchanged.
func PresentValue(amount decimal.Decimal, days int, annualRate decimal.Decimal) (decimal.Decimal, error) {
	factor, err := DiscountFactor(days, annualRate)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsZero() || days == 0 || annualRate.IsZero() {
		return amount, nil
	}
	return amount.Div(factor), nil
}
