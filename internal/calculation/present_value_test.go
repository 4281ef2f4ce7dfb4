package calculation

import (
	"testing"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentValue_ReturnsAmountUnchanged(t *testing.T) {
	rate := decimal.NewFromFloat(0.08)
	amount := decimal.NewFromFloat(123.45)

	tests := []struct {
		name   string
		amount decimal.Decimal
		days   int
		rate   decimal.Decimal
	}{
		{"zero amount", decimal.Zero, 180, rate},
		{"zero days", amount, 0, rate},
		{"zero rate", amount, 365, decimal.Zero},
		{"negative amount with zero rate", amount.Neg(), 90, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PresentValue(tt.amount, tt.days, tt.rate)
			require.NoError(t, err)
			assert.True(t, tt.amount.Equal(got), "expected %s, got %s", tt.amount, got)
		})
	}
}

func TestPresentValue_Discounts(t *testing.T) {
	rate := decimal.NewFromFloat(0.08)

	// One full year at 8%
	got, err := PresentValue(decimal.NewFromInt(108), 365, rate)
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.StringFixed(2))

	got, err = PresentValue(decimal.NewFromFloat(825.16), 55, rate)
	require.NoError(t, err)
	assert.Equal(t, "815.65", got.StringFixed(2))

	// Negative amounts discount symmetrically
	neg, err := PresentValue(decimal.NewFromFloat(-825.16), 55, rate)
	require.NoError(t, err)
	assert.True(t, neg.Equal(got.Neg()))
}

func TestPresentValue_RejectsNegativeInputs(t *testing.T) {
	_, err := PresentValue(decimal.NewFromInt(100), -1, decimal.NewFromFloat(0.08))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = PresentValue(decimal.NewFromInt(100), 30, decimal.NewFromFloat(-0.08))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	// Validation happens even for a zero amount
	_, err = PresentValue(decimal.Zero, -30, decimal.NewFromFloat(0.08))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestDiscountFactor(t *testing.T) {
	f, err := DiscountFactor(0, decimal.NewFromFloat(0.08))
	require.NoError(t, err)
	assert.True(t, f.Equal(decimal.NewFromInt(1)))

	f, err = DiscountFactor(180, decimal.NewFromFloat(0.08))
	require.NoError(t, err)
	assert.Equal(t, "1.038683", f.StringFixed(6))

	f, err = DiscountFactor(730, decimal.NewFromFloat(0.10))
	require.NoError(t, err)
	assert.Equal(t, "1.2100", f.StringFixed(4))
}
