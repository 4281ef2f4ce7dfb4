package calculation

import (
	"testing"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepaymentRate_BandBoundaries(t *testing.T) {
	b := domain.DefaultAssumptionBundle()

	tests := []struct {
		amount float64
		want   decimal.Decimal
	}{
		{0, b.RepaymentRateSmall},
		{250.0, b.RepaymentRateSmall},
		{250.01, b.RepaymentRateMedium},
		{1000.0, b.RepaymentRateMedium},
		{1000.01, b.RepaymentRateLarge},
		{50000, b.RepaymentRateLarge},
	}

	for _, tt := range tests {
		got := RepaymentRate(decimal.NewFromFloat(tt.amount), b)
		assert.True(t, tt.want.Equal(got), "amount %.2f: expected %s, got %s", tt.amount, tt.want, got)
	}
}

func TestEvaluateCase_DefaultSmallCase(t *testing.T) {
	r, err := EvaluateCase(decimal.NewFromInt(1000), decimal.NewFromInt(61), domain.DefaultAssumptionBundle())
	require.NoError(t, err)

	assert.Equal(t, "842.00", r.PlanAllowed.StringFixed(2))
	assert.Equal(t, "158.00", r.PatientAllowed.StringFixed(2))
	assert.Equal(t, "825.16", r.PlanNet.StringFixed(2))
	assert.Equal(t, "815.65", r.PlanPV.StringFixed(2))
	assert.Equal(t, "0.5", r.RepaymentRateApplied.String())
	assert.Equal(t, "79.00", r.PatientPaid.StringFixed(2))
	assert.Equal(t, "78.01", r.PatientPV.StringFixed(2))
	assert.Equal(t, "79.00", r.Waterfall.Unpaid.StringFixed(2))
	assert.Equal(t, "39.50", r.Waterfall.Placed.StringFixed(2))
	assert.Equal(t, "5.925", r.Waterfall.Recovered.StringFixed(3))
	assert.Equal(t, "4.44375", r.Waterfall.NetToProvider.StringFixed(5))
	assert.Equal(t, "4.28", r.CollectionsPV.StringFixed(2))
	assert.Equal(t, "-61.00", r.ReviewCostAsNegative.StringFixed(2))
	assert.Equal(t, "836.93", r.NetPV.StringFixed(2))
	require.True(t, r.YieldDefined())
	assert.Equal(t, "83.69", r.NetPVPercentOfAllowed.Decimal.StringFixed(2))
}

func TestEvaluateCase_DefaultLargeCase(t *testing.T) {
	r, err := EvaluateCase(decimal.NewFromInt(10000), decimal.NewFromInt(215), domain.DefaultAssumptionBundle())
	require.NoError(t, err)

	assert.Equal(t, "0.34", r.RepaymentRateApplied.String())
	assert.Equal(t, "8156.46", r.PlanPV.StringFixed(2))
	assert.Equal(t, "530.45", r.PatientPV.StringFixed(2))
	assert.Equal(t, "56.47", r.CollectionsPV.StringFixed(2))
	assert.Equal(t, "8528.38", r.NetPV.StringFixed(2))
	assert.Equal(t, "85.28", r.NetPVPercentOfAllowed.Decimal.StringFixed(2))
}

func TestEvaluateCase_SplitSumsToAllowed(t *testing.T) {
	b := domain.DefaultAssumptionBundle()
	for _, av := range []float64{0, 0.333, 0.6, 0.842, 0.95, 1} {
		b.ActuarialValue = decimal.NewFromFloat(av)
		for _, allowed := range []float64{0, 0.01, 99.99, 1000, 123456.78} {
			a := decimal.NewFromFloat(allowed)
			r, err := EvaluateCase(a, decimal.Zero, b)
			require.NoError(t, err)
			assert.True(t, r.PlanAllowed.Add(r.PatientAllowed).Equal(a), "av=%v allowed=%v", av, allowed)
		}
	}
}

func TestEvaluateCase_ZeroAllowedHasUndefinedYield(t *testing.T) {
	r, err := EvaluateCase(decimal.Zero, decimal.NewFromInt(61), domain.DefaultAssumptionBundle())
	require.NoError(t, err)

	assert.False(t, r.YieldDefined())
	assert.True(t, r.NetPV.Equal(decimal.NewFromInt(-61)))
	assert.True(t, r.PlanPV.IsZero())
	assert.True(t, r.PatientPV.IsZero())
	assert.True(t, r.CollectionsPV.IsZero())
}

func TestEvaluateCase_WaterfallMonotone(t *testing.T) {
	fractions := []float64{0, 0.25, 0.5, 1}
	b := domain.DefaultAssumptionBundle()

	for _, place := range fractions {
		for _, recovery := range fractions {
			for _, fee := range fractions {
				b.PlacementFraction = decimal.NewFromFloat(place)
				b.RecoveryRate = decimal.NewFromFloat(recovery)
				b.CollectorFeeRate = decimal.NewFromFloat(fee)

				r, err := EvaluateCase(decimal.NewFromInt(5000), decimal.Zero, b)
				require.NoError(t, err)

				w := r.Waterfall
				assert.True(t, w.Placed.LessThanOrEqual(w.Unpaid))
				assert.True(t, w.Recovered.LessThanOrEqual(w.Placed))
				assert.True(t, w.NetToProvider.LessThanOrEqual(w.Recovered))
			}
		}
	}
}

func TestEvaluateCase_ZeroDiscountRaisesEveryTerm(t *testing.T) {
	b := domain.DefaultAssumptionBundle()
	zero := b
	zero.AnnualDiscountRate = decimal.Zero

	for _, allowed := range []int64{100, 1000, 10000} {
		discounted, err := EvaluateCase(decimal.NewFromInt(allowed), decimal.NewFromInt(61), b)
		require.NoError(t, err)
		undiscounted, err := EvaluateCase(decimal.NewFromInt(allowed), decimal.NewFromInt(61), zero)
		require.NoError(t, err)

		assert.True(t, undiscounted.PlanPV.GreaterThanOrEqual(discounted.PlanPV))
		assert.True(t, undiscounted.PatientPV.GreaterThanOrEqual(discounted.PatientPV))
		assert.True(t, undiscounted.CollectionsPV.GreaterThanOrEqual(discounted.CollectionsPV))
		assert.True(t, undiscounted.NetPV.GreaterThan(discounted.NetPV))
	}

	r, err := EvaluateCase(decimal.NewFromInt(1000), decimal.NewFromInt(61), zero)
	require.NoError(t, err)
	assert.True(t, r.PlanPV.Equal(r.PlanNet))
	assert.Equal(t, "847.60375", r.NetPV.StringFixed(5))
}

func TestEvaluateCase_Idempotent(t *testing.T) {
	b := domain.DefaultAssumptionBundle()
	first, err := EvaluateCase(decimal.NewFromFloat(4321.09), decimal.NewFromInt(215), b)
	require.NoError(t, err)
	second, err := EvaluateCase(decimal.NewFromFloat(4321.09), decimal.NewFromInt(215), b)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluateCase_RejectsInvalidInput(t *testing.T) {
	b := domain.DefaultAssumptionBundle()

	_, err := EvaluateCase(decimal.NewFromInt(-1), decimal.Zero, b)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = EvaluateCase(decimal.NewFromInt(1000), decimal.NewFromInt(-61), b)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	bad := b
	bad.SmallBandCeiling = decimal.NewFromInt(5000)
	r, err := EvaluateCase(decimal.NewFromInt(1000), decimal.NewFromInt(61), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.Nil(t, r)
}
