package transform

import (
	"testing"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverride(t *testing.T) {
	tests := []struct {
		input string
		key   string
		value decimal.Decimal
	}{
		{"discount_rate=0", domain.KeyAnnualDiscountRate, decimal.Zero},
		{"discount-rate = 8%", domain.KeyAnnualDiscountRate, decimal.NewFromFloat(0.08)},
		{"patient_dso_days=30", domain.KeyPatientCollectionDays, decimal.NewFromInt(30)},
		{"medium_band_ceiling=$1,500", domain.KeyMediumBandCeiling, decimal.NewFromInt(1500)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sp, err := ParseOverride(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.key, sp.Key)
			assert.True(t, tt.value.Equal(sp.Value), "expected %s, got %s", tt.value, sp.Value)
		})
	}
}

func TestParseOverride_Errors(t *testing.T) {
	for _, input := range []string{"discount_rate", "bogus=1", "discount_rate=abc", "discount_rate=x%"} {
		_, err := ParseOverride(input)
		assert.Error(t, err, input)
	}
}

func TestParseOverrides(t *testing.T) {
	transforms, err := ParseOverrides([]string{"discount_rate=0", "", "place_frac=0.3"})
	require.NoError(t, err)
	require.Len(t, transforms, 2)

	result, err := ApplyTransforms(domain.DefaultAssumptionBundle(), transforms)
	require.NoError(t, err)
	assert.True(t, result.AnnualDiscountRate.IsZero())
	assert.True(t, result.PlacementFraction.Equal(decimal.NewFromFloat(0.3)))

	_, err = ParseOverrides([]string{"discount_rate=0", "nope=1"})
	assert.Error(t, err)
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()
	assert.Equal(t, []string{"scale", "set"}, registry.List())

	tr, err := registry.ParseTransformSpec("set:key=recovery_rate,value=0.2")
	require.NoError(t, err)
	result, err := ApplyTransforms(domain.DefaultAssumptionBundle(), []AssumptionTransform{tr})
	require.NoError(t, err)
	assert.True(t, result.RecoveryRate.Equal(decimal.NewFromFloat(0.2)))

	tr, err = registry.ParseTransformSpec("scale:key=cash_day_collections,factor=0.5")
	require.NoError(t, err)
	result, err = ApplyTransforms(domain.DefaultAssumptionBundle(), []AssumptionTransform{tr})
	require.NoError(t, err)
	assert.Equal(t, 90, result.CollectionsCashDays)
}

func TestTransformRegistry_ParseTransformSpec_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []string{
		"set",
		"unknown:key=x",
		"set:key",
		"set:value=1",
		"set:key=discount_rate",
		"scale:factor=2",
		"scale:key=bogus,factor=2",
		"scale:key=discount_rate",
		"scale:key=discount_rate,factor=abc",
	}
	for _, spec := range tests {
		_, err := registry.ParseTransformSpec(spec)
		assert.Error(t, err, spec)
	}
}
