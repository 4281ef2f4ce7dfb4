package presets

import (
	"context"
	"testing"

	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltIn_CatalogOrder(t *testing.T) {
	names := BuiltIn().Names()
	assert.Equal(t, []string{
		"Default",
		"Hospital CFO (Inpatient focus)",
		"TPA (Admin savings emphasis)",
		"Stop-Loss (Risk guardrails)",
		"All parties favorable",
	}, names)

	for _, p := range BuiltIn().List() {
		assert.NoError(t, p.Validate(), p.Name)
	}
}

func TestBuiltIn_DefaultMatchesDomainDefaults(t *testing.T) {
	p := Default()
	assert.Equal(t, DefaultName, p.Name)

	want := domain.DefaultAssumptionBundle()
	for _, key := range domain.ParameterKeys() {
		got, err := p.Assumptions.Get(key)
		require.NoError(t, err)
		expected, err := want.Get(key)
		require.NoError(t, err)
		assert.True(t, expected.Equal(got), "%s: expected %s, got %s", key, expected, got)
	}
	assert.True(t, p.ReviewCosts.Outpatient.Equal(decimal.NewFromInt(61)))
	assert.True(t, p.ReviewCosts.Inpatient.Equal(decimal.NewFromInt(215)))
}

func TestRegistry_Get(t *testing.T) {
	r := BuiltIn()

	tests := []struct {
		query string
		want  string
	}{
		{"TPA (Admin savings emphasis)", "TPA (Admin savings emphasis)"},
		{"tpa (admin savings emphasis)", "TPA (Admin savings emphasis)"},
		{"tpa", "TPA (Admin savings emphasis)"},
		{"Hospital CFO", "Hospital CFO (Inpatient focus)"},
		{"stop-loss", "Stop-Loss (Risk guardrails)"},
		{" all-parties-favorable ", "All parties favorable"},
	}
	for _, tt := range tests {
		p, ok := r.Get(tt.query)
		require.True(t, ok, tt.query)
		assert.Equal(t, tt.want, p.Name)
	}

	_, ok := r.Get("nonexistent")
	assert.False(t, ok)
}

func TestTPAPreset_Evaluation(t *testing.T) {
	p, ok := BuiltIn().Get("tpa")
	require.True(t, ok)

	cfg := p.Configuration(domain.DefaultReviewCostPolicy())
	valuation, err := calculation.NewCalculationEngine().Evaluate(context.Background(), cfg.Assumptions, cfg.CaseInputs())
	require.NoError(t, err)

	small, ok := valuation.Case(domain.SmallCaseLabel)
	require.True(t, ok)
	assert.True(t, small.ReviewCost.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "985.85", small.Result.PlanPV.StringFixed(2))
	assert.Equal(t, "97.56", small.Result.PatientPV.StringFixed(2))
	assert.Equal(t, "3.80", small.Result.CollectionsPV.StringFixed(2))
	assert.Equal(t, "1037.21", small.Result.NetPV.StringFixed(2))
	assert.Equal(t, "86.43", small.Result.NetPVPercentOfAllowed.Decimal.StringFixed(2))

	large, ok := valuation.Case(domain.LargeCaseLabel)
	require.True(t, ok)
	assert.True(t, large.ReviewCost.Equal(decimal.NewFromInt(190)))
	assert.Equal(t, "6866.37", large.Result.NetPV.StringFixed(2))
}

func TestParse_MissingKeysFallBackToDefaults(t *testing.T) {
	data := []byte(`
presets:
  - name: Slow Plan
    assumptions:
      plan_dso_days: 120
`)
	r, err := Parse(data)
	require.NoError(t, err)

	p, ok := r.Get("slow-plan")
	require.True(t, ok)
	assert.Equal(t, 120, p.Assumptions.PlanCollectionDays)
	assert.Equal(t, 60, p.Assumptions.PatientCollectionDays)
	assert.True(t, p.Assumptions.ActuarialValue.Equal(decimal.NewFromFloat(0.842)))
	assert.True(t, p.Amounts.Large.Equal(decimal.NewFromInt(10000)))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("presets: [oops"))
	assert.Error(t, err)

	_, err = Parse([]byte(`
presets:
  - name: Broken
    assumptions:
      discount_rate: -0.1
`))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = Parse([]byte(`
presets:
  - description: no name
`))
	assert.Error(t, err)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(Preset{Name: "Custom", Description: "first"})
	r.Register(Preset{Name: "custom", Description: "second"})

	assert.Len(t, r.List(), 1)
	p, ok := r.Get("Custom")
	require.True(t, ok)
	assert.Equal(t, "second", p.Description)
	assert.Equal(t, "custom", p.Slug)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hospital-cfo", Slugify("Hospital CFO (Inpatient focus)"))
	assert.Equal(t, "stop-loss", Slugify("Stop-Loss (Risk guardrails)"))
	assert.Equal(t, "all-parties-favorable", Slugify("All parties favorable"))
}

func TestRegistry_Help(t *testing.T) {
	help := BuiltIn().Help()
	assert.Contains(t, help, "Available Presets:")
	assert.Contains(t, help, "stop-loss")

	assert.Equal(t, "No presets registered", NewRegistry().Help())
}
