package scenes

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/novetrasys/npad/internal/tui/tuimsg"
)

func defaultConfig() *domain.Configuration {
	cfg := domain.DefaultConfiguration()
	return &cfg
}

func evaluate(t *testing.T, cfg *domain.Configuration) *domain.Valuation {
	t.Helper()
	v, err := calculation.NewCalculationEngine().Evaluate(context.Background(), cfg.Assumptions, cfg.CaseInputs())
	require.NoError(t, err)
	return v
}

func TestApplyParameter(t *testing.T) {
	tests := []struct {
		key   string
		value decimal.Decimal
		check func(*domain.Configuration) decimal.Decimal
	}{
		{KeyReviewCostOutpatient, decimal.NewFromInt(70), func(c *domain.Configuration) decimal.Decimal { return c.ReviewCosts.Outpatient }},
		{KeyReviewCostInpatient, decimal.NewFromInt(300), func(c *domain.Configuration) decimal.Decimal { return c.ReviewCosts.Inpatient }},
		{KeySmallAllowed, decimal.NewFromInt(500), func(c *domain.Configuration) decimal.Decimal { return c.Amounts.Small }},
		{KeyLargeAllowed, decimal.NewFromInt(50000), func(c *domain.Configuration) decimal.Decimal { return c.Amounts.Large }},
		{domain.KeyRecoveryRate, decimal.NewFromFloat(0.2), func(c *domain.Configuration) decimal.Decimal { return c.Assumptions.RecoveryRate }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := defaultConfig()
			require.NoError(t, ApplyParameter(cfg, tt.key, tt.value))
			assert.True(t, tt.check(cfg).Equal(tt.value))

			got, ok := InputValue(cfg, tt.key)
			if ok {
				assert.True(t, got.Equal(tt.value))
			}
		})
	}
}

func TestApplyParameter_Errors(t *testing.T) {
	cfg := defaultConfig()

	err := ApplyParameter(cfg, "speed", decimal.NewFromInt(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	err = ApplyParameter(cfg, domain.KeyPlanCollectionDays, decimal.NewFromFloat(10.5))
	require.Error(t, err)
	assert.Equal(t, 55, cfg.Assumptions.PlanCollectionDays, "failed updates leave the configuration alone")
}

func TestAllowedAmountsNeedStandardCases(t *testing.T) {
	cfg := defaultConfig()
	assert.Len(t, EditableInputs(cfg), 4)

	cfg.Cases = []domain.CaseSpec{{Label: "ED visit", AllowedAmount: decimal.NewFromInt(800)}}
	inputs := EditableInputs(cfg)
	require.Len(t, inputs, 2)
	for _, p := range inputs {
		assert.NotEqual(t, KeySmallAllowed, p.Key)
		assert.NotEqual(t, KeyLargeAllowed, p.Key)
	}

	err := ApplyParameter(cfg, KeySmallAllowed, decimal.NewFromInt(500))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lists its own cases")
	assert.True(t, cfg.Amounts.Small.Equal(domain.DefaultConfiguration().Amounts.Small))

	require.NoError(t, ApplyParameter(cfg, KeyReviewCostOutpatient, decimal.NewFromInt(70)))

	m := NewParametersModel()
	m.SetConfiguration(cfg)
	assert.Len(t, m.sliders, len(domain.AssumptionParameters())+2)
	m.SetConfiguration(defaultConfig())
	assert.Len(t, m.sliders, len(domain.AssumptionParameters())+4)
}

func TestInputParameters(t *testing.T) {
	params := InputParameters()
	require.Len(t, params, 4)
	assert.Equal(t, KeyReviewCostOutpatient, params[0].Key)
	assert.True(t, params[3].Max.Equal(decimal.NewFromInt(1000000)))

	params[0].Key = "changed"
	assert.Equal(t, KeyReviewCostOutpatient, InputParameters()[0].Key, "callers get a copy")
}

func TestParametersModel_SlidersEmitChanges(t *testing.T) {
	m := NewParametersModel()
	m.SetConfiguration(defaultConfig())
	require.Len(t, m.sliders, len(domain.AssumptionParameters())+len(InputParameters()))

	// move to the plan write-off slider and raise it
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, domain.KeyPlanWriteoffRate, m.Focused().Param.Key)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	changed, ok := cmd().(tuimsg.ParameterChangedMsg)
	require.True(t, ok)
	assert.Equal(t, domain.KeyPlanWriteoffRate, changed.Key)
	assert.True(t, changed.Value.Equal(decimal.NewFromFloat(0.03)))
	assert.True(t, m.Modified())
}

func TestParametersModel_NoChangeAtBound(t *testing.T) {
	m := NewParametersModel()
	cfg := defaultConfig()
	cfg.Assumptions.ActuarialValue = decimal.NewFromFloat(0.95)
	m.SetConfiguration(cfg)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd, "a slider at its maximum does not announce a change")
	assert.False(t, m.Modified())
}

func TestParametersModel_Reset(t *testing.T) {
	m := NewParametersModel()
	m.SetConfiguration(defaultConfig())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.IsType(t, tuimsg.ResetRequestedMsg{}, cmd())
}

func TestParametersModel_ScrollsWithFocus(t *testing.T) {
	m := NewParametersModel()
	m.SetSize(80, 20)
	m.SetConfiguration(defaultConfig())

	for i := 0; i < len(m.sliders)-1; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, KeyLargeAllowed, m.Focused().Param.Key)
	assert.Greater(t, m.offset, 0)
	assert.Contains(t, m.View(), "more")
}

func TestParametersModel_View(t *testing.T) {
	m := NewParametersModel()
	assert.Contains(t, m.View(), "No configuration loaded")

	cfg := defaultConfig()
	m.SetConfiguration(cfg)
	assert.Contains(t, m.View(), "calculating...")

	m.SetValuation(evaluate(t, cfg), nil)
	out := m.View()
	assert.Contains(t, out, "$836.93")
	assert.Contains(t, out, "83.69%")

	m.SetValuation(nil, assert.AnError)
	out = m.View()
	assert.Contains(t, out, assert.AnError.Error())
	assert.Contains(t, out, "$836.93", "the last good result stays on screen")
}

func TestPresetsModel(t *testing.T) {
	m := NewPresetsModel(presets.BuiltIn())
	m.SetSize(160, 40)
	m.SetSelected(presets.DefaultName)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, ok := m.Cursor()
	require.True(t, ok)
	assert.Equal(t, "tpa", p.Slug)
	assert.Contains(t, m.View(), p.Description)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	selected, ok := cmd().(tuimsg.PresetSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, p.Name, selected.Preset.Name)

	assert.Contains(t, NewPresetsModel(nil).View(), "No presets available")
}

func TestResultsModel_View(t *testing.T) {
	m := NewResultsModel()
	assert.Contains(t, m.View(), "No results to display")

	cfg := defaultConfig()
	base := evaluate(t, cfg)
	m.SetBaseline(base)

	cfg.Assumptions.AnnualDiscountRate = decimal.Zero
	m.SetResults("preset Default", evaluate(t, cfg))

	out := m.View()
	assert.Contains(t, out, "Inputs: preset Default")
	assert.Contains(t, out, "Net % of Allowed")
	assert.Contains(t, out, "▲ +$10.67 vs loaded")
	assert.Contains(t, out, "Small Case")
}

func TestRenderHelp(t *testing.T) {
	out := RenderHelp([]HelpSection{{Title: "Parameters", Bindings: DefaultParametersKeyMap().ShortHelp()}})
	assert.Contains(t, out, "PARAMETERS")
	assert.Contains(t, out, "decrease")
	assert.Contains(t, out, "NOTES")
}
