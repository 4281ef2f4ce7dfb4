package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/novetrasys/npad/internal/tui/scenes"
)

// step applies msg and then feeds every produced message back until the
// model goes quiet.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for i := 0; msg != nil; i++ {
		require.Less(t, i, 10, "message loop did not settle")
		next, cmd := m.Update(msg)
		m = next.(Model)
		msg = nil
		if cmd != nil {
			msg = cmd()
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel("", nil, "")
	return step(t, m, m.Init()())
}

func TestModel_InitLoadsDefaultPreset(t *testing.T) {
	m := loadedModel(t)

	require.NotNil(t, m.Configuration())
	assert.Equal(t, presets.DefaultName, m.Configuration().Preset)
	require.NotNil(t, m.Valuation())

	small, ok := m.Valuation().Case(domain.SmallCaseLabel)
	require.True(t, ok)
	assert.Equal(t, "836.93", small.Result.NetPV.StringFixed(2))
	assert.Contains(t, m.View(), "Edit Assumptions")
}

func TestModel_InitUnknownPreset(t *testing.T) {
	m := NewModel("", nil, "nope")
	m = step(t, m, m.Init()())

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "unknown preset")

	_, cmd := m.Update(runes("x"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd(), "any key exits when nothing is loaded")
}

func TestModel_InitMissingFile(t *testing.T) {
	m := NewModel("does-not-exist.yaml", nil, "")
	msg := m.Init()()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)
	assert.Contains(t, errMsg.Err.Error(), "failed to read file")
}

func TestModel_ParameterChangeReevaluates(t *testing.T) {
	m := loadedModel(t)

	m = step(t, m, ParameterChangedMsg{Key: domain.KeyAnnualDiscountRate, Value: decimal.Zero})

	small, ok := m.Valuation().Case(domain.SmallCaseLabel)
	require.True(t, ok)
	assert.True(t, small.Result.NetPV.Equal(decimal.RequireFromString("847.60375")), "got %s", small.Result.NetPV)
	assert.True(t, m.Configuration().Assumptions.AnnualDiscountRate.IsZero())
}

func TestModel_InputParameterChangesCase(t *testing.T) {
	m := loadedModel(t)

	m = step(t, m, ParameterChangedMsg{Key: scenes.KeySmallAllowed, Value: decimal.NewFromInt(3000)})

	small, ok := m.Valuation().Case(domain.SmallCaseLabel)
	require.True(t, ok)
	assert.True(t, small.Result.AllowedAmount.Equal(decimal.NewFromInt(3000)))
	assert.True(t, small.ReviewCost.Equal(decimal.NewFromInt(215)), "above the small ceiling the inpatient cost applies")
}

func TestModel_StaleValuationIgnored(t *testing.T) {
	m := loadedModel(t)
	before := m.Valuation()

	m = step(t, m, ValuationCompleteMsg{Seq: m.evalSeq - 1, Valuation: &domain.Valuation{}})
	assert.Same(t, before, m.Valuation())
}

func TestModel_EvaluationErrorKeepsLastResult(t *testing.T) {
	m := loadedModel(t)
	before := m.Valuation()

	m = step(t, m, ParameterChangedMsg{Key: domain.KeyActuarialValue, Value: decimal.NewFromInt(2)})

	require.Error(t, m.evalErr)
	assert.Same(t, before, m.Valuation())
	assert.Contains(t, m.View(), "invalid input")
}

func TestModel_ResetRestoresLoadedInputs(t *testing.T) {
	m := loadedModel(t)
	m = step(t, m, ParameterChangedMsg{Key: domain.KeyAnnualDiscountRate, Value: decimal.Zero})
	require.True(t, m.Configuration().Assumptions.AnnualDiscountRate.IsZero())

	m = step(t, m, ResetRequestedMsg{})

	assert.True(t, m.Configuration().Assumptions.AnnualDiscountRate.Equal(decimal.NewFromFloat(0.08)))
	small, _ := m.Valuation().Case(domain.SmallCaseLabel)
	assert.Equal(t, "836.93", small.Result.NetPV.StringFixed(2))
}

func TestModel_PresetSelection(t *testing.T) {
	m := loadedModel(t)
	m = step(t, m, runes("2"))
	require.Equal(t, ScenePresets, m.CurrentScene())

	tpa, ok := presets.BuiltIn().Get("tpa")
	require.True(t, ok)
	m = step(t, m, PresetSelectedMsg{Preset: tpa})

	assert.Equal(t, SceneParameters, m.CurrentScene())
	assert.Equal(t, tpa.Name, m.Configuration().Preset)
	small, _ := m.Valuation().Case(domain.SmallCaseLabel)
	assert.Equal(t, "1037.21", small.Result.NetPV.StringFixed(2))
}

func TestModel_Navigation(t *testing.T) {
	m := loadedModel(t)

	tests := []struct {
		key  tea.KeyMsg
		want Scene
	}{
		{runes("3"), SceneResults},
		{runes("?"), SceneHelp},
		{tea.KeyMsg{Type: tea.KeyEsc}, SceneResults},
		{runes("1"), SceneParameters},
		{runes("2"), ScenePresets},
	}
	for _, tt := range tests {
		m = step(t, m, tt.key)
		assert.Equal(t, tt.want, m.CurrentScene(), "after %q", tt.key.String())
	}

	assert.Contains(t, m.View(), "Presets")
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_SliderKeysDriveEvaluation(t *testing.T) {
	m := loadedModel(t)

	// first slider is the plan share; one step up raises the plan payment
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, m.Configuration().Assumptions.ActuarialValue.Equal(decimal.NewFromFloat(0.852)))

	small, _ := m.Valuation().Case(domain.SmallCaseLabel)
	assert.True(t, small.Result.NetPV.GreaterThan(decimal.RequireFromString("836.93")))
}

func TestModel_WindowResize(t *testing.T) {
	m := loadedModel(t)
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 36, m.contentHeight())
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Parameters", SceneParameters.String())
	assert.Equal(t, "Presets", ScenePresets.String())
	assert.Equal(t, "Results", SceneResults.String())
	assert.Equal(t, "Help", SceneHelp.String())
	assert.Equal(t, "Unknown", Scene(42).String())
}
