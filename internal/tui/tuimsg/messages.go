package tuimsg

import (
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/shopspring/decimal"
)

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
	Source string // file path or preset name
}

// PresetSelectedMsg asks for a preset to replace the current inputs
type PresetSelectedMsg struct {
	Preset presets.Preset
}

// ParameterChangedMsg signals a slider moved. Key is an assumption key or
// one of the input keys of the parameters scene.
type ParameterChangedMsg struct {
	Key   string
	Value decimal.Decimal
}

// ResetRequestedMsg asks for the inputs to go back to what was last loaded
type ResetRequestedMsg struct{}

// ValuationCompleteMsg carries the result of an evaluation. Seq orders
// evaluations so that a stale result never replaces a newer one.
type ValuationCompleteMsg struct {
	Seq       int
	Valuation *domain.Valuation
	Err       error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
