package tui

import (
	"github.com/novetrasys/npad/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneParameters Scene = iota
	ScenePresets
	SceneResults
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneParameters:
		return "Parameters"
	case ScenePresets:
		return "Presets"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// Messages shared with the scenes live in tuimsg; these aliases keep the
// root package's switch readable.
type (
	ConfigLoadedMsg      = tuimsg.ConfigLoadedMsg
	PresetSelectedMsg    = tuimsg.PresetSelectedMsg
	ParameterChangedMsg  = tuimsg.ParameterChangedMsg
	ResetRequestedMsg    = tuimsg.ResetRequestedMsg
	ValuationCompleteMsg = tuimsg.ValuationCompleteMsg
	ErrorMsg             = tuimsg.ErrorMsg
)
