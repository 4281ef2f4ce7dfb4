package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/tui/scenes"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := m.contentHeight()
		m.parametersModel.SetSize(msg.Width, contentHeight)
		m.presetsModel.SetSize(msg.Width, contentHeight)
		m.resultsModel.SetSize(msg.Width, contentHeight)
		return m, nil

	// Custom messages
	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		return m, m.load(msg.Config, msg.Source)

	case PresetSelectedMsg:
		cfg := msg.Preset.Configuration(m.policy)
		cmd := m.load(&cfg, "preset "+msg.Preset.Name)
		m.previousScene = m.currentScene
		m.currentScene = SceneParameters
		return m, cmd

	case ResetRequestedMsg:
		if m.loaded == nil {
			return m, nil
		}
		return m, m.load(m.loaded, m.source)

	case ParameterChangedMsg:
		if m.config == nil {
			return m, nil
		}
		if err := scenes.ApplyParameter(m.config, msg.Key, msg.Value); err != nil {
			m.evalErr = err
			m.parametersModel.SetValuation(nil, err)
			return m, nil
		}
		return m, m.evaluate()

	case ValuationCompleteMsg:
		if msg.Seq != m.evalSeq {
			// superseded by a newer evaluation
			return m, nil
		}
		m.parametersModel.SetValuation(msg.Valuation, msg.Err)
		if msg.Err != nil {
			m.evalErr = msg.Err
			return m, nil
		}
		m.evalErr = nil
		m.valuation = msg.Valuation
		if m.baselinePending {
			m.resultsModel.SetBaseline(msg.Valuation)
			m.baselinePending = false
		}
		m.resultsModel.SetResults(m.source, msg.Valuation)
		return m, nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// load replaces the inputs with cfg and evaluates them. The first result
// becomes the baseline of the results scene.
func (m *Model) load(cfg *domain.Configuration, source string) tea.Cmd {
	if cfg == nil {
		return nil
	}
	loaded := *cfg
	edited := *cfg
	m.loaded = &loaded
	m.config = &edited
	m.source = source
	m.loading = false
	m.err = nil
	m.evalErr = nil
	m.baselinePending = true

	m.parametersModel.SetConfiguration(m.config)
	m.presetsModel.SetSelected(cfg.Preset)
	return m.evaluate()
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.err != nil {
		// Without inputs there is nothing to go back to
		if m.config == nil {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		return m.navigate(SceneHelp)
	case key.Matches(msg, m.keys.Parameters):
		return m.navigate(SceneParameters)
	case key.Matches(msg, m.keys.Presets):
		return m.navigate(ScenePresets)
	case key.Matches(msg, m.keys.Results):
		return m.navigate(SceneResults)
	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneParameters {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneParameters
			}
			return m.navigate(back)
		}
		return m, nil
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if m.currentScene == scene {
		return m, nil
	}
	return m, func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case ScenePresets:
		m.presetsModel, cmd = m.presetsModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
