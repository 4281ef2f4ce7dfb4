package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/novetrasys/npad/internal/tui/scenes"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneParameters:
		content = m.parametersModel.View()
	case ScenePresets:
		content = m.presetsModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// contentHeight is what is left for a scene after the title and status bars
func (m Model) contentHeight() int {
	h := m.height - 4 // Title (2) + status (1) + padding (1)
	if h < 0 {
		return 0
	}
	return h
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentContainer := lipgloss.NewStyle().
		Height(m.contentHeight()).
		Render(content)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("NPAD vs PPO - Claim Present Value")

	breadcrumb := m.currentScene.String()
	if m.source != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.source)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	bindings := bindingList(m.sceneBindings())
	bindings = append(bindings, m.keys.ShortHelp()...)
	statusText := m.help.View(bindings)

	if m.evalErr != nil {
		statusText = ErrorStyle.Render("invalid input: "+m.evalErr.Error()) + "  " + statusText
	}

	return StatusBarStyle.Render(statusText)
}

// sceneBindings are the bindings of the scene on screen
func (m Model) sceneBindings() []key.Binding {
	switch m.currentScene {
	case SceneParameters:
		return m.parametersModel.Keys().ShortHelp()
	case ScenePresets:
		return m.presetsModel.Keys().ShortHelp()
	case SceneHelp:
		return []key.Binding{m.keys.Back}
	}
	return nil
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	return m.renderApp(BorderStyle.Render("⠋ Loading inputs..."))
}

// renderError renders a load error
func (m Model) renderError() string {
	hint := "Press any key to continue..."
	if m.config == nil {
		hint = "Press any key to exit."
	}

	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\n%s", m.err.Error(), hint),
	)

	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var params, presets []key.Binding
	for _, row := range m.parametersModel.Keys().FullHelp() {
		params = append(params, row...)
	}
	for _, row := range m.presetsModel.Keys().FullHelp() {
		presets = append(presets, row...)
	}
	var global []key.Binding
	for _, row := range m.keys.FullHelp() {
		global = append(global, row...)
	}

	return scenes.RenderHelp([]scenes.HelpSection{
		{Title: "Navigation", Bindings: global},
		{Title: "Parameters", Bindings: params},
		{Title: "Presets", Bindings: presets},
	})
}
