package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/output"
	"github.com/novetrasys/npad/internal/tui/components"
	"github.com/novetrasys/npad/internal/tui/tuimsg"
	"github.com/novetrasys/npad/internal/tui/tuistyles"
)

// ParametersKeyMap is the key bindings of the parameters scene
type ParametersKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	BigLeft  key.Binding
	BigRight key.Binding
	Reset    key.Binding
}

// DefaultParametersKeyMap returns the parameters scene bindings
func DefaultParametersKeyMap() ParametersKeyMap {
	return ParametersKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Left:     key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/-", "decrease")),
		Right:    key.NewBinding(key.WithKeys("right", "l", "+", "="), key.WithHelp("→/+", "increase")),
		BigLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "decrease ×10")),
		BigRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "increase ×10")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	}
}

// ShortHelp implements help.KeyMap
func (k ParametersKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Reset}
}

// FullHelp implements help.KeyMap
func (k ParametersKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Left, k.Right, k.BigLeft, k.BigRight}, {k.Reset}}
}

// ParametersModel represents the parameter editing scene
type ParametersModel struct {
	keys      ParametersKeyMap
	sliders   []*components.ParameterSlider
	focused   int
	offset    int
	width     int
	height    int
	modified  bool
	valuation *domain.Valuation
	evalErr   error
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{
		keys:   DefaultParametersKeyMap(),
		width:  80,
		height: 24,
	}
}

// Keys returns the scene's key bindings
func (m *ParametersModel) Keys() ParametersKeyMap {
	return m.keys
}

// SetConfiguration rebuilds the sliders from cfg and clears the modified flag
func (m *ParametersModel) SetConfiguration(cfg *domain.Configuration) {
	if cfg == nil {
		m.sliders = nil
		return
	}

	m.sliders = m.sliders[:0]
	for _, p := range domain.AssumptionParameters() {
		value, err := cfg.Assumptions.Get(p.Key)
		if err != nil {
			continue
		}
		m.sliders = append(m.sliders, components.NewParameterSlider(p, value).WithWidth(40))
	}
	for _, p := range EditableInputs(cfg) {
		value, _ := InputValue(cfg, p.Key)
		m.sliders = append(m.sliders, components.NewParameterSlider(p, value).WithWidth(40))
	}

	if m.focused >= len(m.sliders) {
		m.focused = 0
	}
	for i, s := range m.sliders {
		s.SetFocused(i == m.focused)
	}
	m.modified = false
	m.scrollToFocus()
}

// SetValuation shows the latest evaluation next to the sliders
func (m *ParametersModel) SetValuation(v *domain.Valuation, err error) {
	if err != nil {
		m.evalErr = err
		return
	}
	m.valuation = v
	m.evalErr = nil
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollToFocus()
}

// Modified reports whether a slider moved since the last configuration load
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// Focused returns the focused slider, or nil when there is none
func (m *ParametersModel) Focused() *components.ParameterSlider {
	if m.focused < 0 || m.focused >= len(m.sliders) {
		return nil
	}
	return m.sliders[m.focused]
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(keyMsg, m.keys.BigLeft):
		return m, m.adjust((*components.ParameterSlider).BigDecrement)
	case key.Matches(keyMsg, m.keys.BigRight):
		return m, m.adjust((*components.ParameterSlider).BigIncrement)
	case key.Matches(keyMsg, m.keys.Left):
		return m, m.adjust((*components.ParameterSlider).Decrement)
	case key.Matches(keyMsg, m.keys.Right):
		return m, m.adjust((*components.ParameterSlider).Increment)
	case key.Matches(keyMsg, m.keys.Reset):
		return m, func() tea.Msg { return tuimsg.ResetRequestedMsg{} }
	}

	return m, nil
}

// adjust moves the focused slider and announces the new value
func (m *ParametersModel) adjust(move func(*components.ParameterSlider) bool) tea.Cmd {
	slider := m.sliders[m.focused]
	if !move(slider) {
		return nil
	}
	m.modified = true

	changed := tuimsg.ParameterChangedMsg{Key: slider.Param.Key, Value: slider.Value}
	return func() tea.Msg { return changed }
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
	m.scrollToFocus()
}

// visibleRows is how many compact slider rows fit beside the header and footer
func (m *ParametersModel) visibleRows() int {
	rows := m.height - 14
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m *ParametersModel) scrollToFocus() {
	rows := m.visibleRows()
	if m.focused < m.offset {
		m.offset = m.focused
	}
	if m.focused >= m.offset+rows {
		m.offset = m.focused - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if len(m.sliders) == 0 {
		return tuistyles.InfoStyle.Render("No configuration loaded.\n\nPick a preset from the Presets screen (press '2').")
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Edit Assumptions"),
		m.renderList(),
		"",
		m.sliders[m.focused].Render(),
	)

	right := m.renderLiveResult()

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	if status := renderParameterStatus(m.modified); status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", status)
	}
	return content
}

// renderList renders the window of compact slider rows around the focus
func (m *ParametersModel) renderList() string {
	end := m.offset + m.visibleRows()
	if end > len(m.sliders) {
		end = len(m.sliders)
	}

	var rows []string
	if m.offset > 0 {
		rows = append(rows, tuistyles.HelpDescStyle.Render(fmt.Sprintf("  ↑ %d more", m.offset)))
	}
	for i := m.offset; i < end; i++ {
		prefix := "  "
		if i == m.focused {
			prefix = "▸ "
		}
		rows = append(rows, prefix+m.sliders[i].RenderCompact())
	}
	if end < len(m.sliders) {
		rows = append(rows, tuistyles.HelpDescStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.sliders)-end)))
	}
	return strings.Join(rows, "\n")
}

// renderLiveResult renders the net PV of each case for the current inputs
func (m *ParametersModel) renderLiveResult() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary)
	content.WriteString(titleStyle.Render("Net Present Value"))
	content.WriteString("\n\n")

	switch {
	case m.evalErr != nil:
		content.WriteString(tuistyles.ErrorStyle.Render(m.evalErr.Error()))
		content.WriteString("\n\n")
		content.WriteString(tuistyles.HelpDescStyle.Render("showing last valid result"))
		content.WriteString("\n")
	case m.valuation == nil:
		content.WriteString(tuistyles.HelpDescStyle.Render("calculating..."))
		return tuistyles.BorderStyle.Render(content.String())
	}

	if m.valuation != nil {
		for _, c := range m.valuation.Cases {
			content.WriteString(tuistyles.MetricLabelStyle.Render(c.Label))
			content.WriteString("\n")
			content.WriteString(tuistyles.MetricValueStyle.Render(output.FormatCurrency(c.Result.NetPV)))
			content.WriteString("  ")
			content.WriteString(output.FormatYield(c.Result.NetPVPercentOfAllowed))
			content.WriteString("\n")
			content.WriteString(tuistyles.HelpDescStyle.Render("of " + output.FormatCurrency(c.Result.AllowedAmount)))
			content.WriteString("\n\n")
		}
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// renderParameterStatus renders modification status
func renderParameterStatus(modified bool) string {
	if !modified {
		return ""
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorInfo).
		Bold(true)

	return statusStyle.Render("⚠ Modified - press 'r' to reset to the loaded inputs")
}
