package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/novetrasys/npad/internal/presets"
	"github.com/novetrasys/npad/internal/tui/components"
	"github.com/novetrasys/npad/internal/tui/tuimsg"
	"github.com/novetrasys/npad/internal/tui/tuistyles"
)

// PresetsKeyMap is the key bindings of the presets scene
type PresetsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// DefaultPresetsKeyMap returns the presets scene bindings
func DefaultPresetsKeyMap() PresetsKeyMap {
	return PresetsKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply preset")),
	}
}

// ShortHelp implements help.KeyMap
func (k PresetsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select}
}

// FullHelp implements help.KeyMap
func (k PresetsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// PresetsModel lists the preset catalog and applies the chosen preset
type PresetsModel struct {
	keys     PresetsKeyMap
	presets  []presets.Preset
	cursor   int
	selected string // name of the preset last applied
	width    int
	height   int
}

// NewPresetsModel creates a presets scene over the registry's catalog
func NewPresetsModel(registry *presets.Registry) *PresetsModel {
	m := &PresetsModel{keys: DefaultPresetsKeyMap(), width: 80, height: 24}
	if registry != nil {
		m.presets = registry.List()
	}
	return m
}

// Keys returns the scene's key bindings
func (m *PresetsModel) Keys() PresetsKeyMap {
	return m.keys
}

// SetSize updates the scene dimensions
func (m *PresetsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetSelected marks name as the active preset and moves the cursor to it
func (m *PresetsModel) SetSelected(name string) {
	m.selected = name
	for i, p := range m.presets {
		if p.Name == name {
			m.cursor = i
			return
		}
	}
}

// Cursor returns the preset under the cursor
func (m *PresetsModel) Cursor() (presets.Preset, bool) {
	if m.cursor < 0 || m.cursor >= len(m.presets) {
		return presets.Preset{}, false
	}
	return m.presets[m.cursor], true
}

// Update handles messages for the presets scene
func (m *PresetsModel) Update(msg tea.Msg) (*PresetsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.presets) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		p := m.presets[m.cursor]
		return m, func() tea.Msg { return tuimsg.PresetSelectedMsg{Preset: p} }
	}
	return m, nil
}

// View renders the presets scene
func (m *PresetsModel) View() string {
	if len(m.presets) == 0 {
		return tuistyles.InfoStyle.Render("No presets available")
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	list := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Presets"),
		components.PresetList(m.presets, m.cursor, m.selected),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, "   ", m.renderDetail())
}

// renderDetail renders the card of the preset under the cursor
func (m *PresetsModel) renderDetail() string {
	p := m.presets[m.cursor]

	width := max(m.width-40, 50)

	card := components.NewPresetCard(p).
		WithWidth(width).
		SetSelected(p.Name == m.selected)

	return card.Render()
}
