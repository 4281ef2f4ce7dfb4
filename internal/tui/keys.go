package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap is the bindings available on every scene
type keyMap struct {
	Parameters key.Binding
	Presets    key.Binding
	Results    key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Parameters: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "parameters")),
		Presets:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "presets")),
		Results:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "results")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Parameters, k.Presets, k.Results, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Parameters, k.Presets, k.Results}, {k.Help, k.Back, k.Quit}}
}

// bindingList joins scene bindings with the global ones for the status bar
type bindingList []key.Binding

func (b bindingList) ShortHelp() []key.Binding  { return b }
func (b bindingList) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
