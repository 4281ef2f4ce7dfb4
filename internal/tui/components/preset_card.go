package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/output"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/novetrasys/npad/internal/tui/tuistyles"
)

// changedMark flags assumptions that differ from the default bundle
const changedMark = "*"

// PresetCard shows what a preset sets: its assumptions (those that differ
// from the defaults marked), review costs and standard case amounts.
type PresetCard struct {
	Preset   presets.Preset
	Selected bool
	Width    int
}

// NewPresetCard creates a card for p
func NewPresetCard(p presets.Preset) *PresetCard {
	return &PresetCard{Preset: p, Width: 50}
}

func (c *PresetCard) SetSelected(selected bool) *PresetCard {
	c.Selected = selected
	return c
}

func (c *PresetCard) WithWidth(width int) *PresetCard {
	c.Width = width
	return c
}

// ChangedKeys lists the assumptions the preset moves off the defaults
func (c *PresetCard) ChangedKeys() []string {
	defaults := domain.DefaultAssumptionBundle()
	var keys []string
	for _, key := range domain.ParameterKeys() {
		v, err := c.Preset.Assumptions.Get(key)
		if err != nil {
			continue
		}
		if d, _ := defaults.Get(key); !v.Equal(d) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Render returns the bordered card
func (c *PresetCard) Render() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary)
	rowStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	changedStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Preset.Name))
	if c.Preset.Description != "" {
		b.WriteString("\n\n" + c.Preset.Description)
	}

	changed := make(map[string]bool)
	for _, key := range c.ChangedKeys() {
		changed[key] = true
	}
	b.WriteString("\n\n" + sectionStyle.Render("Assumptions"))
	for _, line := range output.AssumptionLines(c.Preset.Assumptions) {
		row := fmt.Sprintf("%-28s %10s", line.Label, line.Value)
		if changed[line.Key] {
			b.WriteString("\n" + changedStyle.Render(row+" "+changedMark))
			continue
		}
		b.WriteString("\n" + rowStyle.Render(row))
	}

	b.WriteString("\n\n" + sectionStyle.Render("Review cost per encounter"))
	b.WriteString("\n" + rowStyle.Render(fmt.Sprintf("%-28s %10s", "Outpatient / ED", output.FormatCurrency(c.Preset.ReviewCosts.Outpatient))))
	b.WriteString("\n" + rowStyle.Render(fmt.Sprintf("%-28s %10s", "Inpatient / Surgery", output.FormatCurrency(c.Preset.ReviewCosts.Inpatient))))

	b.WriteString("\n\n" + sectionStyle.Render("Standard cases"))
	b.WriteString("\n" + rowStyle.Render(fmt.Sprintf("%-28s %10s", domain.SmallCaseLabel, output.FormatCurrency(c.Preset.Amounts.Small))))
	b.WriteString("\n" + rowStyle.Render(fmt.Sprintf("%-28s %10s", domain.LargeCaseLabel, output.FormatCurrency(c.Preset.Amounts.Large))))

	if len(changed) > 0 {
		b.WriteString("\n\n" + rowStyle.Render(changedMark+" differs from the defaults"))
	}

	border := tuistyles.ColorBorder
	if c.Selected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(c.Width).
		Render(b.String())
}

// PresetList renders the preset names for selection. The cursor row gets a
// pointer and the loaded preset a check mark.
func PresetList(list []presets.Preset, cursor int, loaded string) string {
	if len(list) == 0 {
		return tuistyles.InfoStyle.Render("No presets available")
	}

	rows := make([]string, len(list))
	for i, p := range list {
		name := p.Name
		if p.Name == loaded {
			name += " ✓"
		}
		if i == cursor {
			rows[i] = tuistyles.SelectedItemStyle.Render("▸ " + name)
			continue
		}
		rows[i] = tuistyles.UnselectedItemStyle.Render("  " + name)
	}
	return strings.Join(rows, "\n")
}
