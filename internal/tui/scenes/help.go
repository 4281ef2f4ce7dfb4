package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/novetrasys/npad/internal/output"
	"github.com/novetrasys/npad/internal/tui/tuistyles"
)

// HelpSection is a titled group of key bindings
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// RenderHelp renders the help screen from the bindings of every scene
func RenderHelp(sections []HelpSection) string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render("NPAD vs PPO Present Value Calculator"))
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("Compares the present value of a claim paid at the allowed amount against the usual plan/patient split."))
	content.WriteString("\n")

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorSecondary)

	for _, section := range sections {
		content.WriteString("\n")
		content.WriteString(sectionStyle.Render(strings.ToUpper(section.Title)))
		content.WriteString("\n")
		for _, b := range section.Bindings {
			h := b.Help()
			if h.Key == "" {
				continue
			}
			content.WriteString("  ")
			content.WriteString(tuistyles.HelpKeyStyle.Width(10).Render(h.Key))
			content.WriteString(tuistyles.HelpDescStyle.Render(h.Desc))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(sectionStyle.Render("NOTES"))
	content.WriteString("\n")
	for _, note := range output.DefaultNotes {
		content.WriteString(tuistyles.HelpDescStyle.Render("  • " + note))
		content.WriteString("\n")
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}
