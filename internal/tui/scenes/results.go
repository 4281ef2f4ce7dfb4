package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/output"
	"github.com/novetrasys/npad/internal/tui/components"
	"github.com/novetrasys/npad/internal/tui/tuistyles"
)

// ResultsModel represents the results display scene
type ResultsModel struct {
	source    string
	valuation *domain.Valuation
	baseline  *domain.Valuation
	width     int
	height    int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{width: 80, height: 24}
}

// SetResults updates the valuation to display
func (m *ResultsModel) SetResults(source string, v *domain.Valuation) {
	m.source = source
	m.valuation = v
}

// SetBaseline sets the valuation the trends are measured against
func (m *ResultsModel) SetBaseline(v *domain.Valuation) {
	m.baseline = v
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// read-only
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.valuation == nil {
		return renderNoResultsState()
	}
	if len(m.valuation.Cases) == 0 {
		return tuistyles.InfoStyle.Render("No cases evaluated")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderResultsHeader(m.source),
		"",
		m.renderKeyMetrics(),
		"",
		renderBreakdown(m.valuation),
		"",
		m.renderChart(),
	)
}

// renderNoResultsState renders empty state
func renderNoResultsState() string {
	return `No results to display.

Adjust the inputs on the Parameters screen (press '1') or pick a preset (press '2').`
}

// renderResultsHeader renders the header with the input source
func renderResultsHeader(source string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)

	title := titleStyle.Render("Present Value Results")
	if source == "" {
		return title
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitleStyle.Render("Inputs: "+source),
	)
}

// renderKeyMetrics renders one net PV card per case
func (m *ResultsModel) renderKeyMetrics() string {
	cards := make([]*components.CaseCard, 0, len(m.valuation.Cases))
	for _, c := range m.valuation.Cases {
		card := components.NewCaseCard(c)
		if m.baseline != nil {
			if base, ok := m.baseline.Case(c.Label); ok {
				card.CompareTo("loaded", base.Result.NetPV)
			}
		}
		cards = append(cards, card)
	}

	columns := 3
	if m.width > 0 && m.width < 100 {
		columns = 2
	}
	return components.CaseCardGrid(cards, columns)
}

// renderBreakdown renders the present-value components of each case
func renderBreakdown(v *domain.Valuation) string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1)

	var content strings.Builder
	header := fmt.Sprintf("%-14s %12s %12s %12s %12s %12s",
		"Case", "Plan PV", "Patient PV", "Coll. PV", "Review Cost", "Net PV")
	content.WriteString(tuistyles.TableHeaderStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", len(header)))

	for _, c := range v.Cases {
		r := c.Result
		label := c.Label
		if len(label) > 14 {
			label = label[:11] + "..."
		}
		content.WriteString("\n")
		content.WriteString(tuistyles.TableCellStyle.Render(fmt.Sprintf("%-14s %12s %12s %12s %12s ",
			label,
			output.FormatCurrency(r.PlanPV),
			output.FormatCurrency(r.PatientPV),
			output.FormatCurrency(r.CollectionsPV),
			output.FormatCurrency(r.ReviewCostAsNegative))))
		content.WriteString(tuistyles.TableHighlightStyle.Render(fmt.Sprintf("%12s", output.FormatCurrency(r.NetPV))))
	}

	return tableStyle.Render(content.String())
}

// renderChart draws net % of allowed per case on a 0-100 scale
func (m *ResultsModel) renderChart() string {
	chart := components.NewBarChart("Net % of Allowed", 0, 100)
	if m.width > 0 && m.width < 80 {
		chart.WithWidth(m.width / 2)
	}
	for _, c := range m.valuation.Cases {
		y := c.Result.NetPVPercentOfAllowed
		chart.AddBar(c.Label, y.Decimal.InexactFloat64(), y.Valid)
	}
	return chart.Render()
}
