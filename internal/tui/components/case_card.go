package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/output"
	"github.com/novetrasys/npad/internal/tui/tuistyles"
)

// CaseCard shows the net present value of one case, its yield, and the
// change against a baseline once one is set.
type CaseCard struct {
	Label   string
	NetPV   decimal.Decimal
	Yield   decimal.NullDecimal
	Allowed decimal.Decimal
	Width   int

	baseline     *decimal.Decimal
	baselineName string
}

// NewCaseCard creates a card for an evaluated case
func NewCaseCard(c domain.LabeledResult) *CaseCard {
	return &CaseCard{
		Label:   c.Label,
		NetPV:   c.Result.NetPV,
		Yield:   c.Result.NetPVPercentOfAllowed,
		Allowed: c.Result.AllowedAmount,
		Width:   30,
	}
}

// CompareTo sets the net PV the card reports its change against
func (c *CaseCard) CompareTo(name string, netPV decimal.Decimal) *CaseCard {
	c.baseline = &netPV
	c.baselineName = name
	return c
}

func (c *CaseCard) WithWidth(width int) *CaseCard {
	c.Width = width
	return c
}

// Delta returns the change against the baseline in whole cents. ok is false
// without a baseline or when the change rounds to zero.
func (c *CaseCard) Delta() (delta decimal.Decimal, ok bool) {
	if c.baseline == nil {
		return decimal.Zero, false
	}
	delta = c.NetPV.Sub(*c.baseline).Round(2)
	return delta, !delta.IsZero()
}

func (c *CaseCard) trend() string {
	delta, ok := c.Delta()
	if !ok {
		return ""
	}
	text := tuistyles.TrendIndicator(delta.IsPositive()) + " " + SignedCurrency(delta)
	if c.baselineName != "" {
		text += " vs " + c.baselineName
	}
	return tuistyles.MetricTrendStyle(delta.IsPositive()).Render(text)
}

// Render returns the bordered card
func (c *CaseCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(c.Label),
		tuistyles.MetricValueStyle.Render(output.FormatCurrency(c.NetPV)),
	}
	if trend := c.trend(); trend != "" {
		lines = append(lines, trend)
	}
	lines = append(lines, tuistyles.SubtitleStyle.Render(
		output.FormatYield(c.Yield)+" of "+output.FormatCurrency(c.Allowed)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(c.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderCompact returns a single line without border
func (c *CaseCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(c.Label+":") + " " +
		tuistyles.MetricValueStyle.Render(output.FormatCurrency(c.NetPV))
	if trend := c.trend(); trend != "" {
		line += " " + trend
	}
	return line
}

// CaseCardGrid lays cards out left to right, columns per row
func CaseCardGrid(cards []*CaseCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		rendered := make([]string, 0, end-start)
		for _, card := range cards[start:end] {
			rendered = append(rendered, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SignedCurrency renders a change in dollars with an explicit sign
func SignedCurrency(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-" + output.FormatCurrency(delta.Abs())
	}
	return "+" + output.FormatCurrency(delta)
}
