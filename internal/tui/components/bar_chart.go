package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/novetrasys/npad/internal/tui/tuistyles"
)

// Bar is one labelled value of a bar chart. Undefined bars are drawn empty
// and labelled n/a.
type Bar struct {
	Label   string
	Value   float64
	Defined bool
	Color   lipgloss.Color
}

// BarChart draws horizontal bars on a fixed scale
type BarChart struct {
	Title      string
	Bars       []Bar
	Min        float64
	Max        float64
	Width      int // width of a full-scale bar
	LabelWidth int
	ValueFmt   string
}

// NewBarChart creates a chart scaled from min to max
func NewBarChart(title string, min, max float64) *BarChart {
	return &BarChart{
		Title:      title,
		Min:        min,
		Max:        max,
		Width:      40,
		LabelWidth: 14,
		ValueFmt:   "%.1f%%",
	}
}

// AddBar appends a bar; its color cycles through the chart palette
func (c *BarChart) AddBar(label string, value float64, defined bool) *BarChart {
	color := tuistyles.ChartColors[len(c.Bars)%len(tuistyles.ChartColors)]
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Defined: defined, Color: color})
	return c
}

// WithWidth sets the width of a full-scale bar
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder

	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorPrimary)
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	labelStyle := lipgloss.NewStyle().
		Width(c.LabelWidth).
		Foreground(tuistyles.ColorForeground)
	trackStyle := tuistyles.SliderTrackStyle

	for _, bar := range c.Bars {
		filled := c.filled(bar)
		barStyle := lipgloss.NewStyle().Foreground(bar.Color)

		value := "n/a"
		if bar.Defined {
			value = fmt.Sprintf(c.ValueFmt, bar.Value)
		}

		content.WriteString(labelStyle.Render(truncate(bar.Label, c.LabelWidth)))
		content.WriteString(" ")
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		content.WriteString(trackStyle.Render(strings.Repeat("░", c.Width-filled)))
		content.WriteString(" ")
		content.WriteString(value)
		content.WriteString("\n")
	}

	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	minLabel := formatChartValue(c.Min)
	maxLabel := formatChartValue(c.Max)
	gap := c.Width - len(minLabel) - len(maxLabel)
	if gap < 1 {
		gap = 1
	}
	content.WriteString(strings.Repeat(" ", c.LabelWidth+1))
	content.WriteString(axisStyle.Render(minLabel + strings.Repeat(" ", gap) + maxLabel))

	return content.String()
}

// filled is the number of bar cells for a value clamped to the chart scale
func (c *BarChart) filled(bar Bar) int {
	if !bar.Defined || c.Max <= c.Min || c.Width <= 0 {
		return 0
	}
	v := math.Max(c.Min, math.Min(c.Max, bar.Value))
	return int(math.Round((v - c.Min) / (c.Max - c.Min) * float64(c.Width)))
}

func formatChartValue(value float64) string {
	if value == math.Trunc(value) {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.1f", value)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
