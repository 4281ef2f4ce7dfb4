package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/output"
	"github.com/novetrasys/npad/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// bigStepFactor is how many steps shift+arrow moves
var bigStepFactor = decimal.NewFromInt(10)

// ParameterSlider displays an adjustable parameter with visual slider
type ParameterSlider struct {
	Param     domain.AssumptionParameter
	Value     decimal.Decimal
	Width     int // Total width of slider bar
	IsFocused bool
}

// NewParameterSlider creates a slider for param set to value
func NewParameterSlider(param domain.AssumptionParameter, value decimal.Decimal) *ParameterSlider {
	s := &ParameterSlider{
		Param: param,
		Width: 30,
	}
	s.SetValue(value)
	return s
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment increases the value by one step, stopping at the maximum.
// It reports whether the value changed.
func (p *ParameterSlider) Increment() bool {
	return p.move(p.Param.Step)
}

// Decrement decreases the value by one step, stopping at the minimum
func (p *ParameterSlider) Decrement() bool {
	return p.move(p.Param.Step.Neg())
}

// BigIncrement moves up by ten steps
func (p *ParameterSlider) BigIncrement() bool {
	return p.move(p.Param.Step.Mul(bigStepFactor))
}

// BigDecrement moves down by ten steps
func (p *ParameterSlider) BigDecrement() bool {
	return p.move(p.Param.Step.Mul(bigStepFactor).Neg())
}

func (p *ParameterSlider) move(delta decimal.Decimal) bool {
	before := p.Value
	p.SetValue(p.Value.Add(delta))
	return !before.Equal(p.Value)
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	value = decimal.Max(p.Param.Min, decimal.Min(p.Param.Max, value))
	p.Value = p.Param.Normalize(value)
}

// Percentage returns the value as a fraction of the range
func (p *ParameterSlider) Percentage() float64 {
	span := p.Param.Max.Sub(p.Param.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Param.Min).Div(span).InexactFloat64()
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	content.WriteString(labelStyle.Render(p.Param.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(output.FormatParameterValue(p.Param.Unit, p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderSliderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(" ")
	content.WriteString(rangeStyle.Render(output.FormatParameterValue(p.Param.Unit, p.Param.Min) +
		" ─ " + output.FormatParameterValue(p.Param.Unit, p.Param.Max)))

	if p.IsFocused && p.Param.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Param.Description))
	}

	return content.String()
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}
	empty := p.Width - filled

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty > 1 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")

	return bar.String()
}

// RenderCompact returns a compact single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	label := labelStyle.Render(p.Param.Label + ":")
	value := valueStyle.Render(output.FormatParameterValue(p.Param.Unit, p.Value))
	return label + " " + value + " " + p.renderMiniSliderBar(10)
}

// renderMiniSliderBar creates a compact slider bar
func (p *ParameterSlider) renderMiniSliderBar(width int) string {
	filled := int(math.Round(float64(width-1) * p.Percentage()))

	var bar strings.Builder
	bar.WriteString("[")

	thumbStyle := tuistyles.SliderThumbStyle
	trackStyle := tuistyles.SliderTrackStyle

	for i := 0; i < width; i++ {
		if i == filled {
			bar.WriteString(thumbStyle.Render("●"))
		} else if i < filled {
			bar.WriteString(thumbStyle.Render("━"))
		} else {
			bar.WriteString(trackStyle.Render("─"))
		}
	}

	bar.WriteString("]")
	return bar.String()
}
