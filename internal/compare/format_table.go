package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

const tableWidth = 86

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("CLAIM VALUATION COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 34
	caseWidth := 14
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %*s\n",
		nameWidth, "Scenario",
		caseWidth, "Case",
		numWidth, "Net PV",
		numWidth, "Net % Allow"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRows(compSet.BaseResult, nameWidth, caseWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRows(&compSet.AlternativeResults[i], nameWidth, caseWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			for _, c := range alt.Cases {
				sb.WriteString(fmt.Sprintf("  %-14s Net PV %s$%s", c.Label,
					tf.deltaSymbol(c.NetPVDiffFromBase), tf.formatDecimal(c.NetPVDiffFromBase)))
				if c.PercentDiffFromBase.Valid {
					sb.WriteString(fmt.Sprintf("  (%s%s pts)",
						tf.deltaSymbol(c.PercentDiffFromBase.Decimal),
						c.PercentDiffFromBase.Decimal.StringFixed(2)))
				}
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRows formats one line per case of a scenario
func (tf *TableFormatter) formatRows(result *ComparisonResult, nameWidth, caseWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	var sb strings.Builder
	for i, c := range result.Cases {
		label := ""
		if i == 0 {
			label = tf.truncate(name, nameWidth)
		}
		sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %*s\n",
			nameWidth, label,
			caseWidth, tf.truncate(c.Label, caseWidth),
			numWidth, "$"+tf.formatDecimal(c.NetPV),
			numWidth, tf.formatPercent(c.NetPVPercent)))
	}
	return sb.String()
}

// formatDecimal formats a decimal for display with two places and separators
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var out strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	return out.String() + frac
}

func (tf *TableFormatter) formatPercent(p decimal.NullDecimal) string {
	if !p.Valid {
		return "n/a"
	}
	return p.Decimal.StringFixed(2) + "%"
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))

	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(" | ")
		parts := make([]string, 0, len(alt.Cases))
		for _, c := range alt.Cases {
			change := "="
			if c.NetPVDiffFromBase.IsPositive() {
				change = "+$" + tf.formatDecimal(c.NetPVDiffFromBase)
			} else if c.NetPVDiffFromBase.IsNegative() {
				change = "-$" + tf.formatDecimal(c.NetPVDiffFromBase)
			}
			parts = append(parts, c.Label+" "+change)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, strings.Join(parts, ", ")))
	}

	return sb.String()
}
