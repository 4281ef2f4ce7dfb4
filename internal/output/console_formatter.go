package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ChartWidth is the width in characters of a 100% bar.
const ChartWidth = 50

// ConsoleFormatter renders the results table and a net % of allowed chart.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintln(&buf, report.Title())
	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintf(&buf, "Report ID: %s\n", report.ID)
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(&buf)

	if report.Valuation != nil {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 96))
		for _, line := range AssumptionLines(report.Valuation.Assumptions) {
			fmt.Fprintf(&buf, "  %-32s %s\n", line.Label+":", line.Value)
		}
		fmt.Fprintln(&buf)
	}

	cases := report.Cases()
	if len(cases) == 0 {
		fmt.Fprintln(&buf, "No cases evaluated")
		return buf.Bytes(), nil
	}

	fmt.Fprintln(&buf, "RESULTS (PRESENT VALUE)")
	fmt.Fprintln(&buf, strings.Repeat("-", 96))
	fmt.Fprintf(&buf, "%-14s %12s %12s %12s %12s %12s %12s %6s\n",
		"Case", "Allowed", "Plan PV", "Patient PV", "Coll. PV", "Review Cost", "Net PV", "Net %")
	for _, lc := range cases {
		r := lc.Result
		fmt.Fprintf(&buf, "%-14s %12s %12s %12s %12s %12s %12s %6s\n",
			truncate(lc.Label, 14),
			FormatCurrency(r.AllowedAmount),
			FormatCurrency(r.PlanPV),
			FormatCurrency(r.PatientPV),
			FormatCurrency(r.CollectionsPV),
			FormatCurrency(r.ReviewCostAsNegative),
			FormatCurrency(r.NetPV),
			shortYield(r.NetPVPercentOfAllowed))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "NET % OF ALLOWED")
	fmt.Fprintln(&buf, strings.Repeat("-", 96))
	for _, lc := range cases {
		fmt.Fprintf(&buf, "%-14s |%s| %s\n",
			truncate(lc.Label, 14),
			YieldBar(lc.Result.NetPVPercentOfAllowed, ChartWidth),
			FormatYield(lc.Result.NetPVPercentOfAllowed))
	}
	fmt.Fprintf(&buf, "%-14s  0%%%s100%%\n", "", strings.Repeat(" ", ChartWidth-5))

	return buf.Bytes(), nil
}

// YieldBar draws yield as a bar of width characters. The bar is clamped to
// 0-100% and left empty when the yield is undefined.
func YieldBar(yield decimal.NullDecimal, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if yield.Valid {
		p := decimal.Min(decimal.Max(yield.Decimal, decimal.Zero), hundred)
		filled = int(p.Mul(decimal.NewFromInt(int64(width))).Div(hundred).Round(0).IntPart())
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func shortYield(yield decimal.NullDecimal) string {
	if !yield.Valid {
		return "n/a"
	}
	return yield.Decimal.StringFixed(1)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
