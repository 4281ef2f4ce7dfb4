package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleVerboseFormatter walks through every case step by step: the split,
// plan and patient cash flows, the collections waterfall and the net result.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "verbose" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED "+report.Title())
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintf(&buf, "Report ID: %s\n", report.ID)
	fmt.Fprintln(&buf)

	if report.Valuation != nil {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, line := range AssumptionLines(report.Valuation.Assumptions) {
			fmt.Fprintf(&buf, "  %-32s %s\n", line.Label+":", line.Value)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "REVIEW COST PER ENCOUNTER:")
	fmt.Fprintf(&buf, "  Outpatient / ED:     %s\n", FormatCurrency(report.ReviewCosts.Outpatient))
	fmt.Fprintf(&buf, "  Inpatient / Surgery: %s\n", FormatCurrency(report.ReviewCosts.Inpatient))
	fmt.Fprintln(&buf)

	for i, lc := range report.Cases() {
		r := lc.Result
		fmt.Fprintf(&buf, "CASE %d: %s\n", i+1, lc.Label)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "  Allowed Amount:          %s\n", FormatCurrency(r.AllowedAmount))
		fmt.Fprintf(&buf, "  Review Cost:             %s\n", FormatCurrency(lc.ReviewCost))
		fmt.Fprintln(&buf)

		fmt.Fprintln(&buf, "PLAN:")
		fmt.Fprintf(&buf, "  Plan Allowed:            %s\n", FormatCurrency(r.PlanAllowed))
		fmt.Fprintf(&buf, "  After Write-off:         %s\n", FormatCurrency(r.PlanNet))
		fmt.Fprintf(&buf, "  Present Value:           %s\n", FormatCurrency(r.PlanPV))
		fmt.Fprintln(&buf)

		fmt.Fprintln(&buf, "PATIENT:")
		fmt.Fprintf(&buf, "  Patient Allowed:         %s\n", FormatCurrency(r.PatientAllowed))
		fmt.Fprintf(&buf, "  Repayment Rate:          %s\n", FormatFraction(r.RepaymentRateApplied))
		fmt.Fprintf(&buf, "  Expected Payment:        %s\n", FormatCurrency(r.PatientPaid))
		fmt.Fprintf(&buf, "  Present Value:           %s\n", FormatCurrency(r.PatientPV))
		fmt.Fprintln(&buf)

		fmt.Fprintln(&buf, "COLLECTIONS:")
		fmt.Fprintf(&buf, "  Unpaid Balance:          %s\n", FormatCurrency(r.Waterfall.Unpaid))
		fmt.Fprintf(&buf, "  Placed:                  %s\n", FormatCurrency(r.Waterfall.Placed))
		fmt.Fprintf(&buf, "  Recovered:               %s\n", FormatCurrency(r.Waterfall.Recovered))
		fmt.Fprintf(&buf, "  Net of Agency Fee:       %s\n", FormatCurrency(r.Waterfall.NetToProvider))
		fmt.Fprintf(&buf, "  Present Value:           %s\n", FormatCurrency(r.CollectionsPV))
		fmt.Fprintln(&buf)

		fmt.Fprintln(&buf, "RESULT:")
		fmt.Fprintf(&buf, "  Gross PV:                %s\n", FormatCurrency(r.GrossPV()))
		fmt.Fprintf(&buf, "  Review Cost:             %s\n", FormatCurrency(r.ReviewCostAsNegative))
		fmt.Fprintf(&buf, "  NET PRESENT VALUE:       %s\n", FormatCurrency(r.NetPV))
		fmt.Fprintf(&buf, "  Net %% of Allowed:        %s\n", FormatYield(r.NetPVPercentOfAllowed))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "NOTES:")
	for _, n := range DefaultNotes {
		fmt.Fprintf(&buf, "• %s\n", n)
	}

	return buf.Bytes(), nil
}
