package breakeven

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Parameter:   %s\n", result.Parameter))
	sb.WriteString(fmt.Sprintf("Case:        %s\n", result.Case))
	sb.WriteString(fmt.Sprintf("Goal:        %s (target %s)\n", result.Goal, formatTarget(result.Goal, result.Target)))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Break-even value:  %s\n", FormatValue(result.Unit, result.OptimalValue)))
	sb.WriteString(fmt.Sprintf("Base value:        %s\n", FormatValue(result.Unit, result.BaseValue)))
	sb.WriteString(fmt.Sprintf("Change:            %s%s\n",
		tf.deltaSymbol(result.ChangeFromBase), FormatValue(result.Unit, result.ChangeFromBase.Abs())))
	sb.WriteString("\n")

	sb.WriteString("CASE AT BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	r := result.Result
	sb.WriteString(fmt.Sprintf("Plan PV:            $%s\n", r.PlanPV.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Patient PV:         $%s\n", r.PatientPV.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Collections PV:     $%s\n", r.CollectionsPV.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Review Cost:        -$%s\n", r.ReviewCostAsNegative.Abs().StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Net PV:             $%s\n", r.NetPV.StringFixed(2)))
	if r.YieldDefined() {
		sb.WriteString(fmt.Sprintf("Net PV %% Allowed:   %s%%\n", r.NetPVPercentOfAllowed.Decimal.StringFixed(2)))
	}
	sb.WriteString("\n")

	sb.WriteString("TARGET MATCH\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	diff := result.Achieved.Sub(result.Target)
	sb.WriteString(fmt.Sprintf("Target:      %s\n", formatTarget(result.Goal, result.Target)))
	sb.WriteString(fmt.Sprintf("Achieved:    %s\n", formatTarget(result.Goal, result.Achieved)))
	sb.WriteString(fmt.Sprintf("At base:     %s\n", formatTarget(result.Goal, result.BaseAchieved)))
	sb.WriteString(fmt.Sprintf("Difference:  %s%s\n", tf.deltaSymbol(diff), formatTarget(result.Goal, diff.Abs())))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats solutions for several parameters
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN BY PARAMETER\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-26s %16s %16s %16s\n", "Parameter", "Break-even", "Base", "Achieved"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-26s %16s %16s %16s\n",
			tf.truncate(res.Parameter, 26),
			FormatValue(res.Unit, res.OptimalValue),
			FormatValue(res.Unit, res.BaseValue),
			formatTarget(res.Goal, res.Achieved)))
	}
	sb.WriteString("\n")

	if len(result.Skipped) > 0 {
		sb.WriteString("NO SOLUTION\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		keys := make([]string, 0, len(result.Skipped))
		for k := range result.Skipped {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("%-26s %s\n", k, result.Skipped[k]))
		}
		sb.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// FormatValue renders a parameter value in its unit: fractions and rates as
// percentages, days as whole days, dollars with a dollar sign.
func FormatValue(unit string, v decimal.Decimal) string {
	switch unit {
	case domain.UnitFraction, domain.UnitRate:
		return v.Mul(hundred).StringFixed(2) + "%"
	case domain.UnitDays:
		return v.StringFixed(0) + " days"
	case domain.UnitDollars:
		return "$" + v.StringFixed(2)
	default:
		return v.String()
	}
}

func formatTarget(goal OptimizationGoal, v decimal.Decimal) string {
	if goal == GoalMatchNetPV {
		return "$" + v.StringFixed(2)
	}
	return v.StringFixed(2) + "%"
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
