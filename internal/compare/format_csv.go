package compare

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV, one row per scenario and case
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Case",
		"Allowed Amount",
		"Review Cost",
		"Net PV",
		"Net PV % of Allowed",
		"Net PV Diff from Base",
		"Net % Diff from Base (pts)",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		for _, row := range cf.formatRows(compSet.BaseResult) {
			if err := writer.Write(row); err != nil {
				return "", err
			}
		}
	}

	for i := range compSet.AlternativeResults {
		for _, row := range cf.formatRows(&compSet.AlternativeResults[i]) {
			if err := writer.Write(row); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRows formats a comparison result as CSV rows
func (cf *CSVFormatter) formatRows(result *ComparisonResult) [][]string {
	rows := make([][]string, 0, len(result.Cases))
	for _, c := range result.Cases {
		rows = append(rows, []string{
			result.ScenarioName,
			result.Source,
			c.Label,
			c.AllowedAmount.StringFixed(2),
			c.ReviewCost.StringFixed(2),
			c.NetPV.StringFixed(2),
			formatNull(c.NetPVPercent),
			c.NetPVDiffFromBase.StringFixed(2),
			formatNull(c.PercentDiffFromBase),
		})
	}
	return rows
}

func formatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
