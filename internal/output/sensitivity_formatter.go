package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/domain"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}

	var buf bytes.Buffer
	param := analysis.Parameter

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Base Case: %s = %s\n", param.Name, FormatParameterValue(param.Unit, param.BaseValue))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n",
		FormatParameterValue(param.Unit, param.MinValue),
		FormatParameterValue(param.Unit, param.MaxValue),
		param.Steps)
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(&buf)

	// one Net PV and one Net % column per case
	fmt.Fprintf(&buf, "%-16s", param.Name)
	for _, c := range analysis.Baseline {
		fmt.Fprintf(&buf, " %14s %8s", truncate(c.Label, 14), "Net %")
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, strings.Repeat("-", 16+24*len(analysis.Baseline)))

	for _, point := range analysis.Points {
		value := FormatParameterValue(param.Unit, point.ParameterValue)
		if point.ParameterValue.Equal(param.BaseValue) {
			value += " ←"
		}
		fmt.Fprintf(&buf, "%-16s", value)
		for _, c := range point.Cases {
			fmt.Fprintf(&buf, " %14s %8s", FormatCurrency(c.NetPV), shortYield(c.NetPVPercent))
		}
		fmt.Fprintln(&buf)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SENSITIVITY:")
	for _, cs := range analysis.Summary.Cases {
		fmt.Fprintf(&buf, "  %s: Net PV %s to %s (range %s), net %% spread %s points\n",
			cs.Label,
			FormatCurrency(cs.MinNetPV),
			FormatCurrency(cs.MaxNetPV),
			FormatCurrency(cs.NetPVRange),
			cs.PercentSpread.StringFixed(2))
	}
	if analysis.Summary.MostSensitiveCase != "" {
		fmt.Fprintf(&buf, "\nMOST SENSITIVE CASE: %s\n", analysis.Summary.MostSensitiveCase)
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV, one row
// per sweep point and case
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"parameter_name", "parameter_value", "case", "net_pv", "net_pv_percent", "net_pv_change", "net_pv_change_pct"}); err != nil {
		return "", err
	}
	for _, point := range analysis.Points {
		for _, c := range point.Cases {
			yield := ""
			if c.NetPVPercent.Valid {
				yield = c.NetPVPercent.Decimal.StringFixed(4)
			}
			row := []string{
				analysis.Parameter.Name,
				point.ParameterValue.String(),
				c.Label,
				c.NetPV.StringFixed(2),
				yield,
				c.NetPVChange.StringFixed(2),
				c.NetPVChangePct.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	key := strings.ToLower(strings.TrimSpace(format))
	if target, ok := aliases[key]; ok {
		key = target
	}
	switch key {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}
