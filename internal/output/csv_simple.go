package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer implements the simple summary CSV output (one row per case).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Case", "AllowedAmount", "ReviewCost", "PlanPV", "PatientPV", "CollectionsPV", "NetPV", "NetPVPercentOfAllowed", "RepaymentRateApplied"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, lc := range report.Cases() {
		r := lc.Result
		yield := ""
		if r.YieldDefined() {
			yield = r.NetPVPercentOfAllowed.Decimal.StringFixed(2)
		}
		row := []string{
			lc.Label,
			r.AllowedAmount.StringFixed(2),
			lc.ReviewCost.StringFixed(2),
			r.PlanPV.StringFixed(2),
			r.PatientPV.StringFixed(2),
			r.CollectionsPV.StringFixed(2),
			r.NetPV.StringFixed(2),
			yield,
			r.RepaymentRateApplied.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
