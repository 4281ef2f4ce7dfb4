package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"yield": FormatYield,
	"width": barWidth,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	var lines []AssumptionLine
	if report.Valuation != nil {
		lines = AssumptionLines(report.Valuation.Assumptions)
	}
	data := struct {
		*Report
		Title       string
		Assumptions []AssumptionLine
		Notes       []string
	}{report, report.Title(), lines, DefaultNotes}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// barWidth is the CSS width of a yield bar, clamped to 0-100.
func barWidth(yield decimal.NullDecimal) string {
	if !yield.Valid {
		return "0"
	}
	return decimal.Min(decimal.Max(yield.Decimal, decimal.Zero), hundred).StringFixed(1)
}
