package output

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is one rendered evaluation run.
type Report struct {
	ID           uuid.UUID               `json:"id" yaml:"id"`
	GeneratedAt  time.Time               `json:"generated_at" yaml:"generated_at"`
	PresetName   string                  `json:"preset,omitempty" yaml:"preset,omitempty"`
	ReviewCosts  domain.ReviewCosts      `json:"review_costs" yaml:"review_costs"`
	ReviewPolicy domain.ReviewCostPolicy `json:"review_policy" yaml:"review_policy"`
	Valuation    *domain.Valuation       `json:"valuation" yaml:"-"`
}

// NewReport stamps a valuation with a fresh ID and the current time.
func NewReport(presetName string, valuation *domain.Valuation, costs domain.ReviewCosts, policy domain.ReviewCostPolicy) *Report {
	return &Report{
		ID:           uuid.New(),
		GeneratedAt:  time.Now().UTC(),
		PresetName:   presetName,
		ReviewCosts:  costs,
		ReviewPolicy: policy,
		Valuation:    valuation,
	}
}

// NewReportFromConfiguration builds a report for a valuation of config.
func NewReportFromConfiguration(config *domain.Configuration, valuation *domain.Valuation) *Report {
	return NewReport(config.Preset, valuation, config.ReviewCosts, config.ReviewPolicy)
}

// Title is the heading shared by the text formats.
func (r *Report) Title() string {
	if r.PresetName == "" {
		return "CLAIM PRESENT VALUE ANALYSIS"
	}
	return "CLAIM PRESENT VALUE ANALYSIS: " + strings.ToUpper(r.PresetName)
}

// Cases returns the valued cases, or nil when the report carries no valuation.
func (r *Report) Cases() []domain.LabeledResult {
	if r.Valuation == nil {
		return nil
	}
	return r.Valuation.Cases
}

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as currency with two places and
// thousands separators, e.g. -$1,234.50
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatPercentage formats a decimal that is already in percent
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatYield formats net PV as a percent of allowed, "n/a" when undefined
func FormatYield(yield decimal.NullDecimal) string {
	if !yield.Valid {
		return "n/a"
	}
	return FormatPercentage(yield.Decimal)
}

// FormatFraction formats a 0-1 fraction as a percentage
func FormatFraction(f decimal.Decimal) string {
	return FormatPercentage(f.Mul(hundred))
}
