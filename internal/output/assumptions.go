package output

import (
	"fmt"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// AssumptionLine is one assumption rendered for display.
type AssumptionLine struct {
	Key   string
	Label string
	Value string
}

// AssumptionLines lists every assumption of bundle in catalog order with its
// value formatted for its unit.
func AssumptionLines(bundle domain.AssumptionBundle) []AssumptionLine {
	params := domain.AssumptionParameters()
	lines := make([]AssumptionLine, 0, len(params))
	for _, p := range params {
		v, err := bundle.Get(p.Key)
		if err != nil {
			continue
		}
		lines = append(lines, AssumptionLine{Key: p.Key, Label: p.Label, Value: FormatParameterValue(p.Unit, v)})
	}
	return lines
}

// FormatParameterValue renders an assumption value in its unit.
func FormatParameterValue(unit string, v decimal.Decimal) string {
	switch unit {
	case domain.UnitFraction, domain.UnitRate:
		return FormatFraction(v)
	case domain.UnitDays:
		return fmt.Sprintf("%s days", v.StringFixed(0))
	case domain.UnitDollars:
		return FormatCurrency(v)
	default:
		return v.String()
	}
}

// DefaultNotes explains the default assumptions in rendered reports.
var DefaultNotes = []string{
	"Default plan share 0.842 is the ESI in-network actuarial value",
	"Repayment by patient balance: up to $250 ~50%, $250 to $1,000 ~43%, above $1,000 ~34%",
	"Collections: 50% of unpaid balances placed, 15% recovered, 25% agency fee",
	"Review cost per encounter: $61 outpatient / ED, $215 inpatient / surgery",
}
