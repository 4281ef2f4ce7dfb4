package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parameter units
const (
	UnitFraction = "fraction"
	UnitRate     = "rate"
	UnitDays     = "days"
	UnitDollars  = "dollars"
)

// AssumptionParameter describes one overridable assumption and the range the
// interactive sliders offer for it.
type AssumptionParameter struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	Min         decimal.Decimal `json:"min"`
	Max         decimal.Decimal `json:"max"`
	Step        decimal.Decimal `json:"step"`
}

// Integer reports whether the parameter only takes whole values.
func (p AssumptionParameter) Integer() bool {
	return p.Unit == UnitDays
}

// Normalize rounds values of whole-number parameters.
func (p AssumptionParameter) Normalize(v decimal.Decimal) decimal.Decimal {
	if p.Integer() {
		return v.Round(0)
	}
	return v
}

// RangeFor returns the slider range of p narrowed so that every value in it
// keeps b valid. The band ceilings are bounded by each other: the small
// ceiling stays a step below the medium one and the medium ceiling a step
// above the small one.
func (p AssumptionParameter) RangeFor(b AssumptionBundle) (lo, hi decimal.Decimal) {
	lo, hi = p.Min, p.Max
	switch p.Key {
	case KeySmallBandCeiling:
		hi = decimal.Min(hi, b.MediumBandCeiling.Sub(p.Step))
	case KeyMediumBandCeiling:
		lo = decimal.Max(lo, b.SmallBandCeiling.Add(p.Step))
	}
	return lo, hi
}

var (
	stepCent = decimal.NewFromFloat(0.01)
	stepDay  = decimal.NewFromInt(1)
	one      = decimal.NewFromInt(1)
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

var assumptionParameters = []AssumptionParameter{
	{KeyActuarialValue, "Plan Share (Actuarial Value)", UnitFraction, "share of the allowed amount the plan pays", dec(0.6), dec(0.95), stepCent},
	{KeyPlanWriteoffRate, "Plan Write-off", UnitFraction, "portion of the plan-owed amount never collected", decimal.Zero, dec(0.10), stepCent},
	{KeyPlanCollectionDays, "Plan Days to Collect", UnitDays, "days until the plan pays", decimal.Zero, decimal.NewFromInt(180), stepDay},
	{KeyPatientCollectionDays, "Patient Days to Collect", UnitDays, "days until the patient pays", decimal.Zero, decimal.NewFromInt(365), stepDay},
	{KeyAnnualDiscountRate, "Discount Rate (annual)", UnitRate, "annual rate used to discount every cash flow", decimal.Zero, dec(0.25), stepCent},
	{KeyRepaymentRateSmall, "Repayment, small balance", UnitFraction, "repayment probability for balances up to the small band ceiling", decimal.Zero, one, stepCent},
	{KeyRepaymentRateMedium, "Repayment, medium balance", UnitFraction, "repayment probability for balances up to the medium band ceiling", decimal.Zero, one, stepCent},
	{KeyRepaymentRateLarge, "Repayment, large balance", UnitFraction, "repayment probability for balances above the medium band ceiling", decimal.Zero, one, stepCent},
	{KeySmallBandCeiling, "Small Band Ceiling", UnitDollars, "upper bound of the small repayment band", decimal.NewFromInt(1), decimal.NewFromInt(5000), decimal.NewFromInt(10)},
	{KeyMediumBandCeiling, "Medium Band Ceiling", UnitDollars, "upper bound of the medium repayment band", decimal.NewFromInt(1), decimal.NewFromInt(20000), decimal.NewFromInt(50)},
	{KeyPlacementFraction, "Unpaid Sent to Collections", UnitFraction, "share of the unpaid patient balance placed with an agency", decimal.Zero, one, stepCent},
	{KeyRecoveryRate, "Collections Recovery Rate", UnitFraction, "share of the placed balance recovered", decimal.Zero, one, stepCent},
	{KeyCollectorFeeRate, "Collections Fee", UnitFraction, "agency fee as a share of the recovered amount", decimal.Zero, one, stepCent},
	{KeyCollectionsCashDays, "Collections Cash Day", UnitDays, "days until collections proceeds arrive", decimal.Zero, decimal.NewFromInt(720), stepDay},
}

// AssumptionParameters returns the overridable assumptions in display order.
func AssumptionParameters() []AssumptionParameter {
	out := make([]AssumptionParameter, len(assumptionParameters))
	copy(out, assumptionParameters)
	return out
}

// LookupParameter finds a parameter by key. Matching ignores case and
// accepts dashes in place of underscores.
func LookupParameter(key string) (AssumptionParameter, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	for _, p := range assumptionParameters {
		if p.Key == normalized {
			return p, true
		}
	}
	return AssumptionParameter{}, false
}

// ParameterKeys lists every assumption key in display order.
func ParameterKeys() []string {
	keys := make([]string, 0, len(assumptionParameters))
	for _, p := range assumptionParameters {
		keys = append(keys, p.Key)
	}
	return keys
}
