package domain

import (
	"github.com/shopspring/decimal"
)

// CaseInput is one claim to value.
type CaseInput struct {
	Label         string          `yaml:"label" json:"label"`
	AllowedAmount decimal.Decimal `yaml:"allowed_amount" json:"allowed_amount"`
	ReviewCost    decimal.Decimal `yaml:"review_cost" json:"review_cost"`
}

// Validate checks the case amounts.
func (c CaseInput) Validate() error {
	return ValidateCaseInput(c.AllowedAmount, c.ReviewCost)
}

// ValidateCaseInput rejects negative allowed amounts and review costs.
func ValidateCaseInput(allowedAmount, reviewCost decimal.Decimal) error {
	if allowedAmount.IsNegative() {
		return NewInvalidParameterError("allowed_amount", allowedAmount, "must be non-negative")
	}
	if reviewCost.IsNegative() {
		return NewInvalidParameterError("review_cost", reviewCost, "must be non-negative")
	}
	return nil
}

// CollectionsWaterfall tracks the unpaid patient balance through the
// collections funnel. Each stage is no larger than the one before it.
type CollectionsWaterfall struct {
	Unpaid        decimal.Decimal `json:"unpaid"`
	Placed        decimal.Decimal `json:"placed"`
	Recovered     decimal.Decimal `json:"recovered"`
	NetToProvider decimal.Decimal `json:"net_to_provider"`
}

// ValuationResult is the present-value breakdown for a single claim.
type ValuationResult struct {
	AllowedAmount decimal.Decimal `json:"allowed_amount"`

	PlanAllowed    decimal.Decimal `json:"plan_allowed"`
	PatientAllowed decimal.Decimal `json:"patient_allowed"`

	PlanNet decimal.Decimal `json:"plan_net"`
	PlanPV  decimal.Decimal `json:"plan_pv"`

	PatientPaid decimal.Decimal `json:"patient_paid"`
	PatientPV   decimal.Decimal `json:"patient_pv"`

	Waterfall     CollectionsWaterfall `json:"waterfall"`
	CollectionsPV decimal.Decimal      `json:"collections_pv"`

	ReviewCostAsNegative decimal.Decimal `json:"review_cost_as_negative"`
	NetPV                decimal.Decimal `json:"net_pv"`

	// NetPVPercentOfAllowed is invalid (null in JSON) when AllowedAmount is zero.
	NetPVPercentOfAllowed decimal.NullDecimal `json:"net_pv_percent_of_allowed"`
	RepaymentRateApplied  decimal.Decimal     `json:"repayment_rate_applied"`
}

// YieldDefined reports whether NetPVPercentOfAllowed carries a value.
func (r ValuationResult) YieldDefined() bool {
	return r.NetPVPercentOfAllowed.Valid
}

// GrossPV is the sum of the three discounted cash-flow terms, before review cost.
func (r ValuationResult) GrossPV() decimal.Decimal {
	return r.PlanPV.Add(r.PatientPV).Add(r.CollectionsPV)
}

// LabeledResult pairs a valuation with the case that produced it.
type LabeledResult struct {
	Label      string          `json:"label"`
	ReviewCost decimal.Decimal `json:"review_cost"`
	Result     ValuationResult `json:"result"`
}

// Valuation is an ordered set of case results computed from one bundle.
type Valuation struct {
	Assumptions AssumptionBundle `json:"assumptions"`
	Cases       []LabeledResult  `json:"cases"`
}

// Case returns the result with the given label.
func (v *Valuation) Case(label string) (LabeledResult, bool) {
	for _, c := range v.Cases {
		if c.Label == label {
			return c, true
		}
	}
	return LabeledResult{}, false
}
