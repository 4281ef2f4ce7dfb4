package domain

import (
	"github.com/shopspring/decimal"
)

// Case labels used by the standard two-case view.
const (
	SmallCaseLabel = "Small Case"
	LargeCaseLabel = "Large Case"
)

// ReviewCosts are the billing and insurance review costs per encounter.
type ReviewCosts struct {
	Outpatient decimal.Decimal `yaml:"outpatient" json:"outpatient"`
	Inpatient  decimal.Decimal `yaml:"inpatient" json:"inpatient"`
}

// DefaultReviewCosts returns the baseline outpatient/ED and inpatient/surgery costs.
func DefaultReviewCosts() ReviewCosts {
	return ReviewCosts{
		Outpatient: decimal.NewFromInt(61),
		Inpatient:  decimal.NewFromInt(215),
	}
}

// Validate rejects negative costs.
func (c ReviewCosts) Validate() error {
	if c.Outpatient.IsNegative() {
		return NewInvalidParameterError("review_costs.outpatient", c.Outpatient, "must be non-negative")
	}
	if c.Inpatient.IsNegative() {
		return NewInvalidParameterError("review_costs.inpatient", c.Inpatient, "must be non-negative")
	}
	return nil
}

// ReviewCostPolicy picks which review cost applies to a case from its allowed
// amount. Amounts between the two thresholds fall back to the outpatient
// cost for both the small and the large case.
type ReviewCostPolicy struct {
	SmallCaseCeiling decimal.Decimal `yaml:"small_case_ceiling" json:"small_case_ceiling"`
	LargeCaseFloor   decimal.Decimal `yaml:"large_case_floor" json:"large_case_floor"`
}

// DefaultReviewCostPolicy returns the $2,000 / $5,000 thresholds.
func DefaultReviewCostPolicy() ReviewCostPolicy {
	return ReviewCostPolicy{
		SmallCaseCeiling: decimal.NewFromInt(2000),
		LargeCaseFloor:   decimal.NewFromInt(5000),
	}
}

// Validate requires non-negative thresholds with the ceiling not above the floor.
func (p ReviewCostPolicy) Validate() error {
	if p.SmallCaseCeiling.IsNegative() {
		return NewInvalidParameterError("review_policy.small_case_ceiling", p.SmallCaseCeiling, "must be non-negative")
	}
	if p.LargeCaseFloor.IsNegative() {
		return NewInvalidParameterError("review_policy.large_case_floor", p.LargeCaseFloor, "must be non-negative")
	}
	if p.SmallCaseCeiling.GreaterThan(p.LargeCaseFloor) {
		return NewInvalidParameterError("review_policy.small_case_ceiling", p.SmallCaseCeiling, "must not exceed large_case_floor")
	}
	return nil
}

// SelectSmall returns the outpatient cost when allowed is at or below the
// small-case ceiling, otherwise the inpatient cost.
func (p ReviewCostPolicy) SelectSmall(allowed decimal.Decimal, costs ReviewCosts) decimal.Decimal {
	if allowed.LessThanOrEqual(p.SmallCaseCeiling) {
		return costs.Outpatient
	}
	return costs.Inpatient
}

// SelectLarge returns the inpatient cost when allowed is at or above the
// large-case floor, otherwise the outpatient cost.
func (p ReviewCostPolicy) SelectLarge(allowed decimal.Decimal, costs ReviewCosts) decimal.Decimal {
	if allowed.GreaterThanOrEqual(p.LargeCaseFloor) {
		return costs.Inpatient
	}
	return costs.Outpatient
}

// StandardCases builds the "Small Case" and "Large Case" inputs with their
// review costs resolved by the policy.
func StandardCases(small, large decimal.Decimal, costs ReviewCosts, policy ReviewCostPolicy) []CaseInput {
	return []CaseInput{
		{Label: SmallCaseLabel, AllowedAmount: small, ReviewCost: policy.SelectSmall(small, costs)},
		{Label: LargeCaseLabel, AllowedAmount: large, ReviewCost: policy.SelectLarge(large, costs)},
	}
}

// StandardAmounts describes the two-case view: a small and a large allowed
// amount plus the costs and policy used to pick their review costs.
type StandardAmounts struct {
	Small  decimal.Decimal  `yaml:"small" json:"small"`
	Large  decimal.Decimal  `yaml:"large" json:"large"`
	Costs  ReviewCosts      `yaml:"review_costs" json:"review_costs"`
	Policy ReviewCostPolicy `yaml:"review_policy" json:"review_policy"`
}

// DefaultStandardAmounts returns $1,000 / $10,000 with default costs and policy.
func DefaultStandardAmounts() StandardAmounts {
	return StandardAmounts{
		Small:  decimal.NewFromInt(1000),
		Large:  decimal.NewFromInt(10000),
		Costs:  DefaultReviewCosts(),
		Policy: DefaultReviewCostPolicy(),
	}
}

// Validate checks the costs and the policy.
func (s StandardAmounts) Validate() error {
	if err := s.Costs.Validate(); err != nil {
		return err
	}
	return s.Policy.Validate()
}

// Cases builds the labelled small and large case inputs.
func (s StandardAmounts) Cases() []CaseInput {
	return StandardCases(s.Small, s.Large, s.Costs, s.Policy)
}
