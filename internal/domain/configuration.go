package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Case bands select which review-cost rule applies to a configured case.
const (
	BandSmall = "small"
	BandLarge = "large"
)

// CaseAmounts are the allowed amounts of the standard small and large cases.
type CaseAmounts struct {
	Small decimal.Decimal `yaml:"small" json:"small"`
	Large decimal.Decimal `yaml:"large" json:"large"`
}

// DefaultCaseAmounts returns $1,000 and $10,000.
func DefaultCaseAmounts() CaseAmounts {
	return CaseAmounts{Small: decimal.NewFromInt(1000), Large: decimal.NewFromInt(10000)}
}

// CaseSpec is a case as written in a configuration file. When ReviewCost is
// omitted the review-cost policy resolves it using the small or large rule.
type CaseSpec struct {
	Label         string           `yaml:"label" json:"label"`
	AllowedAmount decimal.Decimal  `yaml:"allowed_amount" json:"allowed_amount"`
	ReviewCost    *decimal.Decimal `yaml:"review_cost,omitempty" json:"review_cost,omitempty"`
	Band          string           `yaml:"band,omitempty" json:"band,omitempty"`
}

// Configuration is the complete input of one evaluation run.
type Configuration struct {
	Preset       string           `yaml:"preset,omitempty" json:"preset,omitempty"`
	Assumptions  AssumptionBundle `yaml:"assumptions" json:"assumptions"`
	ReviewCosts  ReviewCosts      `yaml:"review_costs" json:"review_costs"`
	ReviewPolicy ReviewCostPolicy `yaml:"review_policy" json:"review_policy"`
	Amounts      CaseAmounts      `yaml:"amounts" json:"amounts"`
	Cases        []CaseSpec       `yaml:"cases,omitempty" json:"cases,omitempty"`
}

// DefaultConfiguration returns the default bundle, costs, policy and amounts.
func DefaultConfiguration() Configuration {
	return Configuration{
		Assumptions:  DefaultAssumptionBundle(),
		ReviewCosts:  DefaultReviewCosts(),
		ReviewPolicy: DefaultReviewCostPolicy(),
		Amounts:      DefaultCaseAmounts(),
	}
}

// StandardAmounts returns the small/large view of the configuration.
func (c *Configuration) StandardAmounts() StandardAmounts {
	return StandardAmounts{
		Small:  c.Amounts.Small,
		Large:  c.Amounts.Large,
		Costs:  c.ReviewCosts,
		Policy: c.ReviewPolicy,
	}
}

// CaseInputs resolves the configured cases. Without explicit cases the
// standard small and large cases are returned.
func (c *Configuration) CaseInputs() []CaseInput {
	if len(c.Cases) == 0 {
		return c.StandardAmounts().Cases()
	}

	inputs := make([]CaseInput, 0, len(c.Cases))
	for _, spec := range c.Cases {
		in := CaseInput{Label: spec.Label, AllowedAmount: spec.AllowedAmount}
		switch {
		case spec.ReviewCost != nil:
			in.ReviewCost = *spec.ReviewCost
		case strings.EqualFold(spec.Band, BandLarge):
			in.ReviewCost = c.ReviewPolicy.SelectLarge(spec.AllowedAmount, c.ReviewCosts)
		default:
			in.ReviewCost = c.ReviewPolicy.SelectSmall(spec.AllowedAmount, c.ReviewCosts)
		}
		inputs = append(inputs, in)
	}
	return inputs
}
