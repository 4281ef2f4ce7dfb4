package scenes

import (
	"fmt"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// Keys of the non-assumption inputs the parameters scene edits. They share
// ParameterChangedMsg with the assumption keys.
const (
	KeyReviewCostOutpatient = "review_cost_outpatient"
	KeyReviewCostInpatient  = "review_cost_inpatient"
	KeySmallAllowed         = "small_allowed"
	KeyLargeAllowed         = "large_allowed"
)

var inputParameters = []domain.AssumptionParameter{
	{Key: KeyReviewCostOutpatient, Label: "Review Cost, Outpatient / ED", Unit: domain.UnitDollars,
		Description: "billing and insurance review cost per outpatient encounter",
		Min:         decimal.Zero, Max: decimal.NewFromInt(1000), Step: decimal.NewFromInt(1)},
	{Key: KeyReviewCostInpatient, Label: "Review Cost, Inpatient / Surgery", Unit: domain.UnitDollars,
		Description: "billing and insurance review cost per inpatient encounter",
		Min:         decimal.Zero, Max: decimal.NewFromInt(2000), Step: decimal.NewFromInt(1)},
	{Key: KeySmallAllowed, Label: "Small Case Allowed", Unit: domain.UnitDollars,
		Description: "allowed amount of the small case",
		Min:         decimal.NewFromInt(100), Max: decimal.NewFromInt(100000), Step: decimal.NewFromInt(100)},
	{Key: KeyLargeAllowed, Label: "Large Case Allowed", Unit: domain.UnitDollars,
		Description: "allowed amount of the large case",
		Min:         decimal.NewFromInt(100), Max: decimal.NewFromInt(1000000), Step: decimal.NewFromInt(1000)},
}

// InputParameters returns the slider ranges of the review costs and the
// standard case amounts.
func InputParameters() []domain.AssumptionParameter {
	out := make([]domain.AssumptionParameter, len(inputParameters))
	copy(out, inputParameters)
	return out
}

// EditableInputs returns the inputs cfg uses. The allowed-amount sliders only
// size the standard cases, so they are left out when cfg lists its own cases.
func EditableInputs(cfg *domain.Configuration) []domain.AssumptionParameter {
	out := make([]domain.AssumptionParameter, 0, len(inputParameters))
	for _, p := range inputParameters {
		if isAmountKey(p.Key) && len(cfg.Cases) > 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isAmountKey(key string) bool {
	return key == KeySmallAllowed || key == KeyLargeAllowed
}

// InputValue reads an input key from cfg
func InputValue(cfg *domain.Configuration, key string) (decimal.Decimal, bool) {
	switch key {
	case KeyReviewCostOutpatient:
		return cfg.ReviewCosts.Outpatient, true
	case KeyReviewCostInpatient:
		return cfg.ReviewCosts.Inpatient, true
	case KeySmallAllowed:
		return cfg.Amounts.Small, true
	case KeyLargeAllowed:
		return cfg.Amounts.Large, true
	}
	return decimal.Zero, false
}

// ApplyParameter sets key on cfg. Assumption keys are written through the
// bundle; day keys must be whole numbers.
func ApplyParameter(cfg *domain.Configuration, key string, value decimal.Decimal) error {
	if isAmountKey(key) && len(cfg.Cases) > 0 {
		return fmt.Errorf("%s sizes the standard cases; this configuration lists its own cases", key)
	}
	switch key {
	case KeyReviewCostOutpatient:
		cfg.ReviewCosts.Outpatient = value
	case KeyReviewCostInpatient:
		cfg.ReviewCosts.Inpatient = value
	case KeySmallAllowed:
		cfg.Amounts.Small = value
	case KeyLargeAllowed:
		cfg.Amounts.Large = value
	default:
		bundle, err := cfg.Assumptions.With(key, value)
		if err != nil {
			return err
		}
		cfg.Assumptions = bundle
	}
	return nil
}
