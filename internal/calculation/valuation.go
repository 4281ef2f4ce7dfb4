package calculation

import (
	"fmt"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// RepaymentRate returns the patient repayment probability for a balance.
// Each band includes its upper ceiling.
func RepaymentRate(patientOwed decimal.Decimal, bundle domain.AssumptionBundle) decimal.Decimal {
	switch {
	case patientOwed.LessThanOrEqual(bundle.SmallBandCeiling):
		return bundle.RepaymentRateSmall
	case patientOwed.LessThanOrEqual(bundle.MediumBandCeiling):
		return bundle.RepaymentRateMedium
	default:
		return bundle.RepaymentRateLarge
	}
}

// EvaluateCase computes the present-value breakdown of one claim. The bundle
// and the case amounts are validated before anything is computed.
func EvaluateCase(allowedAmount, reviewCost decimal.Decimal, bundle domain.AssumptionBundle) (*domain.ValuationResult, error) {
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateCaseInput(allowedAmount, reviewCost); err != nil {
		return nil, err
	}
	return evaluateValidated(allowedAmount, reviewCost, bundle)
}

// evaluateValidated assumes bundle and inputs have already been validated.
func evaluateValidated(allowedAmount, reviewCost decimal.Decimal, b domain.AssumptionBundle) (*domain.ValuationResult, error) {
	r := &domain.ValuationResult{AllowedAmount: allowedAmount}

	r.PlanAllowed = b.ActuarialValue.Mul(allowedAmount)
	r.PatientAllowed = decimalOne.Sub(b.ActuarialValue).Mul(allowedAmount)

	// Plan side
	r.PlanNet = decimalOne.Sub(b.PlanWriteoffRate).Mul(r.PlanAllowed)
	planPV, err := PresentValue(r.PlanNet, b.PlanCollectionDays, b.AnnualDiscountRate)
	if err != nil {
		return nil, fmt.Errorf("plan present value: %w", err)
	}
	r.PlanPV = planPV

	// Patient side
	r.RepaymentRateApplied = RepaymentRate(r.PatientAllowed, b)
	r.PatientPaid = r.RepaymentRateApplied.Mul(r.PatientAllowed)
	patientPV, err := PresentValue(r.PatientPaid, b.PatientCollectionDays, b.AnnualDiscountRate)
	if err != nil {
		return nil, fmt.Errorf("patient present value: %w", err)
	}
	r.PatientPV = patientPV

	// Collections funnel on whatever the patient did not pay
	w := domain.CollectionsWaterfall{}
	w.Unpaid = r.PatientAllowed.Sub(r.PatientPaid)
	w.Placed = b.PlacementFraction.Mul(w.Unpaid)
	w.Recovered = b.RecoveryRate.Mul(w.Placed)
	w.NetToProvider = decimalOne.Sub(b.CollectorFeeRate).Mul(w.Recovered)
	r.Waterfall = w
	collectionsPV, err := PresentValue(w.NetToProvider, b.CollectionsCashDays, b.AnnualDiscountRate)
	if err != nil {
		return nil, fmt.Errorf("collections present value: %w", err)
	}
	r.CollectionsPV = collectionsPV

	r.ReviewCostAsNegative = reviewCost.Neg()
	r.NetPV = r.PlanPV.Add(r.PatientPV).Add(r.CollectionsPV).Sub(reviewCost)

	if allowedAmount.IsPositive() {
		r.NetPVPercentOfAllowed = decimal.NullDecimal{
			Decimal: r.NetPV.Div(allowedAmount).Mul(decimalHundred),
			Valid:   true,
		}
	}

	return r, nil
}
