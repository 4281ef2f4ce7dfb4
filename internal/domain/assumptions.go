package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Assumption keys. They double as the yaml/json field names and as the
// override keys accepted by transforms, sweeps and the break-even solver.
const (
	KeyActuarialValue        = "actuarial_value"
	KeyPlanWriteoffRate      = "plan_writeoff"
	KeyPlanCollectionDays    = "plan_dso_days"
	KeyPatientCollectionDays = "patient_dso_days"
	KeyAnnualDiscountRate    = "discount_rate"
	KeyRepaymentRateSmall    = "repay_small"
	KeyRepaymentRateMedium   = "repay_medium"
	KeyRepaymentRateLarge    = "repay_large"
	KeySmallBandCeiling      = "small_band_ceiling"
	KeyMediumBandCeiling     = "medium_band_ceiling"
	KeyPlacementFraction     = "place_frac"
	KeyRecoveryRate          = "recovery_rate"
	KeyCollectorFeeRate      = "collector_fee"
	KeyCollectionsCashDays   = "cash_day_collections"
)

// AssumptionBundle holds every economic parameter needed to value a claim.
// It is passed by value; the engine never keeps a reference to it.
type AssumptionBundle struct {
	ActuarialValue        decimal.Decimal `yaml:"actuarial_value" json:"actuarial_value"`
	PlanWriteoffRate      decimal.Decimal `yaml:"plan_writeoff" json:"plan_writeoff"`
	PlanCollectionDays    int             `yaml:"plan_dso_days" json:"plan_dso_days"`
	PatientCollectionDays int             `yaml:"patient_dso_days" json:"patient_dso_days"`
	AnnualDiscountRate    decimal.Decimal `yaml:"discount_rate" json:"discount_rate"`

	// Patient repayment probability by balance band
	RepaymentRateSmall  decimal.Decimal `yaml:"repay_small" json:"repay_small"`
	RepaymentRateMedium decimal.Decimal `yaml:"repay_medium" json:"repay_medium"`
	RepaymentRateLarge  decimal.Decimal `yaml:"repay_large" json:"repay_large"`
	SmallBandCeiling    decimal.Decimal `yaml:"small_band_ceiling" json:"small_band_ceiling"`
	MediumBandCeiling   decimal.Decimal `yaml:"medium_band_ceiling" json:"medium_band_ceiling"`

	// Collections funnel
	PlacementFraction   decimal.Decimal `yaml:"place_frac" json:"place_frac"`
	RecoveryRate        decimal.Decimal `yaml:"recovery_rate" json:"recovery_rate"`
	CollectorFeeRate    decimal.Decimal `yaml:"collector_fee" json:"collector_fee"`
	CollectionsCashDays int             `yaml:"cash_day_collections" json:"cash_day_collections"`
}

// DefaultAssumptionBundle returns the baseline assumptions used when nothing
// else is specified.
func DefaultAssumptionBundle() AssumptionBundle {
	return AssumptionBundle{
		ActuarialValue:        decimal.NewFromFloat(0.842),
		PlanWriteoffRate:      decimal.NewFromFloat(0.02),
		PlanCollectionDays:    55,
		PatientCollectionDays: 60,
		AnnualDiscountRate:    decimal.NewFromFloat(0.08),
		RepaymentRateSmall:    decimal.NewFromFloat(0.50),
		RepaymentRateMedium:   decimal.NewFromFloat(0.43),
		RepaymentRateLarge:    decimal.NewFromFloat(0.34),
		SmallBandCeiling:      decimal.NewFromInt(250),
		MediumBandCeiling:     decimal.NewFromInt(1000),
		PlacementFraction:     decimal.NewFromFloat(0.50),
		RecoveryRate:          decimal.NewFromFloat(0.15),
		CollectorFeeRate:      decimal.NewFromFloat(0.25),
		CollectionsCashDays:   180,
	}
}

// Validate checks every field against its documented domain and returns the
// first violation found, in field order.
func (b AssumptionBundle) Validate() error {
	fractions := []struct {
		key   string
		value decimal.Decimal
	}{
		{KeyActuarialValue, b.ActuarialValue},
		{KeyPlanWriteoffRate, b.PlanWriteoffRate},
		{KeyRepaymentRateSmall, b.RepaymentRateSmall},
		{KeyRepaymentRateMedium, b.RepaymentRateMedium},
		{KeyRepaymentRateLarge, b.RepaymentRateLarge},
		{KeyPlacementFraction, b.PlacementFraction},
		{KeyRecoveryRate, b.RecoveryRate},
		{KeyCollectorFeeRate, b.CollectorFeeRate},
	}
	for _, f := range fractions {
		if err := validateFraction(f.key, f.value); err != nil {
			return err
		}
	}

	days := []struct {
		key   string
		value int
	}{
		{KeyPlanCollectionDays, b.PlanCollectionDays},
		{KeyPatientCollectionDays, b.PatientCollectionDays},
		{KeyCollectionsCashDays, b.CollectionsCashDays},
	}
	for _, d := range days {
		if d.value < 0 {
			return NewInvalidParameterError(d.key, d.value, "must be a non-negative number of days")
		}
	}

	if b.AnnualDiscountRate.IsNegative() {
		return NewInvalidParameterError(KeyAnnualDiscountRate, b.AnnualDiscountRate, "must be non-negative")
	}
	if !b.SmallBandCeiling.IsPositive() {
		return NewInvalidParameterError(KeySmallBandCeiling, b.SmallBandCeiling, "must be positive")
	}
	if !b.MediumBandCeiling.IsPositive() {
		return NewInvalidParameterError(KeyMediumBandCeiling, b.MediumBandCeiling, "must be positive")
	}
	if b.SmallBandCeiling.GreaterThanOrEqual(b.MediumBandCeiling) {
		return NewInvalidParameterError(KeySmallBandCeiling, b.SmallBandCeiling,
			fmt.Sprintf("must be less than %s (%s)", KeyMediumBandCeiling, b.MediumBandCeiling.String()))
	}

	return nil
}

func validateFraction(key string, value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
		return NewInvalidParameterError(key, value, "must be between 0 and 1")
	}
	return nil
}

// Get returns the value stored under an assumption key. Day counts are
// returned as whole decimals.
func (b AssumptionBundle) Get(key string) (decimal.Decimal, error) {
	switch key {
	case KeyActuarialValue:
		return b.ActuarialValue, nil
	case KeyPlanWriteoffRate:
		return b.PlanWriteoffRate, nil
	case KeyPlanCollectionDays:
		return decimal.NewFromInt(int64(b.PlanCollectionDays)), nil
	case KeyPatientCollectionDays:
		return decimal.NewFromInt(int64(b.PatientCollectionDays)), nil
	case KeyAnnualDiscountRate:
		return b.AnnualDiscountRate, nil
	case KeyRepaymentRateSmall:
		return b.RepaymentRateSmall, nil
	case KeyRepaymentRateMedium:
		return b.RepaymentRateMedium, nil
	case KeyRepaymentRateLarge:
		return b.RepaymentRateLarge, nil
	case KeySmallBandCeiling:
		return b.SmallBandCeiling, nil
	case KeyMediumBandCeiling:
		return b.MediumBandCeiling, nil
	case KeyPlacementFraction:
		return b.PlacementFraction, nil
	case KeyRecoveryRate:
		return b.RecoveryRate, nil
	case KeyCollectorFeeRate:
		return b.CollectorFeeRate, nil
	case KeyCollectionsCashDays:
		return decimal.NewFromInt(int64(b.CollectionsCashDays)), nil
	}
	return decimal.Zero, NewInvalidParameterError(key, "", "unknown assumption")
}

// With returns a copy of the bundle with one field replaced. The receiver is
// left untouched. Day fields only accept whole numbers; the result is not
// validated, so callers still run Validate before evaluating.
func (b AssumptionBundle) With(key string, value decimal.Decimal) (AssumptionBundle, error) {
	out := b
	switch key {
	case KeyActuarialValue:
		out.ActuarialValue = value
	case KeyPlanWriteoffRate:
		out.PlanWriteoffRate = value
	case KeyPlanCollectionDays, KeyPatientCollectionDays, KeyCollectionsCashDays:
		if !value.Equal(value.Truncate(0)) {
			return b, NewInvalidParameterError(key, value, "must be a whole number of days")
		}
		days := int(value.IntPart())
		switch key {
		case KeyPlanCollectionDays:
			out.PlanCollectionDays = days
		case KeyPatientCollectionDays:
			out.PatientCollectionDays = days
		default:
			out.CollectionsCashDays = days
		}
	case KeyAnnualDiscountRate:
		out.AnnualDiscountRate = value
	case KeyRepaymentRateSmall:
		out.RepaymentRateSmall = value
	case KeyRepaymentRateMedium:
		out.RepaymentRateMedium = value
	case KeyRepaymentRateLarge:
		out.RepaymentRateLarge = value
	case KeySmallBandCeiling:
		out.SmallBandCeiling = value
	case KeyMediumBandCeiling:
		out.MediumBandCeiling = value
	case KeyPlacementFraction:
		out.PlacementFraction = value
	case KeyRecoveryRate:
		out.RecoveryRate = value
	case KeyCollectorFeeRate:
		out.CollectorFeeRate = value
	default:
		return b, NewInvalidParameterError(key, value, "unknown assumption")
	}
	return out, nil
}
