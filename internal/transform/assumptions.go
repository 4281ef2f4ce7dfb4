package transform

import (
	"fmt"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// SetParameter replaces one assumption with a fixed value.
type SetParameter struct {
	Key   string
	Value decimal.Decimal
}

func (sp *SetParameter) Name() string {
	return "set"
}

func (sp *SetParameter) Description() string {
	spec, ok := domain.LookupParameter(sp.Key)
	if !ok {
		return fmt.Sprintf("Set %s to %s", sp.Key, sp.Value.String())
	}
	return fmt.Sprintf("Set %s to %s", spec.Label, formatParameterValue(spec, sp.Value))
}

func (sp *SetParameter) Validate(_ domain.AssumptionBundle) error {
	spec, ok := domain.LookupParameter(sp.Key)
	if !ok {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("unknown assumption %q", sp.Key),
			domain.NewInvalidParameterError(sp.Key, sp.Value, "unknown assumption"))
	}
	if spec.Integer() && !sp.Value.Equal(sp.Value.Truncate(0)) {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("%s takes whole days, got %s", spec.Key, sp.Value.String()),
			domain.NewInvalidParameterError(spec.Key, sp.Value, "must be a whole number of days"))
	}
	return nil
}

func (sp *SetParameter) Apply(base domain.AssumptionBundle) (domain.AssumptionBundle, error) {
	spec, ok := domain.LookupParameter(sp.Key)
	if !ok {
		return base, NewTransformError(sp.Name(), "apply", fmt.Sprintf("unknown assumption %q", sp.Key), nil)
	}
	return base.With(spec.Key, sp.Value)
}

// ScaleParameter multiplies one assumption by a factor. Day counts are
// rounded to whole days.
type ScaleParameter struct {
	Key    string
	Factor decimal.Decimal
}

func (sc *ScaleParameter) Name() string {
	return "scale"
}

func (sc *ScaleParameter) Description() string {
	return fmt.Sprintf("Scale %s by %s", sc.Key, sc.Factor.String())
}

func (sc *ScaleParameter) Validate(_ domain.AssumptionBundle) error {
	if _, ok := domain.LookupParameter(sc.Key); !ok {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("unknown assumption %q", sc.Key),
			domain.NewInvalidParameterError(sc.Key, sc.Factor, "unknown assumption"))
	}
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor.String()), nil)
	}
	return nil
}

func (sc *ScaleParameter) Apply(base domain.AssumptionBundle) (domain.AssumptionBundle, error) {
	spec, ok := domain.LookupParameter(sc.Key)
	if !ok {
		return base, NewTransformError(sc.Name(), "apply", fmt.Sprintf("unknown assumption %q", sc.Key), nil)
	}
	current, err := base.Get(spec.Key)
	if err != nil {
		return base, err
	}
	return base.With(spec.Key, spec.Normalize(current.Mul(sc.Factor)))
}

func formatParameterValue(spec domain.AssumptionParameter, v decimal.Decimal) string {
	switch spec.Unit {
	case domain.UnitFraction, domain.UnitRate:
		return v.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
	case domain.UnitDays:
		return v.StringFixed(0) + " days"
	case domain.UnitDollars:
		return "$" + v.StringFixed(2)
	default:
		return v.String()
	}
}
