package calculation

import (
	"context"
	"fmt"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{
		calculationEngine: engine,
	}
}

// NewSensitivityParameter builds a sweep over key. Zero min and max fall back
// to the slider range of the assumption, narrowed to values valid for bundle.
func NewSensitivityParameter(key string, bundle domain.AssumptionBundle, minValue, maxValue decimal.Decimal, steps int) (domain.SensitivityParameter, error) {
	spec, ok := domain.LookupParameter(key)
	if !ok {
		return domain.SensitivityParameter{}, domain.NewInvalidParameterError(key, "", "unknown assumption")
	}
	base, err := bundle.Get(spec.Key)
	if err != nil {
		return domain.SensitivityParameter{}, err
	}
	if minValue.IsZero() && maxValue.IsZero() {
		minValue, maxValue = spec.RangeFor(bundle)
	}
	if minValue.GreaterThan(maxValue) {
		return domain.SensitivityParameter{}, domain.NewInvalidParameterError(spec.Key, minValue, "sweep minimum exceeds maximum")
	}
	if steps < 2 {
		return domain.SensitivityParameter{}, domain.NewInvalidParameterError("steps", steps, "a sweep needs at least 2 steps")
	}
	return domain.SensitivityParameter{
		Name:        spec.Key,
		MinValue:    minValue,
		MaxValue:    maxValue,
		Steps:       steps,
		BaseValue:   base,
		Unit:        spec.Unit,
		Description: spec.Label,
	}, nil
}

// AnalyzeSingleParameter sweeps one assumption and values every case at each point
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	bundle domain.AssumptionBundle,
	cases []domain.CaseInput,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {

	baseline, err := sa.calculationEngine.Evaluate(ctx, bundle, cases)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate baseline: %w", err)
	}
	baselineCases := sensitivityCases(baseline, nil)

	parameterValues := sa.generateParameterValues(parameter)
	points := make([]domain.SensitivityPoint, 0, len(parameterValues))

	for _, value := range parameterValues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := bundle.With(parameter.Name, value)
		if err != nil {
			return nil, fmt.Errorf("failed to set %s=%s: %w", parameter.Name, value.String(), err)
		}

		valuation, err := sa.calculationEngine.Evaluate(ctx, modified, cases)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s=%s: %w", parameter.Name, value.String(), err)
		}

		points = append(points, domain.SensitivityPoint{
			ParameterValue: value,
			Cases:          sensitivityCases(valuation, baselineCases),
		})
	}

	return &domain.ParameterSensitivityAnalysis{
		Parameter: parameter,
		Baseline:  baselineCases,
		Points:    points,
		Summary:   sa.calculateSensitivitySummary(baselineCases, points),
	}, nil
}

// generateParameterValues spreads Steps values evenly between min and max
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	spec, _ := domain.LookupParameter(param.Name)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	values := make([]decimal.Decimal, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		value := spec.Normalize(param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
		// whole-day sweeps can round two steps onto the same value
		if n := len(values); n > 0 && values[n-1].Equal(value) {
			continue
		}
		values = append(values, value)
	}

	return values
}

func sensitivityCases(v *domain.Valuation, baseline []domain.SensitivityCase) []domain.SensitivityCase {
	out := make([]domain.SensitivityCase, 0, len(v.Cases))
	for i, c := range v.Cases {
		sc := domain.SensitivityCase{
			Label:        c.Label,
			NetPV:        c.Result.NetPV,
			NetPVPercent: c.Result.NetPVPercentOfAllowed,
		}
		if i < len(baseline) {
			sc.NetPVChange = c.Result.NetPV.Sub(baseline[i].NetPV)
			if !baseline[i].NetPV.IsZero() {
				sc.NetPVChangePct = sc.NetPVChange.Div(baseline[i].NetPV.Abs()).Mul(decimalHundred)
			}
		}
		out = append(out, sc)
	}
	return out
}

// calculateSensitivitySummary reports the net PV range and net % spread of
// each case, and the case whose net % moved the most.
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(baseline []domain.SensitivityCase, points []domain.SensitivityPoint) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{}
	if len(points) == 0 {
		return summary
	}

	var best decimal.Decimal
	for i, b := range baseline {
		cs := domain.CaseSensitivity{Label: b.Label}
		var minPct, maxPct decimal.Decimal
		havePct := false

		for j, p := range points {
			c := p.Cases[i]
			if j == 0 {
				cs.MinNetPV, cs.MaxNetPV = c.NetPV, c.NetPV
			} else {
				cs.MinNetPV = decimal.Min(cs.MinNetPV, c.NetPV)
				cs.MaxNetPV = decimal.Max(cs.MaxNetPV, c.NetPV)
			}
			if c.NetPVPercent.Valid {
				if !havePct {
					minPct, maxPct = c.NetPVPercent.Decimal, c.NetPVPercent.Decimal
					havePct = true
				} else {
					minPct = decimal.Min(minPct, c.NetPVPercent.Decimal)
					maxPct = decimal.Max(maxPct, c.NetPVPercent.Decimal)
				}
			}
		}

		cs.NetPVRange = cs.MaxNetPV.Sub(cs.MinNetPV)
		if havePct {
			cs.PercentSpread = maxPct.Sub(minPct)
		}
		if summary.MostSensitiveCase == "" || cs.PercentSpread.GreaterThan(best) {
			summary.MostSensitiveCase = cs.Label
			best = cs.PercentSpread
		}
		summary.Cases = append(summary.Cases, cs)
	}

	return summary
}
