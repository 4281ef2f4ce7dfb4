package breakeven

import (
	"context"
	"fmt"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizeMultiDimensional solves for each parameter in turn, every one
// aiming at the same case and target, and compares the solutions
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	bundle domain.AssumptionBundle,
	cases []domain.CaseInput,
	goal OptimizationGoal,
	constraints Constraints,
	parameters []string,
) (*MultiDimensionalResult, error) {

	mdResult := &MultiDimensionalResult{
		Skipped: make(map[string]string),
	}

	for _, key := range parameters {
		c := constraints
		c.Parameter = key
		// bounds are per parameter
		c.MinValue, c.MaxValue = nil, nil

		req := OptimizationRequest{
			Assumptions:   bundle,
			Cases:         cases,
			Goal:          goal,
			Constraints:   c,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			mdResult.Skipped[key] = err.Error()
			continue
		}
		if !result.Success {
			mdResult.Skipped[key] = result.ConvergenceInfo
			continue
		}
		mdResult.Results = append(mdResult.Results, *result)
	}

	if len(mdResult.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no parameter reaches the target",
		}
	}

	var smallest decimal.Decimal
	for i := range mdResult.Results {
		move := relativeMove(mdResult.Results[i])
		if mdResult.SmallestMove == nil || move.LessThan(smallest) {
			mdResult.SmallestMove = &mdResult.Results[i]
			smallest = move
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)

	return mdResult, nil
}

// relativeMove is the change from base as a share of the parameter's range.
func relativeMove(r OptimizationResult) decimal.Decimal {
	param, ok := domain.LookupParameter(r.Parameter)
	if !ok {
		return r.ChangeFromBase.Abs()
	}
	span := param.Max.Sub(param.Min)
	if !span.IsPositive() {
		return r.ChangeFromBase.Abs()
	}
	return r.ChangeFromBase.Abs().Div(span)
}

// generateMultiDimensionalRecommendations creates one line per solution
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	for _, r := range result.Results {
		recommendations = append(recommendations,
			fmt.Sprintf("Set %s to %s (from %s) to reach %s on %s",
				r.Parameter,
				FormatValue(r.Unit, r.OptimalValue),
				FormatValue(r.Unit, r.BaseValue),
				formatTarget(r.Goal, r.Target),
				r.Case))
	}

	if result.SmallestMove != nil && len(result.Results) > 1 {
		recommendations = append(recommendations,
			fmt.Sprintf("⭐ %s needs the smallest move relative to its range", result.SmallestMove.Parameter))
	}

	return recommendations
}

// OptimizeAllParameters tries every assumption parameter
func (s *Solver) OptimizeAllParameters(
	ctx context.Context,
	bundle domain.AssumptionBundle,
	cases []domain.CaseInput,
	goal OptimizationGoal,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, bundle, cases, goal, constraints, domain.ParameterKeys())
}
