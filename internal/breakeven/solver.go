package breakeven

import (
	"context"
	"fmt"

	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the assumption value at which a case reaches a target outcome
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize bisects the requested parameter between its bounds until the
// case outcome is within tolerance of the target. The outcome must bracket
// the target at the bounds.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	target, err := req.Constraints.target(req.Goal)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Tolerance.IsNegative() {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "tolerance cannot be negative",
		}
	}

	param, _ := domain.LookupParameter(req.Constraints.Parameter)
	c, err := selectCase(req.Cases, req.Constraints.Case)
	if err != nil {
		return nil, err
	}

	baseValue, err := req.Assumptions.Get(param.Key)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to read base value", Cause: err}
	}
	baseAchieved, _, err := s.measure(ctx, req, param, c, baseValue)
	if err != nil {
		return nil, err
	}

	lo, hi := param.RangeFor(req.Assumptions)
	if req.Constraints.MinValue != nil {
		lo = *req.Constraints.MinValue
	}
	if req.Constraints.MaxValue != nil {
		hi = *req.Constraints.MaxValue
	}
	lo, hi = param.Normalize(lo), param.Normalize(hi)
	if !lo.LessThan(hi) {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("empty search range [%s, %s] for %s", lo, hi, param.Key),
		}
	}

	fLo, rLo, err := s.measure(ctx, req, param, c, lo)
	if err != nil {
		return nil, err
	}
	fHi, rHi, err := s.measure(ctx, req, param, c, hi)
	if err != nil {
		return nil, err
	}

	newResult := func(value, achieved decimal.Decimal, r domain.ValuationResult, iterations int) *OptimizationResult {
		return &OptimizationResult{
			Parameter:      param.Key,
			Unit:           param.Unit,
			Case:           req.Constraints.Case,
			Goal:           req.Goal,
			Target:         target,
			Iterations:     iterations,
			OptimalValue:   value,
			Achieved:       achieved,
			Result:         r,
			BaseValue:      baseValue,
			BaseAchieved:   baseAchieved,
			ChangeFromBase: value.Sub(baseValue),
		}
	}

	// Either bound may already be the answer
	if fLo.Sub(target).Abs().LessThanOrEqual(req.Tolerance) {
		result := newResult(lo, fLo, rLo, 0)
		result.Success = true
		result.ConvergenceInfo = "Target met at the lower bound"
		return result, nil
	}
	if fHi.Sub(target).Abs().LessThanOrEqual(req.Tolerance) {
		result := newResult(hi, fHi, rHi, 0)
		result.Success = true
		result.ConvergenceInfo = "Target met at the upper bound"
		return result, nil
	}

	lowest, highest := decimal.Min(fLo, fHi), decimal.Max(fLo, fHi)
	if target.LessThan(lowest) || target.GreaterThan(highest) {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message: fmt.Sprintf("target %s is outside the achievable range [%s, %s] for %s in [%s, %s]",
				target.StringFixed(2), lowest.StringFixed(2), highest.StringFixed(2), param.Key, lo, hi),
		}
	}

	increasing := fHi.GreaterThan(fLo)
	best := newResult(lo, fLo, rLo, 0)
	if fHi.Sub(target).Abs().LessThan(fLo.Sub(target).Abs()) {
		best = newResult(hi, fHi, rHi, 0)
	}

	iterations := 0
	for iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := param.Normalize(lo.Add(hi).Div(two))
		if mid.Equal(lo) || mid.Equal(hi) {
			// no representable value left between the bounds
			best.Iterations = iterations
			best.ConvergenceInfo = fmt.Sprintf("Search interval exhausted at [%s, %s]", lo, hi)
			return best, nil
		}

		fMid, rMid, err := s.measure(ctx, req, param, c, mid)
		if err != nil {
			return nil, err
		}

		diff := fMid.Sub(target)
		if diff.Abs().LessThan(best.Achieved.Sub(target).Abs()) {
			best = newResult(mid, fMid, rMid, iterations)
		}
		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			best.Iterations = iterations
			best.Success = true
			best.ConvergenceInfo = fmt.Sprintf("Binary search converged within %s", req.Tolerance)
			return best, nil
		}

		if diff.IsNegative() == increasing {
			lo = mid
		} else {
			hi = mid
		}
	}

	best.Iterations = iterations
	best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return best, nil
}

// measure evaluates case c with the parameter set to value and returns the
// outcome the goal tracks.
func (s *Solver) measure(
	ctx context.Context,
	req OptimizationRequest,
	param domain.AssumptionParameter,
	c domain.CaseInput,
	value decimal.Decimal,
) (decimal.Decimal, domain.ValuationResult, error) {
	bundle, err := req.Assumptions.With(param.Key, value)
	if err != nil {
		return decimal.Zero, domain.ValuationResult{}, &BreakEvenError{
			Operation: "optimize_" + param.Key,
			Message:   "failed to apply parameter value " + value.String(),
			Cause:     err,
		}
	}

	valuation, err := s.CalcEngine.Evaluate(ctx, bundle, []domain.CaseInput{c})
	if err != nil {
		return decimal.Zero, domain.ValuationResult{}, &BreakEvenError{
			Operation: "optimize_" + param.Key,
			Message:   "failed to evaluate at " + value.String(),
			Cause:     err,
		}
	}

	r := valuation.Cases[0].Result
	switch req.Goal {
	case GoalMatchYield:
		if !r.YieldDefined() {
			return decimal.Zero, r, &BreakEvenError{
				Operation: "optimize_" + param.Key,
				Message:   fmt.Sprintf("yield of case %q is undefined for a zero allowed amount", c.Label),
			}
		}
		return r.NetPVPercentOfAllowed.Decimal, r, nil
	default:
		return r.NetPV, r, nil
	}
}

// selectCase finds the case labelled label. Unlabelled cases answer to
// "Case N" like they do in a valuation.
func selectCase(cases []domain.CaseInput, label string) (domain.CaseInput, error) {
	for i, c := range cases {
		name := c.Label
		if name == "" {
			name = fmt.Sprintf("Case %d", i+1)
		}
		if name == label {
			c.Label = name
			return c, nil
		}
	}
	return domain.CaseInput{}, &BreakEvenError{
		Operation: "optimize",
		Message:   fmt.Sprintf("case %q not found", label),
	}
}
