package breakeven

import (
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationGoal defines what outcome to reach
type OptimizationGoal string

const (
	GoalMatchYield OptimizationGoal = "match_yield"  // Net PV as a percent of allowed reaches a target
	GoalMatchNetPV OptimizationGoal = "match_net_pv" // Net PV in dollars reaches a target
)

// Constraints define the searched assumption, its bounds and the target
type Constraints struct {
	// Assumption key to solve for, e.g. "discount_rate"
	Parameter string `json:"parameter"`

	// Label of the case whose outcome is matched
	Case string `json:"case"`

	// Search bounds; the parameter's slider range when nil
	MinValue *decimal.Decimal `json:"min_value,omitempty"`
	MaxValue *decimal.Decimal `json:"max_value,omitempty"`

	// Target percent of allowed (e.g. 85 for 85%) for match_yield
	TargetPercent *decimal.Decimal `json:"target_percent,omitempty"`
	// Target net PV in dollars for match_net_pv
	TargetNetPV *decimal.Decimal `json:"target_net_pv,omitempty"`
}

// DefaultConstraints searches parameter over its full slider range for caseLabel
func DefaultConstraints(parameter, caseLabel string) Constraints {
	return Constraints{
		Parameter: parameter,
		Case:      caseLabel,
	}
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	Assumptions   domain.AssumptionBundle
	Cases         []domain.CaseInput
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Acceptable distance from the target, in the goal's unit
}

// OptimizationResult contains the results of a solver run
type OptimizationResult struct {
	Parameter string           `json:"parameter"`
	Unit      string           `json:"unit"`
	Case      string           `json:"case"`
	Goal      OptimizationGoal `json:"goal"`
	Target    decimal.Decimal  `json:"target"`

	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info"`

	// Solution
	OptimalValue decimal.Decimal `json:"optimal_value"`
	Achieved     decimal.Decimal `json:"achieved"`

	// Valuation of the case at the solution
	Result domain.ValuationResult `json:"result"`

	// Comparison to base
	BaseValue      decimal.Decimal `json:"base_value"`
	BaseAchieved   decimal.Decimal `json:"base_achieved"`
	ChangeFromBase decimal.Decimal `json:"change_from_base"`
}

// MultiDimensionalResult contains the solutions found for several parameters
// aiming at the same target
type MultiDimensionalResult struct {
	Results []OptimizationResult `json:"results"`
	// Skipped maps parameters without a solution to the reason
	Skipped map[string]string `json:"skipped,omitempty"`
	// SmallestMove is the solution that moves its parameter the least,
	// relative to the parameter's range
	SmallestMove    *OptimizationResult `json:"smallest_move,omitempty"`
	Recommendations []string            `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Algorithm     string          // "binary_search"
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Algorithm:     "binary_search",
		Tolerance:     decimal.NewFromFloat(0.01), // a hundredth of a point or a cent
		MaxIterations: 100,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if strings.TrimSpace(c.Parameter) == "" {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "parameter is required",
		}
	}
	if _, ok := domain.LookupParameter(c.Parameter); !ok {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   fmt.Sprintf("unknown parameter %q", c.Parameter),
		}
	}

	if strings.TrimSpace(c.Case) == "" {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "case label is required",
		}
	}

	if c.MinValue != nil && c.MaxValue != nil && c.MinValue.GreaterThanOrEqual(*c.MaxValue) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_value must be less than max_value",
		}
	}

	return nil
}

// target returns the target for goal.
func (c *Constraints) target(goal OptimizationGoal) (decimal.Decimal, error) {
	switch goal {
	case GoalMatchYield:
		if c.TargetPercent == nil {
			return decimal.Zero, &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "target_percent is required for match_yield",
			}
		}
		return *c.TargetPercent, nil
	case GoalMatchNetPV:
		if c.TargetNetPV == nil {
			return decimal.Zero, &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "target_net_pv is required for match_net_pv",
			}
		}
		return *c.TargetNetPV, nil
	default:
		return decimal.Zero, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", goal),
		}
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
