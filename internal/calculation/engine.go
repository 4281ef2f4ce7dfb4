package calculation

import (
	"context"
	"fmt"
	"sync"

	"github.com/novetrasys/npad/internal/domain"
)

// CalculationEngine evaluates batches of cases against one assumption bundle
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine with a no-op logger
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger. A nil logger disables logging.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Evaluate validates the bundle and every case, then values the cases
// concurrently. Results come back in input order.
func (ce *CalculationEngine) Evaluate(ctx context.Context, bundle domain.AssumptionBundle, cases []domain.CaseInput) (*domain.Valuation, error) {
	log := ce.logger()

	if err := bundle.Validate(); err != nil {
		log.Warnf("rejected assumption bundle: %v", err)
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	for i, c := range cases {
		if err := c.Validate(); err != nil {
			log.Warnf("rejected case %d (%s): %v", i, c.Label, err)
			return nil, fmt.Errorf("case %q: %w", caseLabel(c, i), err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]domain.LabeledResult, len(cases))
	errs := make([]error, len(cases))

	var wg sync.WaitGroup
	for i, c := range cases {
		wg.Add(1)
		go func(i int, c domain.CaseInput) {
			defer wg.Done()
			r, err := evaluateValidated(c.AllowedAmount, c.ReviewCost, bundle)
			if err != nil {
				errs[i] = fmt.Errorf("case %q: %w", caseLabel(c, i), err)
				return
			}
			results[i] = domain.LabeledResult{
				Label:      caseLabel(c, i),
				ReviewCost: c.ReviewCost,
				Result:     *r,
			}
		}(i, c)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Errorf("evaluation failed: %v", err)
			return nil, err
		}
	}

	for _, r := range results {
		log.Debugf("case %s: allowed=%s netPV=%s", r.Label, r.Result.AllowedAmount.StringFixed(2), r.Result.NetPV.StringFixed(2))
	}

	return &domain.Valuation{Assumptions: bundle, Cases: results}, nil
}

// EvaluateStandard values the small and large cases, picking review costs
// with the policy.
func (ce *CalculationEngine) EvaluateStandard(ctx context.Context, bundle domain.AssumptionBundle, amounts domain.StandardAmounts) (*domain.Valuation, error) {
	if err := amounts.Validate(); err != nil {
		return nil, err
	}
	cases := amounts.Cases()
	return ce.Evaluate(ctx, bundle, cases)
}

func caseLabel(c domain.CaseInput, i int) string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("Case %d", i+1)
}
