package compare

import (
	"fmt"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// Alternative sources.
const (
	SourceBase     = "base"
	SourcePreset   = "preset"
	SourceTemplate = "template"
)

// CaseMetrics holds the headline numbers of one case within a scenario
type CaseMetrics struct {
	Label         string              `json:"label"`
	AllowedAmount decimal.Decimal     `json:"allowedAmount"`
	ReviewCost    decimal.Decimal     `json:"reviewCost"`
	NetPV         decimal.Decimal     `json:"netPV"`
	NetPVPercent  decimal.NullDecimal `json:"netPVPercent"`

	// Comparison to Base
	NetPVDiffFromBase decimal.Decimal `json:"netPVDiffFromBase"`
	// PercentDiffFromBase is in percentage points; invalid when either yield is undefined
	PercentDiffFromBase decimal.NullDecimal `json:"percentDiffFromBase"`
}

// ComparisonResult represents a single scenario with its per-case metrics
type ComparisonResult struct {
	ScenarioName string            `json:"scenarioName"`
	Source       string            `json:"source"`
	Description  string            `json:"description"`
	Valuation    *domain.Valuation `json:"-"`

	Cases []CaseMetrics `json:"cases"`
}

// Case returns the metrics for label.
func (cr *ComparisonResult) Case(label string) (CaseMetrics, bool) {
	for _, c := range cr.Cases {
		if c.Label == label {
			return c, true
		}
	}
	return CaseMetrics{}, false
}

// ComparisonSet represents a base scenario and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// CaseLabels returns the case labels of the base scenario in order.
func (cs *ComparisonSet) CaseLabels() []string {
	if cs.BaseResult == nil {
		return nil
	}
	labels := make([]string, 0, len(cs.BaseResult.Cases))
	for _, c := range cs.BaseResult.Cases {
		labels = append(labels, c.Label)
	}
	return labels
}

// MetricsCalculator extracts key metrics from valuations
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for a valuation
func (mc *MetricsCalculator) CalculateMetrics(name string, valuation *domain.Valuation) ComparisonResult {
	result := ComparisonResult{
		ScenarioName: name,
		Valuation:    valuation,
		Cases:        make([]CaseMetrics, 0, len(valuation.Cases)),
	}
	for _, c := range valuation.Cases {
		result.Cases = append(result.Cases, CaseMetrics{
			Label:         c.Label,
			AllowedAmount: c.Result.AllowedAmount,
			ReviewCost:    c.ReviewCost,
			NetPV:         c.Result.NetPV,
			NetPVPercent:  c.Result.NetPVPercentOfAllowed,
		})
	}
	return result
}

// CalculateComparison fills in the differences between a scenario and the
// base, matching cases by label. Cases missing from the base are left as is.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	cases := make([]CaseMetrics, len(scenario.Cases))
	copy(cases, scenario.Cases)

	for i := range cases {
		baseCase, ok := base.Case(cases[i].Label)
		if !ok {
			continue
		}
		cases[i].NetPVDiffFromBase = cases[i].NetPV.Sub(baseCase.NetPV)
		if cases[i].NetPVPercent.Valid && baseCase.NetPVPercent.Valid {
			cases[i].PercentDiffFromBase = decimal.NewNullDecimal(
				cases[i].NetPVPercent.Decimal.Sub(baseCase.NetPVPercent.Decimal))
		}
	}
	scenario.Cases = cases
	return scenario
}

// GenerateRecommendations names, for every case, the scenario with the best
// net PV as a percent of allowed.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	for _, label := range compSet.CaseLabels() {
		baseCase, _ := compSet.BaseResult.Case(label)
		if !baseCase.NetPVPercent.Valid {
			recommendations = append(recommendations,
				label+": yield undefined for a zero allowed amount")
			continue
		}

		bestName := ""
		best := baseCase
		for _, alt := range compSet.AlternativeResults {
			c, ok := alt.Case(label)
			if !ok || !c.NetPVPercent.Valid {
				continue
			}
			if c.NetPVPercent.Decimal.GreaterThan(best.NetPVPercent.Decimal) {
				best = c
				bestName = alt.ScenarioName
			}
		}

		if bestName == "" {
			recommendations = append(recommendations,
				fmt.Sprintf("%s: base scenario %s has the best yield (%s%% of allowed)",
					label, compSet.BaseResult.ScenarioName, baseCase.NetPVPercent.Decimal.StringFixed(2)))
			continue
		}

		gain := best.NetPVPercent.Decimal.Sub(baseCase.NetPVPercent.Decimal)
		recommendations = append(recommendations,
			fmt.Sprintf("%s: %s yields %s%% of allowed, %s points above base",
				label, bestName, best.NetPVPercent.Decimal.StringFixed(2), gain.StringFixed(2)))
	}

	return recommendations
}
