package compare

import (
	"encoding/json"

	"github.com/novetrasys/npad/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// jsonComparison adds the assumption bundle each scenario was evaluated
// with, keyed by scenario name.
type jsonComparison struct {
	*ComparisonSet
	Assumptions map[string]domain.AssumptionBundle `json:"assumptions,omitempty"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{ComparisonSet: compSet}
	if compSet != nil {
		doc.Assumptions = scenarioAssumptions(compSet)
	}

	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func scenarioAssumptions(compSet *ComparisonSet) map[string]domain.AssumptionBundle {
	bundles := map[string]domain.AssumptionBundle{}
	add := func(r *ComparisonResult) {
		if r != nil && r.Valuation != nil {
			bundles[r.ScenarioName] = r.Valuation.Assumptions
		}
	}
	add(compSet.BaseResult)
	for i := range compSet.AlternativeResults {
		add(&compSet.AlternativeResults[i])
	}
	if len(bundles) == 0 {
		return nil
	}
	return bundles
}
