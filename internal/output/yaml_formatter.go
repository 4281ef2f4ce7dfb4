package output

import (
	"github.com/novetrasys/npad/internal/domain"
	"gopkg.in/yaml.v3"
)

// assumptionDump is the part of a report that can be loaded back as a
// configuration file.
type assumptionDump struct {
	Preset       string                  `yaml:"preset,omitempty"`
	Assumptions  domain.AssumptionBundle `yaml:"assumptions"`
	ReviewCosts  domain.ReviewCosts      `yaml:"review_costs"`
	ReviewPolicy domain.ReviewCostPolicy `yaml:"review_policy"`
}

// YAMLFormatter dumps the assumptions behind a report as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *Report) ([]byte, error) {
	dump := assumptionDump{
		Preset:       report.PresetName,
		ReviewCosts:  report.ReviewCosts,
		ReviewPolicy: report.ReviewPolicy,
	}
	if report.Valuation != nil {
		dump.Assumptions = report.Valuation.Assumptions
	} else {
		dump.Assumptions = domain.DefaultAssumptionBundle()
	}
	return yaml.Marshal(dump)
}
