package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents an assumption to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "fraction", "rate", "days", "dollars"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the valuation of every case at one parameter value
type SensitivityPoint struct {
	ParameterValue decimal.Decimal   `json:"parameterValue"`
	Cases          []SensitivityCase `json:"cases"`
}

// SensitivityCase holds the key metrics of one case at one sweep point
type SensitivityCase struct {
	Label          string              `json:"label"`
	NetPV          decimal.Decimal     `json:"netPV"`
	NetPVPercent   decimal.NullDecimal `json:"netPVPercent"`
	NetPVChange    decimal.Decimal     `json:"netPVChange"`
	NetPVChangePct decimal.Decimal     `json:"netPVChangePct"`
}

// CaseSensitivity summarizes how far one case moved across the sweep
type CaseSensitivity struct {
	Label      string          `json:"label"`
	MinNetPV   decimal.Decimal `json:"minNetPV"`
	MaxNetPV   decimal.Decimal `json:"maxNetPV"`
	NetPVRange decimal.Decimal `json:"netPVRange"`
	// PercentSpread is the max-min spread of net % of allowed, in points
	PercentSpread decimal.Decimal `json:"percentSpread"`
}

// ParameterSensitivityAnalysis represents a complete single-parameter sweep
type ParameterSensitivityAnalysis struct {
	Parameter SensitivityParameter `json:"parameter"`
	Baseline  []SensitivityCase    `json:"baseline"`
	Points    []SensitivityPoint   `json:"points"`
	Summary   SensitivitySummary   `json:"summary"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MostSensitiveCase string            `json:"mostSensitiveCase"`
	Cases             []CaseSensitivity `json:"cases"`
}
