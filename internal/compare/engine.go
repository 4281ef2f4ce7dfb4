package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/novetrasys/npad/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	Presets           *presets.Registry
}

// NewCompareEngine creates a new comparison engine using the built-in
// templates and presets
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		Presets:           presets.BuiltIn(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Display name of the base; defaults to the configuration's preset
	Alternatives     []string // Template names or preset names/slugs
	ConfigPath       string
}

// Compare evaluates the base configuration and every alternative over the
// same cases. A template alternative overrides the base assumptions; a
// preset alternative replaces the assumptions and review costs.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = base.Preset
	}
	if baseName == "" {
		baseName = "Base"
	}

	baseValuation, err := ce.CalcEngine.Evaluate(ctx, base.Assumptions, base.CaseInputs())
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseValuation)
	baseResult.Source = SourceBase

	alternatives := []ComparisonResult{}
	for _, name := range options.Alternatives {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		alt, err := ce.resolveAlternative(base, baseName, name)
		if err != nil {
			return nil, err
		}

		valuation, err := ce.CalcEngine.Evaluate(ctx, alt.config.Assumptions, alt.config.CaseInputs())
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(alt.name, valuation)
		altResult.Source = alt.source
		altResult.Description = alt.description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

type alternative struct {
	name        string
	source      string
	description string
	config      domain.Configuration
}

// resolveAlternative looks name up as a template first and then as a preset.
func (ce *CompareEngine) resolveAlternative(base domain.Configuration, baseName, name string) (alternative, error) {
	if ce.TemplateRegistry != nil {
		if template, ok := ce.TemplateRegistry.Get(name); ok {
			bundle, err := transform.ApplyTemplate(base.Assumptions, template)
			if err != nil {
				return alternative{}, fmt.Errorf("failed to apply template %s: %w", name, err)
			}
			cfg := base
			cfg.Assumptions = bundle
			return alternative{
				name:        baseName + "_" + template.Name,
				source:      SourceTemplate,
				description: template.Description,
				config:      cfg,
			}, nil
		}
	}

	if ce.Presets != nil {
		if p, ok := ce.Presets.Get(name); ok {
			cfg := base
			cfg.Preset = p.Name
			cfg.Assumptions = p.Assumptions
			cfg.ReviewCosts = p.ReviewCosts
			return alternative{
				name:        p.Name,
				source:      SourcePreset,
				description: p.Description,
				config:      cfg,
			}, nil
		}
	}

	return alternative{}, fmt.Errorf("alternative %s is neither a template nor a preset", name)
}
