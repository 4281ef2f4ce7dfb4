package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in assumption templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []AssumptionTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func set(key string, value float64) AssumptionTransform {
	return &SetParameter{Key: key, Value: decimal.NewFromFloat(value)}
}

// CreateBuiltInTemplates creates a template registry with common what-if changes
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Timing
	registry.Register(Template{
		Name:        "zero_discount",
		Description: "Ignore the time value of money (0% discount rate)",
		Transforms:  []AssumptionTransform{set(domain.KeyAnnualDiscountRate, 0)},
	})

	registry.Register(Template{
		Name:        "high_discount",
		Description: "Discount cash flows at 15% a year",
		Transforms:  []AssumptionTransform{set(domain.KeyAnnualDiscountRate, 0.15)},
	})

	registry.Register(Template{
		Name:        "fast_patient_pay",
		Description: "Patients pay within 15 days",
		Transforms:  []AssumptionTransform{set(domain.KeyPatientCollectionDays, 15)},
	})

	registry.Register(Template{
		Name:        "slow_plan_pay",
		Description: "Plan payment takes twice as long",
		Transforms: []AssumptionTransform{
			&ScaleParameter{Key: domain.KeyPlanCollectionDays, Factor: decimal.NewFromInt(2)},
		},
	})

	// Collections
	registry.Register(Template{
		Name:        "aggressive_collections",
		Description: "Place 80% of unpaid balances and recover 25% of what is placed",
		Transforms: []AssumptionTransform{
			set(domain.KeyPlacementFraction, 0.80),
			set(domain.KeyRecoveryRate, 0.25),
		},
	})

	registry.Register(Template{
		Name:        "no_collections",
		Description: "Never send unpaid balances to an agency",
		Transforms:  []AssumptionTransform{set(domain.KeyPlacementFraction, 0)},
	})

	// Repayment
	registry.Register(Template{
		Name:        "strong_repayment",
		Description: "Patient repayment of 60% / 50% / 45% by band",
		Transforms: []AssumptionTransform{
			set(domain.KeyRepaymentRateSmall, 0.60),
			set(domain.KeyRepaymentRateMedium, 0.50),
			set(domain.KeyRepaymentRateLarge, 0.45),
		},
	})

	registry.Register(Template{
		Name:        "weak_repayment",
		Description: "Patient repayment cut by a third in every band",
		Transforms: []AssumptionTransform{
			&ScaleParameter{Key: domain.KeyRepaymentRateSmall, Factor: decimal.RequireFromString("0.6667")},
			&ScaleParameter{Key: domain.KeyRepaymentRateMedium, Factor: decimal.RequireFromString("0.6667")},
			&ScaleParameter{Key: domain.KeyRepaymentRateLarge, Factor: decimal.RequireFromString("0.6667")},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base bundle
func ApplyTemplate(base domain.AssumptionBundle, template Template) (domain.AssumptionBundle, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Timing":      {},
		"Collections": {},
		"Repayment":   {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.Contains(name, "collections"):
			categories["Collections"] = append(categories["Collections"], template)
		case strings.Contains(name, "repayment"):
			categories["Repayment"] = append(categories["Repayment"], template)
		default:
			categories["Timing"] = append(categories["Timing"], template)
		}
	}

	for _, category := range []string{"Timing", "Collections", "Repayment"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  npad compare --with zero_discount,aggressive_collections\n")
	sb.WriteString("  npad compare --base tpa --with stop-loss,fast_patient_pay\n")

	return sb.String()
}
