package transform

import (
	"strings"
	"testing"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []AssumptionTransform{},
	}

	registry.Register(template)

	// Test exact match
	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	// Test case-insensitive
	_, ok = registry.Get("TEST_TEMPLATE")
	if !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	// Test not found
	_, ok = registry.Get("nonexistent")
	if ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestTemplateRegistry_List(t *testing.T) {
	registry := NewTemplateRegistry()

	registry.Register(Template{Name: "template2", Description: "Second"})
	registry.Register(Template{Name: "template1", Description: "First"})

	names := registry.List()
	if len(names) != 2 {
		t.Fatalf("Expected 2 templates, got %d", len(names))
	}
	if names[0] != "template1" {
		t.Errorf("Expected sorted names, got %v", names)
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := domain.DefaultAssumptionBundle()

	for _, name := range []string{"zero_discount", "aggressive_collections", "fast_patient_pay", "slow_plan_pay", "no_collections", "strong_repayment", "weak_repayment", "high_discount"} {
		template, ok := registry.Get(name)
		if !ok {
			t.Errorf("Expected template %s to exist", name)
			continue
		}
		if _, err := ApplyTemplate(base, template); err != nil {
			t.Errorf("Template %s failed to apply: %v", name, err)
		}
	}
}

func TestApplyTemplate_Values(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := domain.DefaultAssumptionBundle()

	template, _ := registry.Get("zero_discount")
	result, err := ApplyTemplate(base, template)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.AnnualDiscountRate.IsZero() {
		t.Errorf("Expected zero discount rate, got %s", result.AnnualDiscountRate)
	}

	template, _ = registry.Get("slow_plan_pay")
	result, err = ApplyTemplate(base, template)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.PlanCollectionDays != 110 {
		t.Errorf("Expected 110 plan days, got %d", result.PlanCollectionDays)
	}

	template, _ = registry.Get("aggressive_collections")
	result, err = ApplyTemplate(base, template)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.PlacementFraction.Equal(decimal.NewFromFloat(0.8)) || !result.RecoveryRate.Equal(decimal.NewFromFloat(0.25)) {
		t.Errorf("Unexpected collections funnel: %s / %s", result.PlacementFraction, result.RecoveryRate)
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"zero_discount", []string{"zero_discount"}},
		{"zero_discount, tpa ,", []string{"zero_discount", "tpa"}},
	}

	for _, tt := range tests {
		got := ParseTemplateList(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("ParseTemplateList(%q) = %v, expected %v", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("ParseTemplateList(%q)[%d] = %s, expected %s", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, want := range []string{"Available Templates:", "Timing:", "Collections:", "Repayment:", "zero_discount", "Usage:"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}

	if GetTemplateHelp(NewTemplateRegistry()) != "No templates registered" {
		t.Error("Expected empty registry message")
	}
}
