package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/presets"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct {
	presets *presets.Registry
	policy  domain.ReviewCostPolicy
}

// NewInputParser creates a new input parser backed by the built-in presets
func NewInputParser() *InputParser {
	return NewInputParserWithPresets(presets.BuiltIn())
}

// NewInputParserWithPresets creates a parser resolving preset names against registry
func NewInputParserWithPresets(registry *presets.Registry) *InputParser {
	return &InputParser{presets: registry, policy: domain.DefaultReviewCostPolicy()}
}

// WithReviewPolicy sets the review-cost thresholds used by documents that do
// not carry a review_policy of their own.
func (ip *InputParser) WithReviewPolicy(policy domain.ReviewCostPolicy) *InputParser {
	ip.policy = policy
	return ip
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes a configuration document. Keys left out of the document keep
// the values of the named preset, or the defaults when no preset is named.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var header struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config, err := ip.baseConfiguration(header.Preset)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func (ip *InputParser) baseConfiguration(presetName string) (domain.Configuration, error) {
	if strings.TrimSpace(presetName) == "" {
		config := domain.DefaultConfiguration()
		config.ReviewPolicy = ip.policy
		return config, nil
	}
	if ip.presets == nil {
		return domain.Configuration{}, fmt.Errorf("unknown preset %q", presetName)
	}
	p, ok := ip.presets.Get(presetName)
	if !ok {
		return domain.Configuration{}, fmt.Errorf("unknown preset %q", presetName)
	}
	return p.Configuration(ip.policy), nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Assumptions.Validate(); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	if err := config.ReviewCosts.Validate(); err != nil {
		return fmt.Errorf("review costs validation failed: %w", err)
	}
	if err := config.ReviewPolicy.Validate(); err != nil {
		return fmt.Errorf("review policy validation failed: %w", err)
	}
	if err := ip.validateAmounts(config.Amounts); err != nil {
		return fmt.Errorf("amounts validation failed: %w", err)
	}

	seen := make(map[string]bool, len(config.Cases))
	for i, c := range config.Cases {
		if err := ip.validateCase(c); err != nil {
			return fmt.Errorf("case %d validation failed: %w", i, err)
		}
		if seen[c.Label] {
			return fmt.Errorf("case %d validation failed: duplicate label %q", i, c.Label)
		}
		seen[c.Label] = true
	}

	return nil
}

func (ip *InputParser) validateAmounts(amounts domain.CaseAmounts) error {
	if amounts.Small.IsNegative() {
		return domain.NewInvalidParameterError("amounts.small", amounts.Small, "must be non-negative")
	}
	if amounts.Large.IsNegative() {
		return domain.NewInvalidParameterError("amounts.large", amounts.Large, "must be non-negative")
	}
	return nil
}

// validateCase validates a single configured case
func (ip *InputParser) validateCase(c domain.CaseSpec) error {
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("label is required")
	}
	if c.AllowedAmount.IsNegative() {
		return domain.NewInvalidParameterError("allowed_amount", c.AllowedAmount, "must be non-negative")
	}
	if c.ReviewCost != nil && c.ReviewCost.IsNegative() {
		return domain.NewInvalidParameterError("review_cost", *c.ReviewCost, "must be non-negative")
	}
	switch strings.ToLower(c.Band) {
	case "", domain.BandSmall, domain.BandLarge:
	default:
		return fmt.Errorf("band must be '%s' or '%s', got %q", domain.BandSmall, domain.BandLarge, c.Band)
	}
	return nil
}

// SaveConfiguration writes config to filename as JSON when the extension is
// .json and as YAML otherwise.
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := MarshalConfiguration(config, filepath.Ext(filename))
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// MarshalConfiguration renders config as JSON for ".json"/"json" and YAML otherwise.
func MarshalConfiguration(config *domain.Configuration, format string) ([]byte, error) {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "json":
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := yaml.Marshal(config)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	}
}
