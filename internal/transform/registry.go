package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/novetrasys/npad/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (AssumptionTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set", createSetParameter)
	registry.Register("scale", createScaleParameter)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (AssumptionTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "scale:key=patient_dso_days,factor=0.5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (AssumptionTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseOverride parses a "key=value" assumption override such as
// "discount_rate=0". Percent values ("8%") are read as fractions.
func ParseOverride(override string) (*SetParameter, error) {
	kv := strings.SplitN(override, "=", 2)
	if len(kv) != 2 {
		return nil, fmt.Errorf("invalid override format, expected 'key=value', got: %s", override)
	}

	spec, ok := domain.LookupParameter(kv[0])
	if !ok {
		return nil, fmt.Errorf("unknown assumption %q (valid: %s)", strings.TrimSpace(kv[0]), strings.Join(domain.ParameterKeys(), ", "))
	}

	value, err := parseValue(kv[1])
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", spec.Key, err)
	}

	return &SetParameter{Key: spec.Key, Value: value}, nil
}

// ParseOverrides parses each override in turn.
func ParseOverrides(overrides []string) ([]AssumptionTransform, error) {
	transforms := make([]AssumptionTransform, 0, len(overrides))
	for _, o := range overrides {
		if strings.TrimSpace(o) == "" {
			continue
		}
		t, err := ParseOverride(o)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

func parseValue(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasSuffix(s, "%") {
		v, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
		if err != nil {
			return decimal.Zero, err
		}
		return v.Div(decimal.NewFromInt(100)), nil
	}
	return decimal.NewFromString(s)
}

// Factory functions for each transform

func createSetParameter(params map[string]string) (AssumptionTransform, error) {
	key, ok := params["key"]
	if !ok {
		return nil, fmt.Errorf("set requires 'key' parameter")
	}
	raw, ok := params["value"]
	if !ok {
		return nil, fmt.Errorf("set requires 'value' parameter")
	}
	return ParseOverride(key + "=" + raw)
}

func createScaleParameter(params map[string]string) (AssumptionTransform, error) {
	key, ok := params["key"]
	if !ok {
		return nil, fmt.Errorf("scale requires 'key' parameter")
	}
	spec, known := domain.LookupParameter(key)
	if !known {
		return nil, fmt.Errorf("unknown assumption %q", key)
	}

	factorStr, ok := params["factor"]
	if !ok {
		return nil, fmt.Errorf("scale requires 'factor' parameter")
	}
	factor, err := decimal.NewFromString(factorStr)
	if err != nil {
		return nil, fmt.Errorf("invalid factor value: %w", err)
	}

	return &ScaleParameter{Key: spec.Key, Factor: factor}, nil
}
