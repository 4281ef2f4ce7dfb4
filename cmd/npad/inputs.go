package main

import (
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/config"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// inputFlags are the flags shared by every command that evaluates cases
type inputFlags struct {
	preset    string
	overrides []string
	small     string
	large     string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "Preset name or slug (defaults to the settings preset)")
	cmd.Flags().StringArrayVar(&f.overrides, "set", nil, "Override an assumption, e.g. --set discount_rate=0 (repeatable)")
	cmd.Flags().StringVar(&f.small, "small", "", "Allowed amount of the small case")
	cmd.Flags().StringVar(&f.large, "large", "", "Allowed amount of the large case")
}

// parser reads configuration files, falling back to the settings review policy
func (a *app) parser() *config.InputParser {
	return config.NewInputParserWithPresets(a.presets).WithReviewPolicy(a.settings.ReviewPolicy.Policy())
}

// configuration resolves the inputs: a file when one is given, otherwise a
// preset; then overrides and amounts are applied and the result validated.
func (a *app) configuration(f *inputFlags, args []string) (*domain.Configuration, error) {
	parser := a.parser()

	var cfg *domain.Configuration
	if len(args) > 0 {
		if f.preset != "" {
			return nil, fmt.Errorf("--preset cannot be combined with a configuration file; name the preset inside the file")
		}
		loaded, err := parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		name := f.preset
		if name == "" {
			name = a.settings.Preset
		}
		p, ok := a.presets.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(a.presets.Names(), ", "))
		}
		resolved := p.Configuration(a.settings.ReviewPolicy.Policy())
		cfg = &resolved
	}

	if len(f.overrides) > 0 {
		transforms, err := transform.ParseOverrides(f.overrides)
		if err != nil {
			return nil, err
		}
		bundle, err := transform.ApplyTransforms(cfg.Assumptions, transforms)
		if err != nil {
			return nil, err
		}
		cfg.Assumptions = bundle
	}

	if (f.small != "" || f.large != "") && len(cfg.Cases) > 0 {
		return nil, fmt.Errorf("--small and --large size the standard cases; %s lists its own cases", args[0])
	}
	if f.small != "" {
		v, err := parseAmount("small", f.small)
		if err != nil {
			return nil, err
		}
		cfg.Amounts.Small = v
	}
	if f.large != "" {
		v, err := parseAmount("large", f.large)
		if err != nil {
			return nil, err
		}
		cfg.Amounts.Large = v
	}

	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s amount %q: %w", name, raw, err)
	}
	return v, nil
}

// parseOptionalDecimal parses a flag value that may be left empty
func parseOptionalDecimal(name, raw string) (*decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s value %q: %w", name, raw, err)
	}
	return &v, nil
}
