package main

import (
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func sensitivityCmd(a *app) *cobra.Command {
	var (
		inputs   inputFlags
		param    string
		minValue string
		maxValue string
		steps    int
		format   string
	)

	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep one assumption and show how net present value responds",
		Long: `Sweep one assumption from --min to --max in --steps evenly spaced values and
evaluate every case at each point. Without --min and --max the assumption's
full slider range is swept.

Parameters: ` + strings.Join(domain.ParameterKeys(), ", ") + `

Examples:
  npad sensitivity --param discount_rate --min 0 --max 0.16 --steps 9
  npad sensitivity --preset stop-loss --param recovery_rate --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if param == "" {
				return fmt.Errorf("--param is required")
			}

			cfg, err := a.configuration(&inputs, args)
			if err != nil {
				return err
			}

			lo, err := parseOptionalDecimal("min", minValue)
			if err != nil {
				return err
			}
			hi, err := parseOptionalDecimal("max", maxValue)
			if err != nil {
				return err
			}
			sweep, err := calculation.NewSensitivityParameter(param, cfg.Assumptions, orZero(lo), orZero(hi), steps)
			if err != nil {
				return err
			}

			analyzer := calculation.NewSensitivityAnalyzer(a.engine())
			analysis, err := analyzer.AnalyzeSingleParameter(cmd.Context(), cfg.Assumptions, cfg.CaseInputs(), sweep)
			if err != nil {
				return err
			}
			a.logger.Debug("sensitivity sweep complete",
				zap.String("parameter", sweep.Name),
				zap.Int("points", len(analysis.Points)))

			text, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	inputs.register(cmd)
	cmd.Flags().StringVar(&param, "param", "", "Assumption to sweep, e.g. discount_rate")
	cmd.Flags().StringVar(&minValue, "min", "", "Lowest value of the sweep")
	cmd.Flags().StringVar(&maxValue, "max", "", "Highest value of the sweep")
	cmd.Flags().IntVar(&steps, "steps", 11, "Number of values in the sweep (at least 2)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, csv or json")
	return cmd
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
