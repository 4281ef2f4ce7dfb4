package main

import (
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/breakeven"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/spf13/cobra"
)

func breakEvenCmd(a *app) *cobra.Command {
	var (
		inputs   inputFlags
		params   string
		target   string
		goal     string
		caseName string
		minValue string
		maxValue string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the assumption value at which a case reaches a target",
		Long: `Solve for the value of an assumption at which a case's net % of allowed (or
net present value in dollars) reaches a target. The search runs over the
assumption's slider range unless --min and --max narrow it, and the target
must lie between the outcomes at the two bounds.

--param takes one assumption, a comma-separated list, or "all"; with more
than one the solutions are compared and the smallest move is reported.

Examples:
  npad break-even --param discount_rate --target 85
  npad break-even --param place_frac,recovery_rate --target 84 --case "Large Case"
  npad break-even --param all --goal net-pv --target 850`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := parseParams(params)
			if len(keys) == 0 {
				return fmt.Errorf("--param is required")
			}

			g, err := parseGoal(goal)
			if err != nil {
				return err
			}
			targetValue, err := parseOptionalDecimal("target", target)
			if err != nil {
				return err
			}
			if targetValue == nil {
				return fmt.Errorf("--target is required")
			}

			cfg, err := a.configuration(&inputs, args)
			if err != nil {
				return err
			}

			constraints := breakeven.DefaultConstraints(keys[0], caseName)
			if g == breakeven.GoalMatchYield {
				constraints.TargetPercent = targetValue
			} else {
				constraints.TargetNetPV = targetValue
			}
			if constraints.MinValue, err = parseOptionalDecimal("min", minValue); err != nil {
				return err
			}
			if constraints.MaxValue, err = parseOptionalDecimal("max", maxValue); err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(a.engine())
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			table := &breakeven.TableFormatter{}
			jsonFormatter := &breakeven.JSONFormatter{Pretty: true}

			if len(keys) == 1 && keys[0] != "all" {
				result, err := solver.Optimize(ctx, breakeven.OptimizationRequest{
					Assumptions: cfg.Assumptions,
					Cases:       cfg.CaseInputs(),
					Goal:        g,
					Constraints: constraints,
				})
				if err != nil {
					return err
				}
				if strings.EqualFold(format, "json") {
					data, err := jsonFormatter.Format(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, data)
					return nil
				}
				fmt.Fprint(out, table.Format(result))
				return nil
			}

			var result *breakeven.MultiDimensionalResult
			if len(keys) == 1 {
				result, err = solver.OptimizeAllParameters(ctx, cfg.Assumptions, cfg.CaseInputs(), g, constraints)
			} else {
				result, err = solver.OptimizeMultiDimensional(ctx, cfg.Assumptions, cfg.CaseInputs(), g, constraints, keys)
			}
			if err != nil {
				return err
			}
			if strings.EqualFold(format, "json") {
				data, err := jsonFormatter.FormatMultiDimensional(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
				return nil
			}
			fmt.Fprint(out, table.FormatMultiDimensional(result))
			return nil
		},
	}

	inputs.register(cmd)
	cmd.Flags().StringVar(&params, "param", "", `Assumption(s) to solve for, comma-separated, or "all"`)
	cmd.Flags().StringVar(&target, "target", "", "Target net % of allowed (e.g. 85) or net PV in dollars with --goal net-pv")
	cmd.Flags().StringVar(&goal, "goal", "yield", "What to match: yield (net % of allowed) or net-pv")
	cmd.Flags().StringVar(&caseName, "case", domain.SmallCaseLabel, "Label of the case to solve for")
	cmd.Flags().StringVar(&minValue, "min", "", "Lower search bound (single parameter only)")
	cmd.Flags().StringVar(&maxValue, "max", "", "Upper search bound (single parameter only)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	return cmd
}

func parseParams(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "all") {
			return []string{"all"}
		}
		keys = append(keys, part)
	}
	return keys
}

func parseGoal(raw string) (breakeven.OptimizationGoal, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "yield", "percent", string(breakeven.GoalMatchYield):
		return breakeven.GoalMatchYield, nil
	case "net-pv", "netpv", "dollars", string(breakeven.GoalMatchNetPV):
		return breakeven.GoalMatchNetPV, nil
	}
	return "", fmt.Errorf("unsupported goal %q (use yield or net-pv)", raw)
}
