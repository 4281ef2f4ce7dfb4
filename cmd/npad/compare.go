package main

import (
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/compare"
	"github.com/novetrasys/npad/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	var (
		inputs        inputFlags
		with          string
		format        string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a base configuration against presets or override templates",
		Long: `Evaluate a base configuration and each alternative over the same cases.

An alternative is an override template (applied on top of the base
assumptions) or a preset (bringing its own assumptions and review costs).
Alternatives always keep the base cases and amounts.

Examples:
  npad compare --with hospital-cfo,stop-loss
  npad compare --base tpa --with zero_discount,fast_patient_pay --format csv
  npad compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := transform.CreateBuiltInTemplates()
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(templates))
				return nil
			}

			alternatives := transform.ParseTemplateList(with)
			if len(alternatives) == 0 {
				return fmt.Errorf("--with needs at least one preset or template")
			}

			base, err := a.configuration(&inputs, args)
			if err != nil {
				return err
			}

			engine := compare.NewCompareEngine(a.engine())
			engine.TemplateRegistry = templates
			engine.Presets = a.presets

			options := compare.CompareOptions{Alternatives: alternatives}
			if len(args) > 0 {
				options.ConfigPath = args[0]
			}
			compSet, err := engine.Compare(cmd.Context(), *base, options)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "", "table", "console":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			case "csv":
				data, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(out, data)
			case "json":
				data, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
			default:
				return fmt.Errorf("unsupported format: %s (use table, compact, csv or json)", format)
			}
			return nil
		},
	}

	inputs.register(cmd)
	// --base reads better than --preset here
	cmd.Flags().Lookup("preset").Hidden = true
	cmd.Flags().StringVar(&inputs.preset, "base", "", "Base preset (defaults to the settings preset)")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated presets and/or templates to compare against")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, compact, csv or json")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the override templates and exit")
	return cmd
}
