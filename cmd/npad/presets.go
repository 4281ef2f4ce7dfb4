package main

import (
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/config"
	"github.com/novetrasys/npad/internal/output"
	"github.com/spf13/cobra"
)

func presetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), a.presets.Help())
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE:  cmd.RunE,
	}

	var format string
	show := &cobra.Command{
		Use:   "show NAME",
		Short: "Show the assumptions, review costs and amounts of a preset",
		Long: `Show a preset. With --format yaml or json the preset is printed as a
configuration file that evaluate and validate accept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.presets.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown preset %q (available: %s)", args[0], strings.Join(a.presets.Names(), ", "))
			}
			out := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "yaml", "yml", "json":
				cfg := p.Configuration(a.settings.ReviewPolicy.Policy())
				data, err := config.MarshalConfiguration(&cfg, format)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case "", "console", "table", "text":
			default:
				return fmt.Errorf("unsupported format: %s (use console, yaml or json)", format)
			}

			fmt.Fprintf(out, "%s (%s)\n", p.Name, p.Slug)
			if p.Description != "" {
				fmt.Fprintf(out, "%s\n", p.Description)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "ASSUMPTIONS")
			for _, line := range output.AssumptionLines(p.Assumptions) {
				fmt.Fprintf(out, "  %-32s %s\n", line.Label+":", line.Value)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "REVIEW COST PER ENCOUNTER")
			fmt.Fprintf(out, "  %-32s %s\n", "Outpatient / ED:", output.FormatCurrency(p.ReviewCosts.Outpatient))
			fmt.Fprintf(out, "  %-32s %s\n", "Inpatient / Surgery:", output.FormatCurrency(p.ReviewCosts.Inpatient))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "CASES")
			fmt.Fprintf(out, "  %-32s %s\n", "Small case allowed:", output.FormatCurrency(p.Amounts.Small))
			fmt.Fprintf(out, "  %-32s %s\n", "Large case allowed:", output.FormatCurrency(p.Amounts.Large))
			return nil
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, yaml or json")

	cmd.AddCommand(list, show)
	return cmd
}
