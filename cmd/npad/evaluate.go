package main

import (
	"fmt"
	"strings"

	"github.com/novetrasys/npad/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func evaluateCmd(a *app) *cobra.Command {
	var (
		inputs inputFlags
		format string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate [input-file]",
		Short: "Evaluate the small and large cases (or the cases of a file)",
		Long: `Evaluate the net present value of each case.

Without a file the named preset (or the settings preset) supplies every input.

Examples:
  npad evaluate
  npad evaluate --preset tpa --set discount_rate=0.05
  npad evaluate --small 2500 --large 40000 --format csv
  npad evaluate claims.yaml --format html --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.configuration(&inputs, args)
			if err != nil {
				return err
			}

			if format == "" {
				format = a.settings.Format
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			valuation, err := a.engine().Evaluate(cmd.Context(), cfg.Assumptions, cfg.CaseInputs())
			if err != nil {
				return err
			}
			report := output.NewReportFromConfiguration(cfg, valuation)
			a.logger.Debug("evaluated configuration",
				zap.Stringer("report_id", report.ID),
				zap.Int("cases", len(valuation.Cases)))

			if save {
				path, err := output.WriteFormatted(f, report, reportExt(f.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	inputs.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" (defaults to the settings format)")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a file in the current directory instead of stdout")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.parser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d cases)\n", args[0], len(cfg.CaseInputs()))
			return nil
		},
	}
}

// reportExt is the file extension of a saved report
func reportExt(formatter string) string {
	switch formatter {
	case "console", "verbose":
		return "txt"
	}
	return formatter
}
