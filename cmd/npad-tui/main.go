package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/novetrasys/npad/internal/config"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/novetrasys/npad/internal/tui"
)

func newRootCmd() *cobra.Command {
	var (
		preset       string
		settingsPath string
	)

	cmd := &cobra.Command{
		Use:   "npad-tui [config-file]",
		Short: "Interactive NPAD vs PPO present-value calculator",
		Long: `Adjust every assumption, review cost and allowed amount with sliders and
watch the net present value of each case update as you go.

Inputs come from the configuration file when one is given, otherwise from
--preset or the settings preset.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}

			configPath := ""
			if len(args) > 0 {
				configPath = args[0]
				if _, err := os.Stat(configPath); os.IsNotExist(err) {
					return fmt.Errorf("config file not found: %s", configPath)
				}
			}
			if preset == "" {
				preset = settings.Preset
			}

			model := tui.NewModel(configPath, presets.BuiltIn(), preset).
				WithPolicy(settings.ReviewPolicy.Policy())

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(), // Use alternate screen buffer
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", "", "Preset to start from (defaults to the settings preset)")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "Settings file; NPAD_* environment variables override it")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
