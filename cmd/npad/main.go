package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/config"
	"github.com/novetrasys/npad/internal/logging"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every command needs once the persistent flags are parsed
type app struct {
	settingsPath string
	logLevel     string
	logFormat    string

	settings *config.Settings
	logger   *zap.Logger
	presets  *presets.Registry
}

// setup loads settings and builds the logger. Flags win over settings.
func (a *app) setup() error {
	settings, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		settings.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		settings.Logging.Format = a.logFormat
	}

	logger, err := logging.New(settings.Logging.Level, settings.Logging.Format)
	if err != nil {
		return err
	}

	a.settings = settings
	a.logger = logger
	return nil
}

// engine returns a calculation engine that logs through the app logger
func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewCalculationLogger(a.logger))
	return engine
}

func (a *app) sync() {
	if a.logger != nil {
		// stderr sync fails on some terminals; nothing to do about it
		_ = a.logger.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{presets: presets.BuiltIn()}

	rootCmd := &cobra.Command{
		Use:   "npad",
		Short: "NPAD vs PPO claim present-value calculator",
		Long: `Values a claim paid under a No Patient Adjustment Discount arrangement against the
usual PPO flow: plan share, patient share with repayment risk, and collections,
all discounted to present value and net of billing review cost.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "Settings file (yaml, json or toml); NPAD_* environment variables override it")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(
		evaluateCmd(a),
		validateCmd(a),
		presetsCmd(a),
		compareCmd(a),
		sensitivityCmd(a),
		breakEvenCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "npad %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
