package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/eshaanmandal/tempgrid/internal/config"
	"github.com/eshaanmandal/tempgrid/internal/observability"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tempgrid",
	Short: "tempgrid: render daily temperatures as a year × month heatmap",
	Long: `tempgrid reads a daily temperature table (CSV, TSV or XLSX), aggregates
monthly maxima and minima over a year range and writes a standalone
interactive HTML chart with daily trend lines drawn inside each cell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tempgrid/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log output: text | json (overrides config)")
}

// setup loads config and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	logger = observability.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	return nil
}
