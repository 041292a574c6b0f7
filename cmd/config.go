package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/eshaanmandal/tempgrid/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tempgrid configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_path: %s\n", cfg.InputPath)
		fmt.Fprintf(out, "output_path: %s\n", cfg.OutputPath)
		fmt.Fprintf(out, "start_year: %d\n", cfg.StartYear)
		fmt.Fprintf(out, "end_year: %d\n", cfg.EndYear)
		fmt.Fprintf(out, "date_column: %s\n", cfg.DateColumn)
		fmt.Fprintf(out, "max_column: %s\n", cfg.MaxColumn)
		fmt.Fprintf(out, "min_column: %s\n", cfg.MinColumn)
		if len(cfg.DateLayouts) > 0 {
			fmt.Fprintf(out, "date_layouts: %s\n", strings.Join(cfg.DateLayouts, ", "))
		}
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "title: %s\n", cfg.Title)
		fmt.Fprintf(out, "width: %d\n", cfg.Width)
		fmt.Fprintf(out, "height: %d\n", cfg.Height)
		fmt.Fprintf(out, "colorscale: %s\n", cfg.Colorscale)
		if cfg.PlotlyJSFile != "" {
			fmt.Fprintf(out, "plotly_js_file: %s\n", cfg.PlotlyJSFile)
		}
		if cfg.PlotlyJSURL != "" {
			fmt.Fprintf(out, "plotly_js_url: %s\n", cfg.PlotlyJSURL)
		}
		if cfg.SummaryPath != "" {
			fmt.Fprintf(out, "summary_path: %s\n", cfg.SummaryPath)
		}
		if cfg.MetricsFile != "" {
			fmt.Fprintf(out, "metrics_file: %s\n", cfg.MetricsFile)
		}
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value> [<key> <value>...]",
	Short: "Set config values and save to disk",
	Long: `Set one or more config values and save to disk. All pairs are applied
before validation, so a year range can be moved in one call:

  tempgrid config set start_year 2020 end_year 2025`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("expected <key> <value> pairs, got %d argument(s)", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		for i := 0; i < len(args); i += 2 {
			if err := setKey(&next, args[i], args[i+1]); err != nil {
				return err
			}
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		*cfg = next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	var err error
	switch key {
	case "input_path":
		c.InputPath = val
	case "output_path":
		c.OutputPath = val
	case "start_year":
		c.StartYear, err = atoi()
	case "end_year":
		c.EndYear, err = atoi()
	case "date_column":
		c.DateColumn = val
	case "max_column":
		c.MaxColumn = val
	case "min_column":
		c.MinColumn = val
	case "date_layouts":
		c.DateLayouts = nil
		for _, l := range strings.Split(val, ",") {
			if l = strings.TrimSpace(l); l != "" {
				c.DateLayouts = append(c.DateLayouts, l)
			}
		}
	case "delimiter":
		c.Delimiter = val
	case "sheet_name":
		c.SheetName = val
	case "title":
		c.Title = val
	case "width":
		c.Width, err = atoi()
	case "height":
		c.Height, err = atoi()
	case "colorscale":
		c.Colorscale = val
	case "plotly_js_file":
		c.PlotlyJSFile = val
	case "plotly_js_url":
		c.PlotlyJSURL = val
	case "summary_path":
		c.SummaryPath = val
	case "metrics_file":
		c.MetricsFile = val
	case "log_level":
		c.LogLevel = strings.ToLower(val)
	case "log_format":
		c.LogFormat = strings.ToLower(val)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
