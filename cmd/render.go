package cmd

import (
	"fmt"

	"github.com/eshaanmandal/tempgrid/internal/analysis"
	"github.com/eshaanmandal/tempgrid/internal/chart"
	cfgpkg "github.com/eshaanmandal/tempgrid/internal/config"
	"github.com/eshaanmandal/tempgrid/internal/dataset"
	"github.com/eshaanmandal/tempgrid/internal/observability"
	"github.com/eshaanmandal/tempgrid/internal/pipeline"
	"github.com/eshaanmandal/tempgrid/internal/utils"
	"github.com/spf13/cobra"
)

var (
	renOutput      string
	renStartYear   int
	renEndYear     int
	renTitle       string
	renDateColumn  string
	renMaxColumn   string
	renMinColumn   string
	renDelimiter   string
	renSheetName   string
	renPlotlyJS    string
	renSummaryPath string
	renMetricsFile string
	renWidth       int
	renHeight      int
)

var renderCmd = &cobra.Command{
	Use:   "render [input]",
	Short: "Render the monthly temperature grid as a standalone HTML chart",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		if len(args) == 1 {
			c.InputPath = args[0]
		}
		applyRenderFlags(cmd, &c)
		if err := c.Validate(); err != nil {
			return err
		}
		opts, err := pipelineOptions(&c)
		if err != nil {
			return err
		}
		res, err := pipeline.Run(opts, logger, observability.NewMetrics())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Chart written: %s (%d years, %d months with data, %d overlays)\n",
			res.OutputPath, len(res.Grids.Max.Years), len(res.Aggregates), len(res.Overlays))
		if opts.SummaryPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Summary written: %s\n", opts.SummaryPath)
		}
		for _, w := range res.Summary.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
		}
		return nil
	},
}

// applyRenderFlags copies explicitly set flags over config values.
func applyRenderFlags(cmd *cobra.Command, c *cfgpkg.Global) {
	f := cmd.Flags()
	if f.Changed("output") {
		c.OutputPath = renOutput
	}
	if f.Changed("start-year") {
		c.StartYear = renStartYear
	}
	if f.Changed("end-year") {
		c.EndYear = renEndYear
	}
	if f.Changed("title") {
		c.Title = renTitle
	}
	if f.Changed("date-column") {
		c.DateColumn = renDateColumn
	}
	if f.Changed("max-column") {
		c.MaxColumn = renMaxColumn
	}
	if f.Changed("min-column") {
		c.MinColumn = renMinColumn
	}
	if f.Changed("delimiter") {
		c.Delimiter = renDelimiter
	}
	if f.Changed("sheet-name") {
		c.SheetName = renSheetName
	}
	if f.Changed("plotly-js") {
		c.PlotlyJSFile = renPlotlyJS
	}
	if f.Changed("summary") {
		c.SummaryPath = renSummaryPath
	}
	if f.Changed("metrics-file") {
		c.MetricsFile = renMetricsFile
	}
	if f.Changed("width") {
		c.Width = renWidth
	}
	if f.Changed("height") {
		c.Height = renHeight
	}
}

// pipelineOptions maps a validated config onto a pipeline run.
func pipelineOptions(c *cfgpkg.Global) (pipeline.Options, error) {
	delim, err := c.DelimiterRune()
	if err != nil {
		return pipeline.Options{}, err
	}
	var paths [5]string
	for i, p := range []string{c.InputPath, c.OutputPath, c.PlotlyJSFile, c.SummaryPath, c.MetricsFile} {
		if paths[i], err = utils.ExpandHome(p); err != nil {
			return pipeline.Options{}, err
		}
	}
	return pipeline.Options{
		InputPath:  paths[0],
		OutputPath: paths[1],
		Range:      analysis.YearRange{Start: c.StartYear, End: c.EndYear},
		Dataset: dataset.Options{
			DateColumn:  c.DateColumn,
			MaxColumn:   c.MaxColumn,
			MinColumn:   c.MinColumn,
			DateLayouts: c.DateLayouts,
			Delimiter:   delim,
			SheetName:   c.SheetName,
		},
		Chart: chart.Options{
			Title:      c.Title,
			Colorscale: c.Colorscale,
			Width:      c.Width,
			Height:     c.Height,
		},
		HTML: chart.HTMLOptions{
			PlotlyJSFile: paths[2],
			PlotlyJSURL:  c.PlotlyJSURL,
		},
		SummaryPath: paths[3],
		MetricsFile: paths[4],
	}, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renOutput, "output", "o", "", "output HTML path (default from config: hong_kong_temps_grid.html)")
	renderCmd.Flags().IntVar(&renStartYear, "start-year", 0, "first year to include (inclusive)")
	renderCmd.Flags().IntVar(&renEndYear, "end-year", 0, "last year to include (inclusive)")
	renderCmd.Flags().StringVar(&renTitle, "title", "", "chart title prefix; the year span is appended")
	renderCmd.Flags().StringVar(&renDateColumn, "date-column", "", "name of the date column")
	renderCmd.Flags().StringVar(&renMaxColumn, "max-column", "", "name of the daily maximum column")
	renderCmd.Flags().StringVar(&renMinColumn, "min-column", "", "name of the daily minimum column")
	renderCmd.Flags().StringVar(&renDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed from extension if omitted)")
	renderCmd.Flags().StringVar(&renSheetName, "sheet-name", "", "XLSX: sheet name to read (first sheet if omitted)")
	renderCmd.Flags().StringVar(&renPlotlyJS, "plotly-js", "", "inline a local plotly.js instead of loading it from the CDN")
	renderCmd.Flags().StringVar(&renSummaryPath, "summary", "", "also write a Markdown summary to this path")
	renderCmd.Flags().StringVar(&renMetricsFile, "metrics-file", "", "write run metrics in Prometheus textfile format")
	renderCmd.Flags().IntVar(&renWidth, "width", 0, "chart width in pixels")
	renderCmd.Flags().IntVar(&renHeight, "height", 0, "chart height in pixels")
}
