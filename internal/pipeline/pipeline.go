package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/eshaanmandal/tempgrid/internal/analysis"
	"github.com/eshaanmandal/tempgrid/internal/chart"
	"github.com/eshaanmandal/tempgrid/internal/dataset"
	"github.com/eshaanmandal/tempgrid/internal/observability"
	"github.com/eshaanmandal/tempgrid/internal/utils"
)

// Options describes one batch run.
type Options struct {
	InputPath  string
	OutputPath string
	Range      analysis.YearRange
	Dataset    dataset.Options
	Chart      chart.Options
	HTML       chart.HTMLOptions
	// SummaryPath, if set, receives the markdown summary after a successful render.
	SummaryPath string
	// MetricsFile, if set, receives the run metrics in textfile format.
	MetricsFile string
}

// Result carries everything a run produced.
type Result struct {
	Loaded     int
	Kept       []dataset.DailyRecord
	Aggregates []analysis.MonthlyAggregate
	Grids      *analysis.Grids
	Overlays   []analysis.Overlay
	Figure     *chart.Figure
	Summary    *analysis.Summary
	OutputPath string
}

// Analyze loads, filters and aggregates the input without writing anything.
// A range with no records yields *analysis.EmptyResultError.
func Analyze(opts Options, log *slog.Logger, m *observability.Metrics) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if opts.Range.Start > opts.Range.End {
		return nil, fmt.Errorf("invalid year range %d..%d: start after end", opts.Range.Start, opts.Range.End)
	}

	start := time.Now()
	recs, st, err := dataset.Load(opts.InputPath, opts.Dataset)
	m.ObserveStage("load", start)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded records", "path", opts.InputPath, "rows", st.Rows, "inverted", st.Inverted)

	start = time.Now()
	kept := analysis.FilterYears(recs, opts.Range)
	m.ObserveStage("filter", start)
	log.Debug("filtered records", "range", opts.Range.String(), "kept", len(kept))
	if len(kept) == 0 {
		r := opts.Range
		return nil, &analysis.EmptyResultError{Range: &r}
	}

	inverted := 0
	for _, r := range kept {
		if r.Inverted() {
			inverted++
		}
	}
	if inverted > 0 {
		log.Warn("max temperature below min temperature", "rows", inverted)
	}

	start = time.Now()
	aggs := analysis.Aggregate(kept)
	m.ObserveStage("aggregate", start)

	start = time.Now()
	grids, err := analysis.BuildGrids(aggs)
	m.ObserveStage("grid", start)
	if err != nil {
		return nil, err
	}
	if missing := grids.Max.Missing(); missing > 0 {
		log.Warn("months without data", "cells", missing)
	}

	res := &Result{
		Loaded:     len(recs),
		Kept:       kept,
		Aggregates: aggs,
		Grids:      grids,
		Summary:    analysis.NewSummary(filepath.Base(opts.InputPath), opts.Range, len(recs), len(kept), inverted, aggs, grids),
	}
	if m != nil {
		m.RecordsLoaded.Set(float64(len(recs)))
		m.RecordsKept.Set(float64(len(kept)))
		m.InvertedRecords.Set(float64(inverted))
		m.Aggregates.Set(float64(len(aggs)))
		m.MissingCells.Set(float64(grids.Max.Missing()))
	}
	return res, nil
}

// ErrNoMetrics is returned when a metrics file is requested without a registry.
var ErrNoMetrics = errors.New("metrics file requested but no metrics registry given")

// Run performs the full batch: analyze, build overlays, compose the figure and
// export it. The chart is written only after every analysis stage succeeded.
// The summary and metrics files are written after the chart; if one of those
// writes fails the error is returned and the chart stays in place.
func Run(opts Options, log *slog.Logger, m *observability.Metrics) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if opts.MetricsFile != "" && m == nil {
		return nil, ErrNoMetrics
	}
	res, err := Analyze(opts, log, m)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res.Overlays = analysis.BuildOverlays(res.Kept)
	m.ObserveStage("overlay", start)
	if m != nil {
		m.Overlays.Set(float64(len(res.Overlays)))
	}
	log.Debug("built overlays", "traces", len(res.Overlays))

	var summary []byte
	if opts.SummaryPath != "" {
		summary = []byte(res.Summary.Markdown())
	}

	start = time.Now()
	chartOpts := opts.Chart
	if chartOpts.Range == (analysis.YearRange{}) {
		chartOpts.Range = opts.Range
	}
	res.Figure = chart.Compose(res.Grids, res.Overlays, chartOpts)
	if err := chart.Export(opts.OutputPath, res.Figure, opts.HTML); err != nil {
		return nil, fmt.Errorf("export chart: %w", err)
	}
	m.ObserveStage("render", start)
	res.OutputPath = opts.OutputPath
	log.Info("wrote chart", "path", opts.OutputPath, "years", len(res.Grids.Max.Years), "overlays", len(res.Overlays))

	if opts.SummaryPath != "" {
		start = time.Now()
		if err := utils.SafeWriteFile(opts.SummaryPath, summary); err != nil {
			return res, fmt.Errorf("write summary: %w", err)
		}
		m.ObserveStage("summary", start)
		log.Info("wrote summary", "path", opts.SummaryPath)
	}
	if opts.MetricsFile != "" {
		if err := m.WriteTextfile(opts.MetricsFile); err != nil {
			return res, err
		}
		log.Debug("wrote metrics", "path", opts.MetricsFile)
	}
	return res, nil
}
