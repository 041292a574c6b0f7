package pipeline

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaanmandal/tempgrid/internal/analysis"
	"github.com/eshaanmandal/tempgrid/internal/chart"
	"github.com/eshaanmandal/tempgrid/internal/dataset"
	"github.com/eshaanmandal/tempgrid/internal/observability"
)

const sampleCSV = `date,max_temperature,min_temperature
2010-01-01,18,10
2010-01-02,20,12
2010-01-03,19,9
2011-07-01,33,27
2011-07-02,31,34
2019-05-05,28,21
`

func writeInput(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "temperature_daily.csv")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func baseOptions(t *testing.T, input string) Options {
	dir := t.TempDir()
	return Options{
		InputPath:  input,
		OutputPath: filepath.Join(dir, "grid.html"),
		Range:      analysis.YearRange{Start: 2008, End: 2017},
		Dataset:    dataset.DefaultOptions(),
		Chart:      chart.DefaultOptions(),
		HTML: chart.HTMLOptions{
			Clock: clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			DivID: "grid",
		},
	}
}

func TestRun_WritesChartSummaryAndMetrics(t *testing.T) {
	opts := baseOptions(t, writeInput(t, sampleCSV))
	opts.SummaryPath = filepath.Join(t.TempDir(), "summary.md")
	opts.MetricsFile = filepath.Join(t.TempDir(), "tempgrid.prom")
	m := observability.NewMetrics()

	res, err := Run(opts, quietLogger(), m)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Loaded)
	assert.Len(t, res.Kept, 5)
	require.Len(t, res.Aggregates, 2)
	assert.Equal(t, 20.0, res.Aggregates[0].MonthlyMax)
	assert.Equal(t, 9.0, res.Aggregates[0].MonthlyMin)
	assert.Len(t, res.Overlays, 4)
	assert.Equal(t, []int{2010, 2011}, res.Grids.Max.Years)
	assert.Equal(t, 1, res.Summary.Inverted)

	html, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), `Plotly.newPlot("grid"`)
	assert.Contains(t, string(html), "<title>Hong Kong Temperatures 2008–2017</title>")

	md, err := os.ReadFile(opts.SummaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "[MONTHLY EXTREMES]")
	assert.Contains(t, string(md), "kept as-is")

	prom, err := os.ReadFile(opts.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "tempgrid_records_kept 5")
	assert.Contains(t, string(prom), "tempgrid_overlay_traces 4")
	assert.Contains(t, string(prom), "tempgrid_inverted_records 1")
}

func TestRun_EmptyRangeWritesNothing(t *testing.T) {
	opts := baseOptions(t, writeInput(t, sampleCSV))
	opts.Range = analysis.YearRange{Start: 2020, End: 2025}
	opts.SummaryPath = filepath.Join(t.TempDir(), "summary.md")

	_, err := Run(opts, quietLogger(), observability.NewMetrics())
	require.Error(t, err)
	var empty *analysis.EmptyResultError
	require.True(t, errors.As(err, &empty))
	require.NotNil(t, empty.Range)
	assert.Equal(t, 2020, empty.Range.Start)

	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(opts.SummaryPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_ParseErrorWritesNothing(t *testing.T) {
	body := strings.Replace(sampleCSV, "2011-07-01,33,27", "2011-07-01,hot,27", 1)
	opts := baseOptions(t, writeInput(t, body))

	_, err := Run(opts, quietLogger(), nil)
	var perr *dataset.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, 4, perr.Row)
	assert.Equal(t, "max_temperature", perr.Column)

	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_IsIdempotent(t *testing.T) {
	opts := baseOptions(t, writeInput(t, sampleCSV))
	_, err := Run(opts, quietLogger(), nil)
	require.NoError(t, err)
	first, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)

	_, err = Run(opts, quietLogger(), nil)
	require.NoError(t, err)
	second, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestAnalyze_RejectsReversedRange(t *testing.T) {
	opts := baseOptions(t, writeInput(t, sampleCSV))
	opts.Range = analysis.YearRange{Start: 2017, End: 2008}
	_, err := Analyze(opts, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start after end")
}

func TestAnalyze_LogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts := baseOptions(t, writeInput(t, sampleCSV))

	res, err := Analyze(opts, log, nil)
	require.NoError(t, err)
	assert.Nil(t, res.Figure)
	out := buf.String()
	assert.Contains(t, out, "rows=6 inverted=1")
	assert.Contains(t, out, "max temperature below min temperature")
	assert.Contains(t, out, "months without data")
	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MetricsFileNeedsRegistry(t *testing.T) {
	opts := baseOptions(t, writeInput(t, sampleCSV))
	opts.MetricsFile = filepath.Join(t.TempDir(), "tempgrid.prom")

	_, err := Run(opts, quietLogger(), nil)
	require.ErrorIs(t, err, ErrNoMetrics)
	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_SummaryWriteFailureKeepsChart(t *testing.T) {
	opts := baseOptions(t, writeInput(t, sampleCSV))
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	opts.SummaryPath = filepath.Join(blocker, "summary.md")

	res, err := Run(opts, quietLogger(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write summary")
	require.NotNil(t, res)
	assert.Equal(t, opts.OutputPath, res.OutputPath)
	_, statErr := os.Stat(opts.OutputPath)
	assert.NoError(t, statErr)
}

func TestRun_TitleUsesConfiguredRange(t *testing.T) {
	opts := baseOptions(t, writeInput(t, sampleCSV))
	opts.Range = analysis.YearRange{Start: 2009, End: 2012}

	res, err := Run(opts, quietLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2010, 2011}, res.Grids.Max.Years)
	assert.Equal(t, "Hong Kong Temperatures 2009–2012", res.Figure.Layout.Title.Text)
}
