package observability

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/eshaanmandal/tempgrid/internal/utils"
)

const namespace = "tempgrid"

// Metrics holds per-run pipeline counters on a private registry, so each
// run (and each test) starts from zero.
type Metrics struct {
	Registry *prometheus.Registry

	RecordsLoaded   prometheus.Gauge
	RecordsKept     prometheus.Gauge
	InvertedRecords prometheus.Gauge
	Aggregates      prometheus.Gauge
	Overlays        prometheus.Gauge
	MissingCells    prometheus.Gauge
	StageDuration   *prometheus.HistogramVec // labels: stage={load,filter,aggregate,grid,overlay,render,summary}
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Daily records read from the input file.",
		}),
		RecordsKept: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_kept",
			Help:      "Daily records inside the selected year range.",
		}),
		InvertedRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inverted_records",
			Help:      "Records whose max temperature is below the min temperature.",
		}),
		Aggregates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "monthly_aggregates",
			Help:      "Year/month groups that produced an aggregate.",
		}),
		Overlays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overlay_traces",
			Help:      "Daily line overlays drawn on the grid.",
		}),
		MissingCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "missing_cells",
			Help:      "Grid cells without data.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
	}
	m.Registry.MustRegister(
		m.RecordsLoaded,
		m.RecordsKept,
		m.InvertedRecords,
		m.Aggregates,
		m.Overlays,
		m.MissingCells,
		m.StageDuration,
	)
	return m
}

// ObserveStage records the time elapsed since start under the given stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteTextfile dumps the registry in the Prometheus text format, suitable
// for node_exporter's textfile collector. The parent directory is created.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
