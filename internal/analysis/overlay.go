package analysis

import (
	"sort"
	"time"

	"github.com/eshaanmandal/tempgrid/internal/dataset"
)

// Series names one of the two daily traces drawn inside a cell.
type Series string

const (
	SeriesMax Series = "max"
	SeriesMin Series = "min"
)

// Placement of the daily traces inside a heatmap cell. Each cell spans
// [year-0.5, year+0.5] × [month-0.5, month+0.5].
const (
	normEpsilon = 1e-6
	// OverlayWidth is the share of the year column covered by a trace.
	OverlayWidth = 0.9
	// OverlayHeight is the vertical extent of each series band.
	OverlayHeight = 0.30
	// MaxBandOffset and MinBandOffset are the lower edges of the series
	// bands relative to the month row centre.
	MaxBandOffset = 0.05
	MinBandOffset = -0.35
)

// OverlayPoint is one day of a trace in chart coordinates. Date and Value
// are carried for hover text only.
type OverlayPoint struct {
	X     float64
	Y     float64
	Date  time.Time
	Value float64
}

// Overlay is the daily trace of one series for one (year, month) cell.
type Overlay struct {
	Year   int
	Month  int
	Series Series
	Points []OverlayPoint
}

// BuildOverlays groups records by (year, month) and maps each day into its
// heatmap cell: days spread horizontally over OverlayWidth of the year
// column, temperatures normalized within each series band. The result is
// ordered by key with the max trace before the min trace.
func BuildOverlays(records []dataset.DailyRecord) []Overlay {
	g := groupByMonth(records)
	out := make([]Overlay, 0, 2*len(g.keys))
	for _, k := range g.keys {
		recs := append([]dataset.DailyRecord(nil), g.buckets[k]...)
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })

		xs := dayPositions(recs, k.Year)
		out = append(out,
			seriesOverlay(k, SeriesMax, recs, xs, func(r dataset.DailyRecord) float64 { return r.MaxTemperature }, MaxBandOffset),
			seriesOverlay(k, SeriesMin, recs, xs, func(r dataset.DailyRecord) float64 { return r.MinTemperature }, MinBandOffset),
		)
	}
	return out
}

func dayPositions(recs []dataset.DailyRecord, year int) []float64 {
	lo, hi := recs[0].Day, recs[0].Day
	for _, r := range recs[1:] {
		lo = min(lo, r.Day)
		hi = max(hi, r.Day)
	}
	xs := make([]float64, len(recs))
	for i, r := range recs {
		norm := float64(r.Day-lo) / (float64(hi-lo) + normEpsilon)
		xs[i] = float64(year) + (norm-0.5)*OverlayWidth
	}
	return xs
}

func seriesOverlay(k MonthKey, s Series, recs []dataset.DailyRecord, xs []float64, value func(dataset.DailyRecord) float64, offset float64) Overlay {
	lo, hi := value(recs[0]), value(recs[0])
	for _, r := range recs[1:] {
		v := value(r)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	pts := make([]OverlayPoint, len(recs))
	for i, r := range recs {
		v := value(r)
		norm := (v - lo) / (hi - lo + normEpsilon)
		pts[i] = OverlayPoint{
			X:     xs[i],
			Y:     float64(k.Month) + offset + norm*OverlayHeight,
			Date:  r.Date,
			Value: v,
		}
	}
	return Overlay{Year: k.Year, Month: k.Month, Series: s, Points: pts}
}
