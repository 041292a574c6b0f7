package chart

import (
	"fmt"
	"strconv"

	"github.com/eshaanmandal/tempgrid/internal/analysis"
)

// Options controls presentation of the composed figure.
type Options struct {
	// Title prefix; the year span is appended.
	Title      string
	// Range, when set, is the span shown in the title. Otherwise the first
	// and last year of the grid are used.
	Range      analysis.YearRange
	Colorscale string
	Width      int
	Height     int
}

// DefaultOptions returns the Hong Kong chart defaults.
func DefaultOptions() Options {
	return Options{
		Title:      "Hong Kong Temperatures",
		Colorscale: "Turbo",
		Width:      1000,
		Height:     600,
	}
}

const (
	maxLineColor = "rgba(0, 150, 0, 0.95)"
	minLineColor = "rgba(200, 200, 200, 0.95)"
)

// Compose lays both heatmaps and every overlay into one figure. Trace 0 is
// the max heatmap (visible), trace 1 the min heatmap (hidden), the rest are
// overlays; the toggle buttons swap the heatmaps and keep overlays shown.
func Compose(grids *analysis.Grids, overlays []analysis.Overlay, opt Options) *Figure {
	opt = withDefaults(opt)
	fig := &Figure{Data: make([]any, 0, 2+len(overlays))}
	fig.Data = append(fig.Data,
		heatmap("Monthly max", &grids.Max, opt, true),
		heatmap("Monthly min", &grids.Min, opt, false),
	)
	for _, o := range overlays {
		fig.Data = append(fig.Data, overlayTrace(o))
	}

	years := grids.Max.Years
	yearVals := make([]float64, len(years))
	yearText := make([]string, len(years))
	for i, y := range years {
		yearVals[i] = float64(y)
		yearText[i] = strconv.Itoa(y)
	}
	monthVals := make([]float64, len(grids.Max.Months))
	monthText := make([]string, len(grids.Max.Months))
	for i, m := range grids.Max.Months {
		monthVals[i] = float64(m)
		monthText[i] = analysis.MonthName(m)
	}

	fig.Layout = Layout{
		Title: Title{Text: title(opt.Title, opt.Range, years)},
		XAxis: Axis{Title: Title{Text: "Year"}, TickMode: "array", TickVals: yearVals, TickText: yearText},
		YAxis: Axis{Title: Title{Text: "Month"}, TickMode: "array", TickVals: monthVals, TickText: monthText, Range: []float64{0.5, 12.5}},
		UpdateMenus: []UpdateMenu{{
			Type:       "buttons",
			Direction:  "right",
			X:          1.0,
			Y:          1.25,
			XAnchor:    "right",
			YAnchor:    "top",
			ShowActive: true,
			Buttons: []Button{
				toggleButton("Monthly max", true, len(overlays)),
				toggleButton("Monthly min", false, len(overlays)),
			},
		}},
		Margin: Margin{L: 80, R: 140, T: 100, B: 80},
		Width:  opt.Width,
		Height: opt.Height,
	}
	return fig
}

func withDefaults(opt Options) Options {
	def := DefaultOptions()
	if opt.Colorscale == "" {
		opt.Colorscale = def.Colorscale
	}
	if opt.Width <= 0 {
		opt.Width = def.Width
	}
	if opt.Height <= 0 {
		opt.Height = def.Height
	}
	return opt
}

func title(prefix string, r analysis.YearRange, years []int) string {
	first, last := r.Start, r.End
	if r == (analysis.YearRange{}) {
		if len(years) == 0 {
			return prefix
		}
		first, last = years[0], years[len(years)-1]
	}
	span := strconv.Itoa(first)
	if last != first {
		span = fmt.Sprintf("%d–%d", first, last)
	}
	if prefix == "" {
		return span
	}
	return prefix + " " + span
}

func heatmap(name string, g *analysis.Grid, opt Options, visible bool) HeatmapTrace {
	return HeatmapTrace{
		Type:       "heatmap",
		Name:       name,
		X:          g.Years,
		Y:          g.Months,
		Z:          g.Cells,
		ZMin:       g.ZMin,
		ZMax:       g.ZMax,
		Colorscale: opt.Colorscale,
		ColorBar:   ColorBar{Title: Title{Text: "°C"}},
		Opacity:    0.8,
		Visible:    visible,
		XGap:       2,
		YGap:       2,
	}
}

func overlayTrace(o analysis.Overlay) ScatterTrace {
	color, label := maxLineColor, "Max"
	if o.Series == analysis.SeriesMin {
		color, label = minLineColor, "Min"
	}
	tr := ScatterTrace{
		Type:          "scatter",
		Mode:          "lines",
		X:             make([]float64, len(o.Points)),
		Y:             make([]float64, len(o.Points)),
		Line:          Line{Color: color, Width: 2},
		CustomData:    make([][2]any, len(o.Points)),
		HoverTemplate: "Date %{customdata[0]}<br>" + label + " %{customdata[1]} °C<extra></extra>",
		Meta:          &TraceMeta{Year: o.Year, Month: o.Month, Series: string(o.Series)},
	}
	for i, p := range o.Points {
		tr.X[i] = p.X
		tr.Y[i] = p.Y
		tr.CustomData[i] = [2]any{analysis.FormatDate(p.Date), p.Value}
	}
	return tr
}

// toggleButton shows exactly one heatmap and all n overlays.
func toggleButton(label string, showMax bool, n int) Button {
	visible := make([]bool, 0, 2+n)
	visible = append(visible, showMax, !showMax)
	for i := 0; i < n; i++ {
		visible = append(visible, true)
	}
	return Button{Label: label, Method: "update", Args: []any{map[string]any{"visible": visible}}}
}
