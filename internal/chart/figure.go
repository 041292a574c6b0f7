package chart

// Figure is a Plotly figure: traces plus layout. It marshals to the JSON
// shape Plotly.newPlot expects.
type Figure struct {
	Data   []any  `json:"data"`
	Layout Layout `json:"layout"`
}

// HeatmapTrace is a Plotly heatmap. Nil entries in Z render as holes.
type HeatmapTrace struct {
	Type       string       `json:"type"`
	Name       string       `json:"name"`
	X          []int        `json:"x"`
	Y          []int        `json:"y"`
	Z          [][]*float64 `json:"z"`
	ZMin       float64      `json:"zmin"`
	ZMax       float64      `json:"zmax"`
	Colorscale string       `json:"colorscale"`
	ColorBar   ColorBar     `json:"colorbar"`
	Opacity    float64      `json:"opacity"`
	Visible    bool         `json:"visible"`
	XGap       int          `json:"xgap"`
	YGap       int          `json:"ygap"`
}

type ColorBar struct {
	Title Title `json:"title"`
}

// ScatterTrace is a Plotly scatter trace drawn as a line.
type ScatterTrace struct {
	Type          string     `json:"type"`
	Mode          string     `json:"mode"`
	Name          string     `json:"name,omitempty"`
	X             []float64  `json:"x"`
	Y             []float64  `json:"y"`
	Line          Line       `json:"line"`
	CustomData    [][2]any   `json:"customdata"`
	HoverTemplate string     `json:"hovertemplate"`
	ShowLegend    bool       `json:"showlegend"`
	Meta          *TraceMeta `json:"meta,omitempty"`
}

// TraceMeta tags an overlay trace with its cell.
type TraceMeta struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Series string `json:"series"`
}

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type Title struct {
	Text string `json:"text"`
}

type Layout struct {
	Title       Title        `json:"title"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	UpdateMenus []UpdateMenu `json:"updatemenus"`
	Margin      Margin       `json:"margin"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
}

type Axis struct {
	Title    Title     `json:"title"`
	TickMode string    `json:"tickmode"`
	TickVals []float64 `json:"tickvals"`
	TickText []string  `json:"ticktext"`
	Range    []float64 `json:"range,omitempty"`
}

type UpdateMenu struct {
	Type       string   `json:"type"`
	Direction  string   `json:"direction"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	XAnchor    string   `json:"xanchor"`
	YAnchor    string   `json:"yanchor"`
	ShowActive bool     `json:"showactive"`
	Buttons    []Button `json:"buttons"`
}

// Button restyles traces; Args[0] is the {"visible": [...]} update.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}
