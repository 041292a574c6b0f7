package chart

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/eshaanmandal/tempgrid/internal/utils"
)

//go:embed templates/figure.html
var figureTemplate string

var pageTmpl = template.Must(template.New("figure").Parse(figureTemplate))

// DefaultPlotlyURL is the CDN build used when no local plotly.js is given.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// HTMLOptions controls the standalone document around a figure.
type HTMLOptions struct {
	// PlotlyJSFile, if set, is inlined so the page works offline.
	PlotlyJSFile string
	// PlotlyJSURL is used when PlotlyJSFile is empty.
	PlotlyJSURL string
	// Clock stamps the footer; nil means the real clock.
	Clock clockwork.Clock
	// DivID overrides the generated plot element id.
	DivID string
}

type pageData struct {
	Title        string
	DivID        string
	Width        int
	Height       int
	Figure       template.JS
	PlotlyInline template.JS
	PlotlySrc    string
	GeneratedAt  string
}

// WriteHTML renders fig as a self-contained HTML page.
func WriteHTML(w io.Writer, fig *Figure, opt HTMLOptions) error {
	if fig == nil {
		return fmt.Errorf("render html: nil figure")
	}
	figJSON, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("marshal figure: %w", err)
	}
	clock := opt.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	data := pageData{
		Title:       fig.Layout.Title.Text,
		DivID:       opt.DivID,
		Width:       fig.Layout.Width,
		Height:      fig.Layout.Height,
		Figure:      template.JS(figJSON),
		GeneratedAt: clock.Now().UTC().Format(time.RFC3339),
	}
	if data.DivID == "" {
		data.DivID = uuid.NewString()
	}
	if opt.PlotlyJSFile != "" {
		js, err := os.ReadFile(opt.PlotlyJSFile)
		if err != nil {
			return fmt.Errorf("read plotly.js: %w", err)
		}
		data.PlotlyInline = template.JS(js)
	} else {
		data.PlotlySrc = opt.PlotlyJSURL
		if data.PlotlySrc == "" {
			data.PlotlySrc = DefaultPlotlyURL
		}
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}

// Export renders fig and writes it to path atomically; on error nothing is
// left at path.
func Export(path string, fig *Figure, opt HTMLOptions) error {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, fig, opt); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
