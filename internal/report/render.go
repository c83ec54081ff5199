package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"liquidity-dashboard/internal/analytics"
)

// Chart pairs a figure with the DOM id it renders into.
type Chart struct {
	ID     string
	Figure Figure
}

// Page is everything the dashboard template needs.
type Page struct {
	Symbol      string
	GeneratedAt time.Time
	Liquidity   analytics.LiquidityMetrics
	Charts      []Chart
	Theme       Theme
}

const plotlyCDN = "https://cdn.plot.ly/plotly-2.32.0.min.js"
const fontCDN = "https://fonts.cdnfonts.com/css/aptos"

type chartData struct {
	ID     string
	Data   template.JS
	Layout template.JS
	Frames template.JS
}

type pageData struct {
	Symbol      string
	GeneratedAt string
	Liquidity   analytics.LiquidityMetrics
	DepthBand   float64
	Theme       Theme
	PlotlyCDN   string
	FontCDN     string
	Charts      []chartData
}

// Render writes the assembled HTML document to w.
func Render(w io.Writer, p Page) error {
	charts := make([]chartData, 0, len(p.Charts))
	for _, c := range p.Charts {
		data, err := json.Marshal(c.Figure.Data)
		if err != nil {
			return fmt.Errorf("marshal %s data: %w", c.ID, err)
		}
		layout, err := json.Marshal(c.Figure.Layout)
		if err != nil {
			return fmt.Errorf("marshal %s layout: %w", c.ID, err)
		}
		frames := c.Figure.Frames
		if frames == nil {
			frames = []Frame{}
		}
		framesJSON, err := json.Marshal(frames)
		if err != nil {
			return fmt.Errorf("marshal %s frames: %w", c.ID, err)
		}
		charts = append(charts, chartData{
			ID:     c.ID,
			Data:   template.JS(data),
			Layout: template.JS(layout),
			Frames: template.JS(framesJSON),
		})
	}
	return pageTmpl.Execute(w, pageData{
		Symbol:      p.Symbol,
		GeneratedAt: p.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		Liquidity:   p.Liquidity,
		DepthBand:   analytics.DepthBandBps,
		Theme:       p.Theme,
		PlotlyCDN:   plotlyCDN,
		FontCDN:     fontCDN,
		Charts:      charts,
	})
}

// WriteFile renders the page into a temporary file next to path and renames
// it into place, so a failed run never leaves a half-written dashboard.
func WriteFile(path string, p Page) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = Render(tmp, p); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}

var pageTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="Content-Language" content="en">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>crypto liquidity dashboard</title>
<link href="{{.FontCDN}}" rel="stylesheet">
<script src="{{.PlotlyCDN}}"></script>
<style>
body{background:{{.Theme.Background}};color:{{.Theme.FontColor}};font-family:{{.Theme.FontFamily}};margin:40px}
.container{max-width:1100px;margin:auto}
.block{margin:24px 0}
</style>
</head>
<body>
<div class="container">
<h1>crypto visualiser: {{.Symbol}}</h1>
<p style="opacity:.8">generated at {{.GeneratedAt}}</p>
<h3>liquidity snapshot</h3>
<ul>
<li>mid price: <b>{{printf "%.2f" .Liquidity.Mid}}</b></li>
<li>spread: <b>{{printf "%.2f" .Liquidity.Spread}}</b> ({{printf "%.2f" .Liquidity.SpreadBps}} bps)</li>
<li>depth ±{{printf "%.0f" .DepthBand}}bp (notional): <b>{{printf "%.2f" .Liquidity.DepthNotional}}</b></li>
</ul>
{{range .Charts}}<div class="block"><div id="{{.ID}}"></div></div>
{{end}}<p style="font-size:12px;opacity:.7">data from binance public rest api</p>
</div>
{{range .Charts}}<script>
Plotly.newPlot({{.ID}}, {{.Data}}, {{.Layout}}, {responsive: true}).then(function(gd) {
  var frames = {{.Frames}};
  if (frames.length > 0) { Plotly.addFrames(gd, frames); }
});
</script>
{{end}}</body>
</html>
`))
