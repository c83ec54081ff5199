package report

import (
	"fmt"
	"iter"
	"strconv"
	"time"

	"liquidity-dashboard/internal/market"
)

const (
	// Animation walks prefixes of the candle series: the first frame shows
	// frameStart candles, each following frame frameStep more.
	frameStart      = 20
	frameStep       = 5
	frameDurationMS = 80
)

// PriceFigure builds the animated candlestick chart with play/pause
// controls.
func PriceFigure(symbol, interval string, candles []market.Candle, th Theme) Figure {
	layout := th.baseLayout(fmt.Sprintf("%s: animated price (binance, %s)", symbol, interval), 450)
	layout.Margin.T = 60
	layout.XAxis.Title = &Title{Text: "time (UTC)"}
	layout.XAxis.RangeSlider = &RangeSlider{Visible: false}
	layout.YAxis.Title = &Title{Text: "price"}
	layout.UpdateMenus = []UpdateMenu{{
		Type:       "buttons",
		X:          0.05,
		Y:          1.15,
		ShowActive: false,
		Buttons: []Button{
			{
				Label:  "▶ play",
				Method: "animate",
				Args: []any{nil, map[string]any{
					"frame":       map[string]any{"duration": frameDurationMS, "redraw": true},
					"fromcurrent": true,
				}},
			},
			{
				Label:  "⏸ pause",
				Method: "animate",
				Args: []any{[]any{nil}, map[string]any{
					"frame": map[string]any{"duration": 0},
					"mode":  "immediate",
				}},
			},
		},
	}}
	fig := Figure{
		Data:   []Trace{candleTrace(candles)},
		Layout: layout,
	}
	for _, frame := range CandleFrames(candles, frameStart, frameStep) {
		fig.Frames = append(fig.Frames, frame)
	}
	return fig
}

// CandleFrames yields (prefix length, frame) pairs for prefixes of start,
// start+step, ... candles, up to but excluding the full series. The sequence
// is finite and restartable: ranging over it again replays the same frames.
func CandleFrames(candles []market.Candle, start, step int) iter.Seq2[int, Frame] {
	return func(yield func(int, Frame) bool) {
		if start <= 0 || step <= 0 {
			return
		}
		for k := start; k < len(candles); k += step {
			frame := Frame{
				Name: strconv.Itoa(k),
				Data: []Trace{candleTrace(candles[:k])},
			}
			if !yield(k, frame) {
				return
			}
		}
	}
}

func candleTrace(candles []market.Candle) Trace {
	open := make([]float64, len(candles))
	high := make([]float64, len(candles))
	low := make([]float64, len(candles))
	closes := make([]float64, len(candles))
	for i, c := range candles {
		open[i] = c.Open
		high[i] = c.High
		low[i] = c.Low
		closes[i] = c.Close
	}
	return Trace{
		Type:  "candlestick",
		X:     timestamps(candles),
		Open:  open,
		High:  high,
		Low:   low,
		Close: closes,
	}
}

// VolumeFigure builds the traded-volume bar chart keyed by close time.
func VolumeFigure(candles []market.Candle, th Theme) Figure {
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		volumes[i] = c.Volume
	}
	return Figure{
		Data: []Trace{{
			Type: "bar",
			X:    timestamps(candles),
			Y:    volumes,
		}},
		Layout: th.baseLayout("volume", 260),
	}
}

// VolatilityFigure builds the realized-volatility line chart. series must be
// aligned with candles, one value per candle.
func VolatilityFigure(candles []market.Candle, series []float64, horizon time.Duration, th Theme) Figure {
	layout := th.baseLayout(fmt.Sprintf("realised volatility (≈ %s)", horizonLabel(horizon)), 260)
	layout.YAxis.Title = &Title{Text: "σ"}
	return Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "lines",
			X:    timestamps(candles),
			Y:    series,
		}},
		Layout: layout,
	}
}

// DepthFigure builds the order-book depth scatter: cumulative quantity
// against ascending price, one trace per side.
func DepthFigure(book market.OrderBook, th Theme) Figure {
	levels := len(book.Bids)
	if len(book.Asks) < levels {
		levels = len(book.Asks)
	}
	layout := th.baseLayout(fmt.Sprintf("order book depth: top %d levels", levels), 360)
	layout.XAxis.Title = &Title{Text: "price"}
	layout.YAxis.Title = &Title{Text: "cumulative qty"}
	return Figure{
		Data: []Trace{
			depthTrace("bid", book.Bids, th.BidColor),
			depthTrace("ask", book.Asks, th.AskColor),
		},
		Layout: layout,
	}
}

func depthTrace(name string, levels []market.Level, color string) Trace {
	curve := market.DepthCurve(levels)
	prices := make([]float64, len(curve))
	qtys := make([]float64, len(curve))
	for i, p := range curve {
		prices[i] = p.Price
		qtys[i] = p.CumQty
	}
	return Trace{
		Type:   "scatter",
		Mode:   "markers",
		Name:   name,
		X:      prices,
		Y:      qtys,
		Marker: &Marker{Color: color, Size: 6},
	}
}

func timestamps(candles []market.Candle) []string {
	out := make([]string, len(candles))
	for i, c := range candles {
		out[i] = c.Time.Format(time.RFC3339)
	}
	return out
}

func horizonLabel(horizon time.Duration) string {
	switch {
	case horizon%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", horizon/(24*time.Hour))
	case horizon%time.Hour == 0:
		if horizon == time.Hour {
			return "hourly"
		}
		return fmt.Sprintf("%dh", horizon/time.Hour)
	default:
		return horizon.String()
	}
}
