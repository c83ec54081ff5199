package market

import "time"

// Candle is one OHLCV interval. Time is the interval's close time in UTC:
// the exchange labels klines by open time, but the dashboard axis marks when
// each interval finished.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts close prices in candle order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
