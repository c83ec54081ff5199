package analytics

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"liquidity-dashboard/internal/market"
)

// RealizedVolatility returns one value per candle: the sample standard
// deviation of the trailing window of close-to-close log returns, multiplied
// by scale. Positions without a full window of returns behind them are 0,
// not a gap; the first defined value lands at candle index window, since the
// return at index 0 does not exist.
func RealizedVolatility(candles []market.Candle, window int, scale float64) []float64 {
	out := make([]float64, len(candles))
	if window < 2 || len(candles) <= window {
		return out
	}
	returns := make([]float64, len(candles)) // returns[0] stays unused
	for i := 1; i < len(candles); i++ {
		returns[i] = math.Log(candles[i].Close) - math.Log(candles[i-1].Close)
	}
	for i := window; i < len(candles); i++ {
		out[i] = sampleStd(returns[i-window+1:i+1]) * scale
	}
	return out
}

// sampleStd is the n-1 variant, matching how rolling standard deviation is
// conventionally reported for return series.
func sampleStd(xs []float64) float64 {
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / n
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	v := ss / (n - 1)
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// HorizonScale converts per-interval volatility to the target horizon:
// sqrt(horizon/interval). For 1m candles and a 1h horizon this reproduces
// the familiar sqrt(60).
func HorizonScale(interval string, horizon time.Duration) (float64, error) {
	d, err := IntervalDuration(interval)
	if err != nil {
		return 0, err
	}
	if horizon <= 0 {
		return 0, fmt.Errorf("volatility horizon must be positive, got %v", horizon)
	}
	return math.Sqrt(float64(horizon) / float64(d)), nil
}

// IntervalDuration parses exchange kline interval strings such as "1m",
// "15m", "4h" or "1d". The month interval "1M" has no fixed duration and is
// rejected.
func IntervalDuration(interval string) (time.Duration, error) {
	if len(interval) < 2 {
		return 0, fmt.Errorf("invalid candle interval %q", interval)
	}
	n, err := strconv.Atoi(interval[:len(interval)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid candle interval %q", interval)
	}
	var unit time.Duration
	switch interval[len(interval)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	case 'w':
		unit = 7 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("unsupported candle interval %q", interval)
	}
	return time.Duration(n) * unit, nil
}
