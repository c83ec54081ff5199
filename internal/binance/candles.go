package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"liquidity-dashboard/internal/market"
)

const klinesPath = "/api/v3/klines"

// Candles fetches the most recent limit klines for symbol and converts them
// to close-time-stamped candles, ascending by time as the exchange returns
// them.
func (c *Client) Candles(ctx context.Context, symbol, interval string, limit int) ([]market.Candle, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	var rows [][]any
	if err := c.get(ctx, klinesPath, params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &DataFormatError{Endpoint: klinesPath, Reason: "empty kline set"}
	}
	candles := make([]market.Candle, 0, len(rows))
	for i, row := range rows {
		candle, err := parseKline(row)
		if err != nil {
			return nil, &DataFormatError{Endpoint: klinesPath, Reason: fmt.Sprintf("row %d: %v", i, err)}
		}
		candles = append(candles, candle)
	}
	c.log.Info("candles fetched",
		zap.String("symbol", symbol),
		zap.String("interval", interval),
		zap.Int("count", len(candles)))
	return candles, nil
}

// Kline rows are fixed-position arrays:
// [openTime, open, high, low, close, volume, closeTime, ...].
// Prices and volume arrive as decimal strings, the times as epoch ms.
func parseKline(row []any) (market.Candle, error) {
	if len(row) < 7 {
		return market.Candle{}, fmt.Errorf("expected at least 7 fields, got %d", len(row))
	}
	fields := [...]struct {
		idx  int
		name string
	}{
		{1, "open"},
		{2, "high"},
		{3, "low"},
		{4, "close"},
		{5, "volume"},
		{6, "close time"},
	}
	var vals [6]float64
	for i, f := range fields {
		v, ok := floatFromAny(row[f.idx])
		if !ok {
			return market.Candle{}, fmt.Errorf("non-numeric %s field %v", f.name, row[f.idx])
		}
		vals[i] = v
	}
	return market.Candle{
		// The axis marks when the interval finished, not when it started.
		Time:   time.UnixMilli(int64(vals[5])).UTC(),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
