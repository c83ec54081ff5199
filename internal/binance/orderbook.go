package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"liquidity-dashboard/internal/market"
)

const depthPath = "/api/v3/depth"

type depthResponse struct {
	LastUpdateID int64      `json:"lastUpdateId"`
	Bids         [][]string `json:"bids"`
	Asks         [][]string `json:"asks"`
}

// OrderBook fetches a snapshot with up to depth levels per side. Both sides
// come back sorted ascending by price with notional precomputed. A response
// missing either key is rejected outright; a present-but-empty side is left
// for the metrics layer to judge.
func (c *Client) OrderBook(ctx context.Context, symbol string, depth int) (market.OrderBook, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("limit", strconv.Itoa(depth))

	var raw depthResponse
	if err := c.get(ctx, depthPath, params, &raw); err != nil {
		return market.OrderBook{}, err
	}
	if raw.Bids == nil {
		return market.OrderBook{}, &DataFormatError{Endpoint: depthPath, Reason: "missing bids"}
	}
	if raw.Asks == nil {
		return market.OrderBook{}, &DataFormatError{Endpoint: depthPath, Reason: "missing asks"}
	}
	bids, err := parseLevels(market.Bid, raw.Bids)
	if err != nil {
		return market.OrderBook{}, &DataFormatError{Endpoint: depthPath, Reason: err.Error()}
	}
	asks, err := parseLevels(market.Ask, raw.Asks)
	if err != nil {
		return market.OrderBook{}, &DataFormatError{Endpoint: depthPath, Reason: err.Error()}
	}
	c.log.Info("order book fetched",
		zap.String("symbol", symbol),
		zap.Int("bids", len(bids)),
		zap.Int("asks", len(asks)))
	return market.OrderBook{Bids: bids, Asks: asks}, nil
}

// Depth levels arrive as [price, qty] string pairs, best level first, which
// means bids come back descending.
func parseLevels(side market.Side, raw [][]string) ([]market.Level, error) {
	levels := make([]market.Level, 0, len(raw))
	for i, pair := range raw {
		if len(pair) < 2 {
			return nil, fmt.Errorf("%s level %d: expected [price, qty] pair, got %d fields", side, i, len(pair))
		}
		price, err := strconv.ParseFloat(pair[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s level %d: non-numeric price %q", side, i, pair[0])
		}
		qty, err := strconv.ParseFloat(pair[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s level %d: non-numeric qty %q", side, i, pair[1])
		}
		levels = append(levels, market.NewLevel(side, price, qty))
	}
	market.SortByPrice(levels)
	return levels, nil
}
