package analytics

import (
	"fmt"

	"liquidity-dashboard/internal/market"
)

// DepthBandBps is the half-width of the liquidity band around mid, in basis
// points.
const DepthBandBps = 10.0

// LiquidityMetrics summarizes one order-book snapshot.
type LiquidityMetrics struct {
	BestBid       float64
	BestAsk       float64
	Mid           float64
	Spread        float64
	SpreadBps     float64
	DepthNotional float64 // resting notional within ±DepthBandBps of mid
}

// EmptySideError reports an order book missing all levels on one side.
// The pipeline treats it as fatal: a one-sided book means the venue is in an
// abnormal state and a dashboard built from it would be misleading.
type EmptySideError struct {
	Side market.Side
}

func (e *EmptySideError) Error() string {
	return fmt.Sprintf("order book has no %s levels", e.Side)
}

// Liquidity derives the snapshot metrics from an order book.
func Liquidity(book market.OrderBook) (LiquidityMetrics, error) {
	if len(book.Bids) == 0 {
		return LiquidityMetrics{}, &EmptySideError{Side: market.Bid}
	}
	if len(book.Asks) == 0 {
		return LiquidityMetrics{}, &EmptySideError{Side: market.Ask}
	}
	bestBid := book.Bids[0].Price
	for _, l := range book.Bids[1:] {
		if l.Price > bestBid {
			bestBid = l.Price
		}
	}
	bestAsk := book.Asks[0].Price
	for _, l := range book.Asks[1:] {
		if l.Price < bestAsk {
			bestAsk = l.Price
		}
	}
	mid := (bestBid + bestAsk) / 2
	spread := bestAsk - bestBid
	return LiquidityMetrics{
		BestBid:       bestBid,
		BestAsk:       bestAsk,
		Mid:           mid,
		Spread:        spread,
		SpreadBps:     spread / mid * 1e4,
		DepthNotional: BandNotional(book, mid, DepthBandBps),
	}, nil
}

// BandNotional sums resting notional within ±halfWidthBps of mid. Bounds are
// inclusive on both sides.
func BandNotional(book market.OrderBook, mid, halfWidthBps float64) float64 {
	frac := halfWidthBps / 1e4
	lo := mid * (1 - frac)
	hi := mid * (1 + frac)
	var total float64
	for _, l := range book.Bids {
		if l.Price >= lo {
			total += l.Notional
		}
	}
	for _, l := range book.Asks {
		if l.Price <= hi {
			total += l.Notional
		}
	}
	return total
}
