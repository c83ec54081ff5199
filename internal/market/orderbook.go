package market

import "sort"

type Side string

const (
	Bid Side = "bid"
	Ask Side = "ask"
)

// Level is one resting order-book entry. Notional is Price*Qty, the quote
// value parked at that price.
type Level struct {
	Side     Side
	Price    float64
	Qty      float64
	Notional float64
}

func NewLevel(side Side, price, qty float64) Level {
	return Level{Side: side, Price: price, Qty: qty, Notional: price * qty}
}

// OrderBook is a single point-in-time snapshot. Both sides are kept sorted
// ascending by price; it never receives incremental updates.
type OrderBook struct {
	Bids []Level
	Asks []Level
}

// SortByPrice orders levels ascending by price in place.
func SortByPrice(levels []Level) {
	sort.Slice(levels, func(i, j int) bool { return levels[i].Price < levels[j].Price })
}

// CumLevel is one point of a depth curve.
type CumLevel struct {
	Price  float64
	CumQty float64
}

// DepthCurve walks levels in ascending price order and accumulates quantity,
// producing the points of a depth-curve chart. The running sum is
// non-decreasing by construction.
func DepthCurve(levels []Level) []CumLevel {
	sorted := make([]Level, len(levels))
	copy(sorted, levels)
	SortByPrice(sorted)
	out := make([]CumLevel, len(sorted))
	var cum float64
	for i, l := range sorted {
		cum += l.Qty
		out[i] = CumLevel{Price: l.Price, CumQty: cum}
	}
	return out
}
