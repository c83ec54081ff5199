package market

import "testing"

func TestNewLevelNotional(t *testing.T) {
	l := NewLevel(Bid, 100.5, 2.0)
	if l.Notional != 201.0 {
		t.Fatalf("expected notional 201.0, got %f", l.Notional)
	}
	if l.Side != Bid {
		t.Fatalf("expected bid side, got %q", l.Side)
	}
}

func TestDepthCurveSortsAndAccumulates(t *testing.T) {
	levels := []Level{
		NewLevel(Bid, 100.0, 2.0),
		NewLevel(Bid, 99.5, 1.0),
		NewLevel(Bid, 99.8, 0.5),
	}
	curve := DepthCurve(levels)
	if len(curve) != 3 {
		t.Fatalf("expected 3 points, got %d", len(curve))
	}
	if curve[0].Price != 99.5 || curve[2].Price != 100.0 {
		t.Fatalf("expected ascending prices, got %v", curve)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].CumQty < curve[i-1].CumQty {
			t.Fatalf("cumulative qty decreased at %d: %v", i, curve)
		}
	}
	if got := curve[2].CumQty; got != 3.5 {
		t.Fatalf("expected total qty 3.5, got %f", got)
	}
}

func TestDepthCurveDoesNotMutateInput(t *testing.T) {
	levels := []Level{
		NewLevel(Ask, 101.0, 3.0),
		NewLevel(Ask, 100.5, 1.5),
	}
	DepthCurve(levels)
	if levels[0].Price != 101.0 {
		t.Fatalf("input reordered: %v", levels)
	}
}

func TestCloses(t *testing.T) {
	candles := []Candle{{Close: 100}, {Close: 101}, {Close: 99}}
	closes := Closes(candles)
	if len(closes) != 3 || closes[1] != 101 {
		t.Fatalf("unexpected closes %v", closes)
	}
}
