package binance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const klinesBody = `[
  [1714560000000,"100.0","105.0","99.0","101.0","12.5",1714560059999,"1262.5",42,"6.0","606.0","0"],
  [1714560060000,"101.0","102.0","98.0","99.0","7.25",1714560119999,"717.75",17,"3.0","297.0","0"]
]`

const depthBody = `{
  "lastUpdateId": 1027024,
  "bids": [["100.00","2.0"],["99.50","1.0"]],
  "asks": [["101.00","3.0"],["100.50","1.5"]]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, zap.NewNop(), nil)
}

func TestCandlesParsesCloseTime(t *testing.T) {
	var gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/klines" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(klinesBody))
	})
	candles, err := c.Candles(context.Background(), "BTCUSDT", "1m", 2)
	if err != nil {
		t.Fatalf("candles: %v", err)
	}
	if gotQuery != "interval=1m&limit=2&symbol=BTCUSDT" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	first := candles[0]
	// Timestamp must be the interval's close time, not its open time.
	want := time.UnixMilli(1714560059999).UTC()
	if !first.Time.Equal(want) {
		t.Fatalf("expected close time %v, got %v", want, first.Time)
	}
	if first.Time.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", first.Time.Location())
	}
	if first.Open != 100.0 || first.High != 105.0 || first.Low != 99.0 || first.Close != 101.0 || first.Volume != 12.5 {
		t.Fatalf("unexpected candle %+v", first)
	}
	if !candles[0].Time.Before(candles[1].Time) {
		t.Fatalf("expected ascending candle times")
	}
}

func TestCandlesMalformedRow(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1714560000000,"100.0","105.0"]]`))
	})
	_, err := c.Candles(context.Background(), "BTCUSDT", "1m", 1)
	var format *DataFormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
}

func TestCandlesNonNumericField(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1714560000000,"abc","105.0","99.0","101.0","12.5",1714560059999]]`))
	})
	_, err := c.Candles(context.Background(), "BTCUSDT", "1m", 1)
	var format *DataFormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
}

func TestCandlesEmptySet(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	_, err := c.Candles(context.Background(), "BTCUSDT", "1m", 1)
	var format *DataFormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
}

func TestOrderBookParsesAndSorts(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/depth" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(depthBody))
	})
	book, err := c.OrderBook(context.Background(), "BTCUSDT", 50)
	if err != nil {
		t.Fatalf("order book: %v", err)
	}
	if len(book.Bids) != 2 || len(book.Asks) != 2 {
		t.Fatalf("unexpected book shape %+v", book)
	}
	// Binance sends bids best-first (descending); the snapshot is ascending.
	if book.Bids[0].Price != 99.50 || book.Bids[1].Price != 100.00 {
		t.Fatalf("bids not ascending: %+v", book.Bids)
	}
	if book.Asks[0].Price != 100.50 || book.Asks[1].Price != 101.00 {
		t.Fatalf("asks not ascending: %+v", book.Asks)
	}
	if got := book.Bids[1].Notional; got != 200.0 {
		t.Fatalf("expected bid notional 200.0, got %f", got)
	}
}

func TestOrderBookMissingBids(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lastUpdateId": 1, "asks": [["101.0","1.0"]]}`))
	})
	_, err := c.OrderBook(context.Background(), "BTCUSDT", 50)
	var format *DataFormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
}

func TestOrderBookEmptySidePassesThrough(t *testing.T) {
	// Present-but-empty sides are valid transport output; the metrics layer
	// decides what an empty side means.
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lastUpdateId": 1, "bids": [], "asks": [["101.0","1.0"]]}`))
	})
	book, err := c.OrderBook(context.Background(), "BTCUSDT", 50)
	if err != nil {
		t.Fatalf("expected empty side to parse, got %v", err)
	}
	if len(book.Bids) != 0 || len(book.Asks) != 1 {
		t.Fatalf("unexpected book %+v", book)
	}
}

func TestOrderBookNonNumericLevel(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lastUpdateId": 1, "bids": [["abc","1.0"]], "asks": [["101.0","1.0"]]}`))
	})
	_, err := c.OrderBook(context.Background(), "BTCUSDT", 50)
	var format *DataFormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
}

func TestNonSuccessStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-1121,"msg":"Invalid symbol."}`, http.StatusBadRequest)
	})
	_, err := c.Candles(context.Background(), "NOPE", "1m", 1)
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transport.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", transport.Status)
	}
}

func TestRequestTimeout(t *testing.T) {
	block := make(chan struct{})
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	t.Cleanup(func() { close(block) })
	c.http.Timeout = 50 * time.Millisecond
	_, err := c.Candles(context.Background(), "BTCUSDT", "1m", 1)
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transport.Status != 0 {
		t.Fatalf("expected no status for timeout, got %d", transport.Status)
	}
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(klinesBody))
	})
	_, err := c.Candles(ctx, "BTCUSDT", "1m", 1)
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
