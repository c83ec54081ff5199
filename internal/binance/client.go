package binance

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"liquidity-dashboard/internal/metrics"
)

// Client issues GET requests against the Binance public REST API. Every
// request shares one fixed timeout; there is no retry and no partial result.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	metrics *metrics.Metrics
}

func New(baseURL string, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *Client {
	if m == nil {
		m = metrics.NewNoop()
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
		// The public endpoints allow 1200 request weight per minute; 10 rps
		// with a small burst stays well inside that even when the dashboard
		// is regenerated in a loop.
		limiter: rate.NewLimiter(10, 5),
		log:     log,
		metrics: m,
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	full := c.baseURL + path
	if len(params) > 0 {
		full += "?" + params.Encode()
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{URL: full, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return &TransportError{URL: full, Err: err}
	}
	start := time.Now()
	c.metrics.RequestsTotal.Inc()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RequestFailures.Inc()
		return &TransportError{URL: full, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.RequestSeconds.Observe(time.Since(start).Seconds())
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RequestFailures.Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &TransportError{URL: full, Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DataFormatError{Endpoint: path, Reason: "decode: " + err.Error()}
	}
	c.log.Debug("request completed",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
