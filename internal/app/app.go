package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"liquidity-dashboard/internal/analytics"
	"liquidity-dashboard/internal/binance"
	"liquidity-dashboard/internal/config"
	"liquidity-dashboard/internal/metrics"
	"liquidity-dashboard/internal/report"
)

// App wires the one-shot pipeline: fetch market data, derive the metrics,
// write the dashboard. It holds no state between runs.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	client  *binance.Client
	metrics *metrics.Prometheus
	theme   report.Theme
}

func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if _, err := analytics.IntervalDuration(cfg.Market.Interval); err != nil {
		return nil, err
	}
	prom := metrics.NewPrometheus()
	client := binance.New(cfg.REST.BaseURL, cfg.REST.Timeout, log, prom.Metrics)
	return &App{
		cfg:     cfg,
		log:     log,
		client:  client,
		metrics: prom,
		theme:   themeFromConfig(cfg.Report.Theme),
	}, nil
}

// Run executes the pipeline once. The two fetches are sequential; any error
// anywhere aborts the run and nothing is written.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()
	m := a.cfg.Market

	candles, err := a.client.Candles(ctx, m.Symbol, m.Interval, m.CandleLimit)
	if err != nil {
		return fmt.Errorf("fetch candles: %w", err)
	}
	book, err := a.client.OrderBook(ctx, m.Symbol, m.BookDepth)
	if err != nil {
		return fmt.Errorf("fetch order book: %w", err)
	}

	liq, err := analytics.Liquidity(book)
	if err != nil {
		return err
	}
	scale, err := analytics.HorizonScale(m.Interval, a.cfg.Volatility.Horizon)
	if err != nil {
		return err
	}
	vol := analytics.RealizedVolatility(candles, a.cfg.Volatility.Window, scale)

	page := report.Page{
		Symbol:      m.Symbol,
		GeneratedAt: time.Now().UTC(),
		Liquidity:   liq,
		Theme:       a.theme,
		Charts: []report.Chart{
			{ID: "fig_price", Figure: report.PriceFigure(m.Symbol, m.Interval, candles, a.theme)},
			{ID: "fig_volume", Figure: report.VolumeFigure(candles, a.theme)},
			{ID: "fig_volatility", Figure: report.VolatilityFigure(candles, vol, a.cfg.Volatility.Horizon, a.theme)},
			{ID: "fig_depth", Figure: report.DepthFigure(book, a.theme)},
		},
	}

	renderStart := time.Now()
	if err := report.WriteFile(a.cfg.Report.OutputPath, page); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	a.metrics.Metrics.RenderSeconds.Observe(time.Since(renderStart).Seconds())
	a.metrics.Metrics.ReportsWritten.Inc()

	a.log.Info("dashboard generated",
		zap.String("path", a.cfg.Report.OutputPath),
		zap.String("symbol", m.Symbol),
		zap.Float64("mid_price", liq.Mid),
		zap.Float64("spread_bps", liq.SpreadBps),
		zap.Float64("depth_notional", liq.DepthNotional),
		zap.Duration("elapsed", time.Since(start)))
	a.logRunSummary()
	return nil
}

func (a *App) logRunSummary() {
	summary := a.metrics.Summary()
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]zap.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, zap.Float64(name, summary[name]))
	}
	a.log.Debug("run metrics", fields...)
}

func themeFromConfig(cfg config.ThemeConfig) report.Theme {
	return report.Theme{
		Background: cfg.Background,
		Surface:    cfg.Surface,
		FontFamily: cfg.FontFamily,
		FontSize:   cfg.FontSize,
		FontColor:  cfg.FontColor,
		GridColor:  cfg.GridColor,
		BidColor:   cfg.BidColor,
		AskColor:   cfg.AskColor,
	}
}
