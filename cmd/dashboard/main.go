package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"liquidity-dashboard/internal/app"
	"liquidity-dashboard/internal/config"
	"liquidity-dashboard/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	outPath := flag.String("out", "", "override report output path")
	flag.Parse()

	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *outPath != "" {
		cfg.Report.OutputPath = *outPath
	}
	log := logging.New(cfg.Log)
	log.Info("config loaded",
		zap.String("symbol", cfg.Market.Symbol),
		zap.String("interval", cfg.Market.Interval),
		zap.String("output", cfg.Report.OutputPath))

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize app", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}
