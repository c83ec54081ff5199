package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Log        LoggingConfig    `yaml:"log"`
	REST       RESTConfig       `yaml:"rest"`
	Market     MarketConfig     `yaml:"market"`
	Volatility VolatilityConfig `yaml:"volatility"`
	Report     ReportConfig     `yaml:"report"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type RESTConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type MarketConfig struct {
	Symbol      string `yaml:"symbol"`
	Interval    string `yaml:"interval"`
	CandleLimit int    `yaml:"candle_limit"`
	BookDepth   int    `yaml:"book_depth"`
}

type VolatilityConfig struct {
	Window  int           `yaml:"window"`
	Horizon time.Duration `yaml:"horizon"`
}

type ReportConfig struct {
	OutputPath string      `yaml:"output_path"`
	Theme      ThemeConfig `yaml:"theme"`
}

type ThemeConfig struct {
	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	FontFamily string `yaml:"font_family"`
	FontSize   int    `yaml:"font_size"`
	FontColor  string `yaml:"font_color"`
	GridColor  string `yaml:"grid_color"`
	BidColor   string `yaml:"bid_color"`
	AskColor   string `yaml:"ask_color"`
}

// Load reads the config file at path. An empty path yields the built-in
// defaults, so the binary runs without any setup.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	applyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, validate(&cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.REST.BaseURL == "" {
		cfg.REST.BaseURL = "https://api.binance.com"
	}
	if cfg.REST.Timeout == 0 {
		cfg.REST.Timeout = 15 * time.Second
	}
	if cfg.Market.Symbol == "" {
		cfg.Market.Symbol = "BTCUSDT"
	}
	if cfg.Market.Interval == "" {
		cfg.Market.Interval = "1m"
	}
	if cfg.Market.CandleLimit == 0 {
		cfg.Market.CandleLimit = 300
	}
	if cfg.Market.BookDepth == 0 {
		cfg.Market.BookDepth = 50
	}
	if cfg.Volatility.Window == 0 {
		cfg.Volatility.Window = 30
	}
	if cfg.Volatility.Horizon == 0 {
		cfg.Volatility.Horizon = time.Hour
	}
	if cfg.Report.OutputPath == "" {
		cfg.Report.OutputPath = "dashboard.html"
	}
	th := &cfg.Report.Theme
	if th.Background == "" {
		th.Background = "#0f1116"
	}
	if th.Surface == "" {
		th.Surface = "#161a22"
	}
	if th.FontFamily == "" {
		th.FontFamily = "Aptos, sans-serif"
	}
	if th.FontSize == 0 {
		th.FontSize = 13
	}
	if th.FontColor == "" {
		th.FontColor = "#ffffff"
	}
	if th.GridColor == "" {
		th.GridColor = "#2a2e39"
	}
	if th.BidColor == "" {
		th.BidColor = "#26a69a"
	}
	if th.AskColor == "" {
		th.AskColor = "#ef5350"
	}
}

// applyEnv lets scripted runs point the same config at another pair or
// output file without editing YAML.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("DASHBOARD_SYMBOL")); v != "" {
		cfg.Market.Symbol = v
	}
	if v := strings.TrimSpace(os.Getenv("DASHBOARD_OUTPUT")); v != "" {
		cfg.Report.OutputPath = v
	}
}

func validate(cfg *Config) error {
	if cfg.Market.Symbol == "" {
		return errors.New("market.symbol is required")
	}
	if cfg.Market.CandleLimit < 2 {
		return fmt.Errorf("market.candle_limit must be at least 2, got %d", cfg.Market.CandleLimit)
	}
	if cfg.Market.BookDepth <= 0 {
		return fmt.Errorf("market.book_depth must be positive, got %d", cfg.Market.BookDepth)
	}
	if cfg.Volatility.Window < 2 {
		return fmt.Errorf("volatility.window must be at least 2, got %d", cfg.Volatility.Window)
	}
	if cfg.Volatility.Horizon <= 0 {
		return fmt.Errorf("volatility.horizon must be positive, got %v", cfg.Volatility.Horizon)
	}
	if cfg.REST.Timeout <= 0 {
		return fmt.Errorf("rest.timeout must be positive, got %v", cfg.REST.Timeout)
	}
	return nil
}
