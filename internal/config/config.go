package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"TradeBuddy/internal/engine"
	"TradeBuddy/internal/model"
	"TradeBuddy/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider"` // yahoo, yahoo-chart, vstrader or mock
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"data_source"`
	Cache struct {
		TTL        time.Duration `yaml:"ttl"`
		MaxEntries int           `yaml:"max_entries"`
	} `yaml:"cache"`
	Analysis struct {
		HistoryWindow string         `yaml:"history_window"`
		DefaultModel  string         `yaml:"default_model"`
		MinPrice      *float64       `yaml:"min_price"`     // 0 disables the low-price block
		MaxStaleness  *time.Duration `yaml:"max_staleness"` // 0s disables the staleness guard
		MAWindow      int            `yaml:"ma_window"`
		UpRate        *float64       `yaml:"up_rate"`
		DownRate      *float64       `yaml:"down_rate"`
		LinearFraming string         `yaml:"linear_framing"`
		MAFraming     string         `yaml:"ma_framing"`
	} `yaml:"analysis"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Watchlist []WatchItem `yaml:"watchlist"`
	Server    struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// WatchItem is a recurring analysis run by the scheduler.
type WatchItem struct {
	Symbol      string  `yaml:"symbol"`
	Investment  float64 `yaml:"investment"`
	HoldingDays int     `yaml:"holding_days"`
	Model       string  `yaml:"model"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// A missing .env is normal; real environment variables take precedence.
	_ = godotenv.Load()

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("VSTRADER_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("VSTRADER_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_WATCH"); v != "" {
		cfg.Schedule.WatchCron = v
	}
	if v := os.Getenv("HISTORY_WINDOW"); v != "" {
		cfg.Analysis.HistoryWindow = v
	}
	if v := os.Getenv("TREND_MODEL"); v != "" {
		cfg.Analysis.DefaultModel = v
	}
	if v := os.Getenv("MIN_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.MinPrice = &f
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
		if cfg.DataSource.BaseURL != "" {
			cfg.DataSource.Provider = "vstrader"
		}
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 256
	}
	if cfg.Analysis.HistoryWindow == "" {
		cfg.Analysis.HistoryWindow = string(model.Window1mo)
	}
	if cfg.Analysis.DefaultModel == "" {
		cfg.Analysis.DefaultModel = string(model.ModelLinearTrend)
	}
	if cfg.Analysis.MinPrice == nil {
		v := strategy.DefaultMinimumPrice
		cfg.Analysis.MinPrice = &v
	}
	if cfg.Analysis.MaxStaleness == nil {
		v := engine.DefaultMaxStaleness
		cfg.Analysis.MaxStaleness = &v
	}
	if cfg.Analysis.MAWindow == 0 {
		cfg.Analysis.MAWindow = strategy.DefaultMAWindow
	}
	if cfg.Analysis.UpRate == nil {
		v := strategy.DefaultUpRate
		cfg.Analysis.UpRate = &v
	}
	if cfg.Analysis.DownRate == nil {
		v := strategy.DefaultDownRate
		cfg.Analysis.DownRate = &v
	}
	if cfg.Analysis.LinearFraming == "" {
		cfg.Analysis.LinearFraming = string(model.FramingReference)
	}
	if cfg.Analysis.MAFraming == "" {
		cfg.Analysis.MAFraming = string(model.FramingReference)
	}
	if cfg.Schedule.WatchCron == "" {
		cfg.Schedule.WatchCron = "0 30 9 * * 1-5"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks field values. Shell-specific requirements such as the
// Telegram token are checked by ValidateTelegram.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "yahoo-chart", "mock":
	case "vstrader":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for vstrader")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if !model.Window(c.Analysis.HistoryWindow).Valid() {
		return fmt.Errorf("analysis.history_window must be one of 1mo, 2mo, 3mo, got %q", c.Analysis.HistoryWindow)
	}
	if _, ok := model.ParseTrendModel(c.Analysis.DefaultModel); !ok {
		return fmt.Errorf("analysis.default_model %q is not supported", c.Analysis.DefaultModel)
	}
	if *c.Analysis.MinPrice < 0 {
		return fmt.Errorf("analysis.min_price must not be negative")
	}
	if *c.Analysis.MaxStaleness < 0 {
		return fmt.Errorf("analysis.max_staleness must not be negative")
	}
	if c.Analysis.MAWindow < strategy.DefaultMAWindow {
		return fmt.Errorf("analysis.ma_window must be at least %d", strategy.DefaultMAWindow)
	}
	if *c.Analysis.UpRate <= -1 || *c.Analysis.DownRate <= -1 {
		return fmt.Errorf("analysis growth rates must be greater than -1")
	}
	for _, f := range []string{c.Analysis.LinearFraming, c.Analysis.MAFraming} {
		if !model.Framing(f).Valid() {
			return fmt.Errorf("profit framing %q must be reference or current", f)
		}
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	for i, w := range c.Watchlist {
		if strings.TrimSpace(w.Symbol) == "" {
			return fmt.Errorf("watchlist[%d].symbol is required", i)
		}
		if w.Investment <= 0 {
			return fmt.Errorf("watchlist[%d].investment must be positive", i)
		}
		if w.HoldingDays < engine.MinHoldingDays || w.HoldingDays > engine.MaxHoldingDays {
			return fmt.Errorf("watchlist[%d].holding_days must be within 1..30", i)
		}
		if w.Model != "" {
			if _, ok := model.ParseTrendModel(w.Model); !ok {
				return fmt.Errorf("watchlist[%d].model %q is not supported", i, w.Model)
			}
		}
	}
	return nil
}

// ValidateTelegram checks the settings the bot shell needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}

// AnalyzerOptions converts the analysis section into engine options.
func (c *Config) AnalyzerOptions() engine.Options {
	defaultModel, _ := model.ParseTrendModel(c.Analysis.DefaultModel)
	return engine.Options{
		Window:       model.Window(c.Analysis.HistoryWindow),
		DefaultModel: defaultModel,
		MinimumPrice: *c.Analysis.MinPrice,
		MaxStaleness: *c.Analysis.MaxStaleness,
		Strategy: strategy.Config{
			MAWindow:      c.Analysis.MAWindow,
			UpRate:        *c.Analysis.UpRate,
			DownRate:      *c.Analysis.DownRate,
			LinearFraming: model.Framing(c.Analysis.LinearFraming),
			MAFraming:     model.Framing(c.Analysis.MAFraming),
		},
	}
}

// Requests converts the watchlist into engine requests.
func (c *Config) Requests() []engine.Request {
	reqs := make([]engine.Request, 0, len(c.Watchlist))
	for _, w := range c.Watchlist {
		m, _ := model.ParseTrendModel(w.Model)
		reqs = append(reqs, engine.Request{
			Symbol:      w.Symbol,
			Investment:  w.Investment,
			HoldingDays: w.HoldingDays,
			Model:       m,
		})
	}
	return reqs
}
