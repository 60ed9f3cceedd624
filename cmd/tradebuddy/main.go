// tradebuddy values a hypothetical equity position and projects it over a
// short holding period.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"TradeBuddy/internal/collector"
	"TradeBuddy/internal/config"
	"TradeBuddy/internal/engine"
	"TradeBuddy/internal/logger"
)

var (
	version    = "0.1.0"
	configPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tradebuddy",
		Short: "Trade valuation and short-horizon projection",
		Long: `tradebuddy values a hypothetical position bought at the start of a recent
price window and projects its price over a holding period of 1 to 30 days.
For educational use only.`,
		SilenceUsage: true,
	}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(symbolsCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(botCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tradebuddy version %s\n", version)
		},
	}
}

// app is the wiring shared by every command.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	gateway  *collector.Gateway
	analyzer *engine.Analyzer
}

func loadApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "vstrader":
		fetcher = collector.NewVsTraderFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case "yahoo-chart":
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	case "mock":
		fetcher = &collector.MockFetcher{Price: 1500}
	default:
		if cfg.Proxy != "" {
			log.Warn().Msg("proxy is not applied by the yahoo provider, use yahoo-chart to route through it")
		}
		fetcher = collector.NewYFinanceFetcher()
	}
	log.Debug().Str("provider", fetcher.Name()).Msg("data source selected")

	gw := collector.NewGateway(fetcher, collector.GatewayOptions{
		CacheTTL:        cfg.Cache.TTL,
		CacheMaxEntries: cfg.Cache.MaxEntries,
	}, log)

	an, err := engine.NewAnalyzer(gw, nil, cfg.AnalyzerOptions(), log)
	if err != nil {
		return nil, fmt.Errorf("init analyzer: %w", err)
	}
	return &app{cfg: cfg, log: log, gateway: gw, analyzer: an}, nil
}
