package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"TradeBuddy/internal/engine"
	"TradeBuddy/internal/model"
	"TradeBuddy/internal/notifier"
	"TradeBuddy/internal/scheduler"
	"TradeBuddy/internal/server"
)

func analyzeCmd() *cobra.Command {
	var (
		amount    float64
		days      int
		modelName string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <symbol or company name>",
		Short: "Value a position and project it over the holding period",
		Example: `  tradebuddy analyze Infosys --amount 10000 --days 7
  tradebuddy analyze TCS.NS -a 5000 -d 3 --model ma`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			req := engine.Request{
				Symbol:      strings.Join(args, " "),
				Investment:  amount,
				HoldingDays: days,
			}
			if modelName != "" {
				m, ok := model.ParseTrendModel(modelName)
				if !ok {
					return fmt.Errorf("unknown model %q, use linear or ma", modelName)
				}
				req.Model = m
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			res, err := a.analyzer.Analyze(ctx, req)
			if err != nil {
				return fmt.Errorf("%s (%w)", strings.TrimPrefix(notifier.FailureMessage(err), "❌ "), err)
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printAnalysis(res)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&amount, "amount", "a", 10000, "Investment amount")
	cmd.Flags().IntVarP(&days, "days", "d", 7, "Holding period in days (1-30)")
	cmd.Flags().StringVarP(&modelName, "model", "m", "", "Trend model: linear or ma (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func printAnalysis(a *model.Analysis) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Symbol\t%s\n", a.Symbol)
	fmt.Fprintf(w, "Current Price\t₹%.2f\n", a.CurrentPrice)
	if a.Decision == model.DecisionBlocked {
		w.Flush()
		fmt.Println()
		fmt.Println(notifier.LowPriceWarning(a.MinimumPrice))
		return
	}
	fmt.Fprintf(w, "Reference Price\t₹%.2f\n", a.Position.ReferencePrice)
	fmt.Fprintf(w, "Quantity\t%.2f\n", a.Quantity)
	fmt.Fprintf(w, "Current P/L\t₹%.2f (%+.2f%%)\n", a.ProfitLoss, a.ProfitLossPct)
	fmt.Fprintf(w, "Model\t%s (%s)\n", a.Model, a.TrendLabel)
	fmt.Fprintf(w, "Expected Price (%dd)\t₹%.2f\n", a.HoldingDays, a.ExpectedPrice)
	fmt.Fprintf(w, "Expected Profit\t₹%.2f\n", a.ExpectedProfitLoss)
	fmt.Fprintf(w, "Decision\t%s\n", a.Decision)
	w.Flush()
}

func symbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List the supported company names",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			r := a.analyzer.Resolver()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range r.Names() {
				ticker, _ := r.Lookup(name)
				fmt.Fprintf(w, "%s\t%s\n", name, ticker)
			}
			return w.Flush()
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := server.New(server.Config{
				Addr:     addr,
				Log:      a.log,
				Analyzer: a.analyzer,
				Resolver: a.analyzer.Resolver(),
				Provider: a.gateway.Provider(),
			})

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-sigCh:
			}

			a.log.Info().Msg("shutdown signal received, stopping...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func botCmd() *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot and watchlist scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if err := a.cfg.ValidateTelegram(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log)
			sched := scheduler.NewScheduler(ctx, a.analyzer, a.analyzer.Resolver(), tn, a.cfg.Requests(), a.log)
			if err := sched.RegisterWatch(a.cfg.Schedule.WatchCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			go tn.StartPolling(ctx, sched.HandleCommand)
			a.log.Info().Msg("Telegram polling started")

			if runNow || os.Getenv("RUN_ON_START") == "true" {
				a.log.Info().Msg("running watchlist now")
				go sched.RunWatchNow()
			}

			a.log.Info().Msg("TradeBuddy bot is running. Press Ctrl+C to stop.")
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			a.log.Info().Msg("shutdown signal received, stopping...")
			cancel()
			return nil
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "Run the watchlist once at startup")
	return cmd
}
