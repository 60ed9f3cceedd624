package scheduler

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"TradeBuddy/internal/engine"
	"TradeBuddy/internal/model"
	"TradeBuddy/internal/notifier"
	"TradeBuddy/internal/symbol"
)

// Analyzer runs one analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, req engine.Request) (*model.Analysis, error)
}

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const sendRetries = 3

const helpText = "Available commands:\n" +
	"• /analyze &lt;symbol&gt; &lt;amount&gt; &lt;days&gt; [linear|ma]\n" +
	"• /symbols\n" +
	"• /watchlist\n\n" +
	"Example: <code>/analyze Infosys 10000 7</code>"

// Scheduler runs the watchlist on a cron spec and answers bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  Analyzer
	Resolver  *symbol.Resolver
	Notifier  Sender
	Watchlist []engine.Request
	Ctx       context.Context

	log zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, a Analyzer, r *symbol.Resolver, n Sender, watchlist []engine.Request, log zerolog.Logger) *Scheduler {
	if r == nil {
		r = symbol.Default()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  a,
		Resolver:  r,
		Notifier:  n,
		Watchlist: watchlist,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterWatch registers the watchlist task. An empty watchlist registers nothing.
func (s *Scheduler) RegisterWatch(spec string) error {
	if len(s.Watchlist) == 0 {
		s.log.Info().Msg("watchlist empty, no cron task registered")
		return nil
	}
	if _, err := s.Cron.AddFunc(spec, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("watchlist", len(s.Watchlist)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunWatchNow executes the watchlist task immediately.
func (s *Scheduler) RunWatchNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	s.log.Info().Int("items", len(s.Watchlist)).Msg("running watchlist")
	for _, req := range s.Watchlist {
		if s.Ctx.Err() != nil {
			return
		}
		s.trySend(s.analyze(s.Ctx, req))
	}
}

func (s *Scheduler) analyze(ctx context.Context, req engine.Request) string {
	a, err := s.Analyzer.Analyze(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).
			Str("symbol", req.Symbol).
			Str("kind", string(model.KindOf(err))).
			Msg("analysis failed")
		return fmt.Sprintf("%s\n(%s)", notifier.FailureMessage(err), html.EscapeString(req.Symbol))
	}
	return notifier.FormatAnalysis(a)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Strip a bot mention such as /analyze@TradeBuddyBot.
	cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])

	switch cmd {
	case "/analyze":
		req, err := ParseAnalyzeArgs(fields[1:])
		if err != nil {
			return fmt.Sprintf("❌ %s\n\n%s", html.EscapeString(err.Error()), helpText)
		}
		return s.analyze(ctx, req)
	case "/symbols":
		return notifier.FormatSymbols(s.Resolver.Names(), s.Resolver.Lookup)
	case "/watchlist":
		return s.formatWatchlist()
	default:
		return helpText
	}
}

// ParseAnalyzeArgs parses "<symbol...> <amount> <days> [model]". The symbol may
// span several words so company names like "Tata Motors" work.
func ParseAnalyzeArgs(args []string) (engine.Request, error) {
	var req engine.Request
	if len(args) > 0 {
		if m, ok := model.ParseTrendModel(args[len(args)-1]); ok {
			req.Model = m
			args = args[:len(args)-1]
		}
	}
	if len(args) < 3 {
		return req, fmt.Errorf("usage: /analyze <symbol> <amount> <days> [model]")
	}

	days, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return req, fmt.Errorf("holding days %q is not a whole number", args[len(args)-1])
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(args[len(args)-2], ",", ""), 64)
	if err != nil {
		return req, fmt.Errorf("amount %q is not a number", args[len(args)-2])
	}

	req.Symbol = strings.Join(args[:len(args)-2], " ")
	req.Investment = amount
	req.HoldingDays = days
	return req, nil
}

func (s *Scheduler) formatWatchlist() string {
	if len(s.Watchlist) == 0 {
		return "Watchlist is empty."
	}
	var b strings.Builder
	b.WriteString("👀 <b>Watchlist</b>\n\n")
	for _, r := range s.Watchlist {
		m := r.Model
		if m == "" {
			m = "default"
		}
		b.WriteString(fmt.Sprintf("• %s ₹%.0f for %dd (%s)\n", html.EscapeString(r.Symbol), r.Investment, r.HoldingDays, m))
	}
	return b.String()
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
