package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"TradeBuddy/internal/calculator"
	"TradeBuddy/internal/model"
	"TradeBuddy/internal/strategy"
	"TradeBuddy/internal/symbol"
)

// MarketData is the part of the collector Gateway the analyzer depends on.
type MarketData interface {
	FetchLive(ctx context.Context, symbol string) model.PriceSeries
	FetchHistorical(ctx context.Context, symbol string, window model.Window) model.PriceSeries
}

// Request is one analysis as submitted by a presentation shell.
type Request struct {
	Symbol      string           `json:"symbol"`
	Investment  float64          `json:"investment"`
	HoldingDays int              `json:"holding_days"`
	Model       model.TrendModel `json:"model,omitempty"`
}

const (
	MinHoldingDays = 1
	MaxHoldingDays = 30

	DefaultMaxStaleness = 96 * time.Hour
)

// Options configures an Analyzer.
type Options struct {
	Window       model.Window
	DefaultModel model.TrendModel
	MinimumPrice float64
	MaxStaleness time.Duration // zero disables the staleness guard
	Strategy     strategy.Config
	Clock        func() time.Time

	// Projectors overrides the projectors built from Strategy.
	Projectors []strategy.Projector
}

// DefaultOptions mirrors the stock configuration.
func DefaultOptions() Options {
	return Options{
		Window:       model.Window1mo,
		DefaultModel: model.ModelLinearTrend,
		MinimumPrice: strategy.DefaultMinimumPrice,
		MaxStaleness: DefaultMaxStaleness,
		Strategy:     strategy.DefaultConfig(),
	}
}

// Analyzer runs the valuation and projection pipeline for a request.
type Analyzer struct {
	data       MarketData
	resolver   *symbol.Resolver
	projectors map[model.TrendModel]strategy.Projector
	opts       Options
	log        zerolog.Logger
}

// NewAnalyzer wires an Analyzer. A nil resolver uses symbol.Default().
func NewAnalyzer(data MarketData, resolver *symbol.Resolver, opts Options, log zerolog.Logger) (*Analyzer, error) {
	if resolver == nil {
		resolver = symbol.Default()
	}
	if !opts.Window.Valid() {
		opts.Window = model.Window1mo
	}
	if opts.DefaultModel == "" {
		opts.DefaultModel = model.ModelLinearTrend
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	projectors := make(map[model.TrendModel]strategy.Projector)
	if len(opts.Projectors) > 0 {
		for _, p := range opts.Projectors {
			projectors[p.Name()] = p
		}
	} else {
		for _, m := range []model.TrendModel{model.ModelLinearTrend, model.ModelMovingAverageCrossover} {
			p, err := strategy.New(m, opts.Strategy)
			if err != nil {
				return nil, err
			}
			projectors[m] = p
		}
	}
	if _, ok := projectors[opts.DefaultModel]; !ok {
		return nil, fmt.Errorf("default model %q has no projector", opts.DefaultModel)
	}

	return &Analyzer{
		data:       data,
		resolver:   resolver,
		projectors: projectors,
		opts:       opts,
		log:        log.With().Str("component", "analyzer").Logger(),
	}, nil
}

// Resolver exposes the symbol resolver for shells that list selections.
func (a *Analyzer) Resolver() *symbol.Resolver { return a.resolver }

// Analyze values a hypothetical position in req.Symbol and projects it over
// the holding period. Failures wrap one of the model sentinel errors.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*model.Analysis, error) {
	sym, err := a.resolver.Resolve(req.Symbol)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(req.Investment) || math.IsInf(req.Investment, 0) || req.Investment <= 0 {
		return nil, fmt.Errorf("investment %v must be positive: %w", req.Investment, model.ErrInvalidInput)
	}
	if req.HoldingDays < MinHoldingDays || req.HoldingDays > MaxHoldingDays {
		return nil, fmt.Errorf("holding days %d outside [%d, %d]: %w",
			req.HoldingDays, MinHoldingDays, MaxHoldingDays, model.ErrInvalidInput)
	}
	trendModel := req.Model
	if trendModel == "" {
		trendModel = a.opts.DefaultModel
	}
	projector, ok := a.projectors[trendModel]
	if !ok {
		return nil, fmt.Errorf("unknown trend model %q: %w", trendModel, model.ErrInvalidInput)
	}

	id := uuid.NewString()
	log := a.log.With().Str("request_id", id).Str("symbol", sym).Logger()

	historical, live, err := a.fetch(ctx, sym)
	if err != nil {
		return nil, err
	}
	if historical.Empty() {
		log.Warn().Msg("historical series unavailable")
		return nil, fmt.Errorf("history for %s: %w", sym, model.ErrDataUnavailable)
	}

	prices, err := calculator.SelectPrices(live, historical, a.opts.Clock(), a.opts.MaxStaleness)
	if err != nil {
		return nil, err
	}
	pos, err := calculator.Value(req.Investment, prices.ReferencePrice, prices.CurrentPrice)
	if err != nil {
		return nil, err
	}

	result := &model.Analysis{
		RequestID:           id,
		Symbol:              sym,
		HoldingDays:         req.HoldingDays,
		Model:               trendModel,
		MinimumPrice:        a.opts.MinimumPrice,
		CurrentPrice:        pos.CurrentPrice,
		Quantity:            pos.Quantity,
		ProfitLoss:          pos.ProfitLoss,
		ProfitLossPct:       pos.ProfitLossPct,
		Position:            pos,
		ReferenceSource:     prices.ReferenceSource,
		CurrentSource:       prices.CurrentSource,
		PriceSeriesForChart: append([]model.PricePoint(nil), historical.Points...),
		AnalyzedAt:          a.opts.Clock(),
	}
	if strategy.IsBlocked(pos.CurrentPrice, a.opts.MinimumPrice) {
		result.Decision = model.DecisionBlocked
		log.Info().Float64("price", pos.CurrentPrice).Float64("minimum", a.opts.MinimumPrice).Msg("below minimum price, projection skipped")
		return result, nil
	}

	proj, err := projector.Project(strategy.Input{
		Series:         historical,
		CurrentPrice:   pos.CurrentPrice,
		ReferencePrice: pos.ReferencePrice,
		Quantity:       pos.Quantity,
		HoldingDays:    req.HoldingDays,
	})
	if err != nil {
		return nil, fmt.Errorf("%s projection for %s: %w", trendModel, sym, err)
	}

	result.Projection = &proj
	result.ExpectedPrice = proj.ExpectedPrice
	result.ExpectedProfitLoss = proj.ExpectedProfitLoss
	result.TrendLabel = proj.TrendLabel
	result.Decision = strategy.Decide(pos.CurrentPrice, proj.ExpectedProfitLoss, a.opts.MinimumPrice)

	log.Info().
		Str("model", string(trendModel)).
		Float64("current", pos.CurrentPrice).
		Float64("expected", proj.ExpectedPrice).
		Str("decision", string(result.Decision)).
		Msg("analysis complete")
	return result, nil
}

// fetch retrieves both series concurrently. Each lands in its own slot, so the
// outcome does not depend on completion order.
func (a *Analyzer) fetch(ctx context.Context, sym string) (historical, live model.PriceSeries, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		historical = a.data.FetchHistorical(gctx, sym, a.opts.Window)
		return nil
	})
	g.Go(func() error {
		live = a.data.FetchLive(gctx, sym)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return model.PriceSeries{}, model.PriceSeries{}, fmt.Errorf("fetch %s: %w", sym, err)
	}
	return historical, live, nil
}
