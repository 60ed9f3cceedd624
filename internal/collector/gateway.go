package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"TradeBuddy/internal/cache"
	"TradeBuddy/internal/model"
)

// DefaultCacheTTL bounds how long fetched series are reused.
const DefaultCacheTTL = 5 * time.Minute

// GatewayOptions configures a Gateway.
type GatewayOptions struct {
	CacheTTL        time.Duration
	CacheMaxEntries int
	Clock           cache.Clock
}

// Gateway fetches live and historical series through a Fetcher, caching
// results per (symbol, kind, window). Provider failures of any sort surface
// as an empty series; callers never see provider errors.
type Gateway struct {
	fetcher Fetcher
	cache   *cache.TTL[model.PriceSeries]
	now     cache.Clock
	log     zerolog.Logger
}

// NewGateway creates a Gateway. Zero options take the defaults.
func NewGateway(fetcher Fetcher, opts GatewayOptions, log zerolog.Logger) *Gateway {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.CacheMaxEntries <= 0 {
		opts.CacheMaxEntries = 256
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Gateway{
		fetcher: fetcher,
		cache:   cache.New[model.PriceSeries](opts.CacheTTL, opts.CacheMaxEntries, opts.Clock),
		now:     opts.Clock,
		log:     log.With().Str("component", "gateway").Str("provider", fetcher.Name()).Logger(),
	}
}

// Provider returns the underlying fetcher's name.
func (g *Gateway) Provider() string { return g.fetcher.Name() }

// FetchLive returns the current session's intraday series, or an empty series.
func (g *Gateway) FetchLive(ctx context.Context, symbol string) model.PriceSeries {
	return g.fetch(ctx, symbol, model.SeriesLive, model.WindowSession, func() ([]model.PricePoint, error) {
		return g.fetcher.FetchIntraday(ctx, symbol)
	})
}

// FetchHistorical returns daily closes over window, or an empty series.
// Unsupported windows fall back to one month.
func (g *Gateway) FetchHistorical(ctx context.Context, symbol string, window model.Window) model.PriceSeries {
	if !window.Valid() {
		g.log.Warn().Str("window", string(window)).Msg("unsupported window, using 1mo")
		window = model.Window1mo
	}
	return g.fetch(ctx, symbol, model.SeriesHistorical, window, func() ([]model.PricePoint, error) {
		return g.fetcher.FetchDaily(ctx, symbol, window)
	})
}

func (g *Gateway) fetch(ctx context.Context, symbol string, kind model.SeriesKind, window model.Window, call func() ([]model.PricePoint, error)) model.PriceSeries {
	key := cacheKey(symbol, kind, window)
	if s, ok := g.cache.Get(key); ok {
		g.log.Debug().Str("symbol", symbol).Str("kind", string(kind)).Msg("cache hit")
		return s.Clone()
	}

	empty := model.PriceSeries{Symbol: symbol, Kind: kind, Window: window, FetchedAt: g.now()}
	if err := ctx.Err(); err != nil {
		return empty
	}

	raw, err := call()
	if err != nil {
		g.log.Warn().Err(err).Str("symbol", symbol).Str("kind", string(kind)).Msg("provider fetch failed")
		return empty
	}

	points := normalize(raw)
	if dropped := len(raw) - len(points); dropped > 0 {
		g.log.Debug().Int("dropped", dropped).Str("symbol", symbol).Msg("discarded invalid points")
	}
	series := empty
	series.Points = points
	if series.Empty() {
		g.log.Warn().Str("symbol", symbol).Str("kind", string(kind)).Msg("provider returned no usable points")
		return series
	}

	// Callers own what they get back; the cached entry stays private.
	g.cache.Set(key, series)
	return series.Clone()
}

func cacheKey(symbol string, kind model.SeriesKind, window model.Window) string {
	return symbol + "|" + string(kind) + "|" + string(window)
}
