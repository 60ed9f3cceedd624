package collector

import (
	"context"
	"errors"

	"TradeBuddy/internal/model"
)

// Fetcher is a market data provider adapter. Implementations return raw
// provider errors; the Gateway normalizes them.
type Fetcher interface {
	// FetchIntraday returns the finest available closes for the current session.
	FetchIntraday(ctx context.Context, symbol string) ([]model.PricePoint, error)
	// FetchDaily returns daily closes covering window.
	FetchDaily(ctx context.Context, symbol string, window model.Window) ([]model.PricePoint, error)
	Name() string
}

var (
	errRateLimited = errors.New("rate limited")
	errNoData      = errors.New("no data returned")
)

// windowDays maps a lookback window to calendar days.
func windowDays(w model.Window) int {
	switch w {
	case model.Window2mo:
		return 60
	case model.Window3mo:
		return 90
	}
	return 30
}
