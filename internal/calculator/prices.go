package calculator

import (
	"fmt"
	"time"

	"TradeBuddy/internal/model"
)

// PriceSelection is the reconciled pair of prices used for valuation.
type PriceSelection struct {
	ReferencePrice  float64
	CurrentPrice    float64
	ReferenceSource model.PriceSource
	CurrentSource   model.PriceSource
}

// SelectPrices takes the reference price from the earliest historical close
// and the current price from the latest live close, falling back to the
// latest historical close when no live data exists.
//
// The current price must not precede the reference observation, and when
// maxStale is positive it must be no older than maxStale relative to now.
func SelectPrices(live, historical model.PriceSeries, now time.Time, maxStale time.Duration) (PriceSelection, error) {
	if historical.Empty() {
		return PriceSelection{}, fmt.Errorf("no historical prices for %s: %w", historical.Symbol, model.ErrDataUnavailable)
	}

	first := historical.First()
	sel := PriceSelection{
		ReferencePrice: first.Close,
		ReferenceSource: model.PriceSource{
			Kind:   model.SeriesHistorical,
			Window: historical.Window,
			Time:   first.Time,
		},
	}

	current, source := historical.Last(), model.PriceSource{Kind: model.SeriesHistorical, Window: historical.Window}
	if !live.Empty() {
		current, source = live.Last(), model.PriceSource{Kind: model.SeriesLive, Window: live.Window}
	}
	source.Time = current.Time
	sel.CurrentPrice = current.Close
	sel.CurrentSource = source

	if current.Time.Before(first.Time) {
		return PriceSelection{}, fmt.Errorf("current price at %s precedes reference at %s: %w",
			current.Time.Format(time.RFC3339), first.Time.Format(time.RFC3339), model.ErrDataUnavailable)
	}
	if maxStale > 0 && now.Sub(current.Time) > maxStale {
		return PriceSelection{}, fmt.Errorf("current price from %s is stale (older than %s): %w",
			current.Time.Format(time.RFC3339), maxStale, model.ErrDataUnavailable)
	}
	return sel, nil
}
