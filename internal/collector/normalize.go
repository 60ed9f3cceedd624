package collector

import (
	"math"
	"sort"

	"TradeBuddy/internal/model"
)

// normalize enforces the PriceSeries shape on provider output: closes must be
// positive and finite, timestamps set, ascending and unique. Offending points
// are dropped; on duplicate timestamps the later observation wins.
func normalize(points []model.PricePoint) []model.PricePoint {
	out := make([]model.PricePoint, 0, len(points))
	for _, p := range points {
		if p.Time.IsZero() || !(p.Close > 0) || math.IsInf(p.Close, 0) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	deduped := out[:0]
	for _, p := range out {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(p.Time) {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}
