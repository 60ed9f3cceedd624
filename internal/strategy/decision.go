package strategy

import "TradeBuddy/internal/model"

// DefaultMinimumPrice is the price below which an instrument is considered
// too speculative for guidance.
const DefaultMinimumPrice = 100.0

// IsBlocked reports whether currentPrice falls under the minimum price guard.
func IsBlocked(currentPrice, minimumPrice float64) bool {
	return currentPrice < minimumPrice
}

// Decide classifies a projected outcome.
func Decide(currentPrice, expectedProfitLoss, minimumPrice float64) model.Decision {
	switch {
	case IsBlocked(currentPrice, minimumPrice):
		return model.DecisionBlocked
	case expectedProfitLoss > 0:
		return model.DecisionFavorable
	default:
		return model.DecisionUnfavorable
	}
}
