package calculator

import (
	"fmt"
	"math"

	"TradeBuddy/internal/model"
)

// Value sizes a fractional position bought at referencePrice and marks it
// to currentPrice.
func Value(investment, referencePrice, currentPrice float64) (model.Position, error) {
	if !positive(investment) {
		return model.Position{}, fmt.Errorf("investment %v must be positive: %w", investment, model.ErrInvalidInput)
	}
	if !positive(referencePrice) {
		return model.Position{}, fmt.Errorf("reference price %v must be positive: %w", referencePrice, model.ErrInvalidInput)
	}
	if !positive(currentPrice) {
		return model.Position{}, fmt.Errorf("current price %v must be positive: %w", currentPrice, model.ErrInvalidInput)
	}

	quantity := investment / referencePrice
	currentValue := quantity * currentPrice
	profitLoss := currentValue - investment

	return model.Position{
		Investment:     investment,
		ReferencePrice: referencePrice,
		CurrentPrice:   currentPrice,
		Quantity:       quantity,
		CurrentValue:   currentValue,
		ProfitLoss:     profitLoss,
		ProfitLossPct:  profitLoss / investment * 100,
	}, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
