package calculator

import (
	"errors"
	"math"

	"github.com/markcheno/go-talib"
)

// CalculateSMA computes the simple moving average of the most recent period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	if period == 1 {
		return prices[len(prices)-1], nil
	}
	sma := talib.Sma(prices, period)
	last := sma[len(sma)-1]
	if math.IsNaN(last) || math.IsInf(last, 0) {
		return 0, errors.New("SMA produced a non-finite value")
	}
	return last, nil
}
