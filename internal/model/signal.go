package model

import "fmt"

// TrendModel names a projection strategy.
type TrendModel string

const (
	ModelLinearTrend            TrendModel = "LINEAR_TREND"
	ModelMovingAverageCrossover TrendModel = "MA_CROSSOVER"
)

// ParseTrendModel accepts the canonical names plus a few short aliases.
func ParseTrendModel(s string) (TrendModel, bool) {
	switch s {
	case string(ModelLinearTrend), "linear", "LINEAR", "linear_trend":
		return ModelLinearTrend, true
	case string(ModelMovingAverageCrossover), "ma", "MA", "ma_crossover", "sma":
		return ModelMovingAverageCrossover, true
	}
	return "", false
}

// UnmarshalText accepts any name ParseTrendModel does. Empty selects the
// configured default.
func (m *TrendModel) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*m = ""
		return nil
	}
	v, ok := ParseTrendModel(string(b))
	if !ok {
		return fmt.Errorf("unknown trend model %q: %w", b, ErrInvalidInput)
	}
	*m = v
	return nil
}

// Trend labels attached to a projection.
const (
	TrendUp       = "UPTREND"
	TrendDown     = "DOWNTREND"
	TrendSideways = "SIDEWAYS"
)

// Framing selects the basis expected profit is measured against.
type Framing string

const (
	// FramingReference measures against the reference (cost basis) price,
	// equivalently expected value minus the original investment.
	FramingReference Framing = "reference"
	// FramingCurrent measures against the current price.
	FramingCurrent Framing = "current"
)

// Valid reports whether f is a known framing.
func (f Framing) Valid() bool {
	return f == FramingReference || f == FramingCurrent
}

// Projection is the expected outcome over the holding period.
type Projection struct {
	Model              TrendModel `json:"model"`
	ExpectedPrice      float64    `json:"expected_price"`
	ExpectedProfitLoss float64    `json:"expected_profit_loss"`
	TrendLabel         string     `json:"trend_label"`
	Framing            Framing    `json:"framing"`
	HorizonScaled      bool       `json:"horizon_scaled"`
}

// Decision is the advisory classification of a projection.
type Decision string

const (
	DecisionFavorable   Decision = "FAVORABLE"
	DecisionUnfavorable Decision = "UNFAVORABLE"
	DecisionBlocked     Decision = "BLOCKED"
)
