package strategy

import (
	"fmt"

	"TradeBuddy/internal/model"
)

// Input carries everything a projector needs for one analysis.
type Input struct {
	Series         model.PriceSeries
	CurrentPrice   float64
	ReferencePrice float64
	Quantity       float64
	HoldingDays    int
}

// Projector computes an expected price over a holding period.
type Projector interface {
	Name() model.TrendModel
	Project(in Input) (model.Projection, error)
}

// Config tunes the projectors built by New.
type Config struct {
	MAWindow      int
	UpRate        float64
	DownRate      float64
	LinearFraming model.Framing
	MAFraming     model.Framing
}

// DefaultConfig returns the stock parameters: a 20-close moving average,
// +5% / -3% horizon rates and reference-price framing for both models.
func DefaultConfig() Config {
	return Config{
		MAWindow:      DefaultMAWindow,
		UpRate:        DefaultUpRate,
		DownRate:      DefaultDownRate,
		LinearFraming: model.FramingReference,
		MAFraming:     model.FramingReference,
	}
}

// New returns the projector for m.
func New(m model.TrendModel, cfg Config) (Projector, error) {
	switch m {
	case model.ModelLinearTrend:
		return NewLinearTrend(cfg.LinearFraming), nil
	case model.ModelMovingAverageCrossover:
		return NewMACrossover(cfg.MAWindow, cfg.UpRate, cfg.DownRate, cfg.MAFraming), nil
	}
	return nil, fmt.Errorf("unknown trend model %q: %w", m, model.ErrInvalidInput)
}

func validate(in Input) error {
	if in.HoldingDays < 1 {
		return fmt.Errorf("holding days %d must be at least 1: %w", in.HoldingDays, model.ErrInvalidInput)
	}
	if !(in.CurrentPrice > 0) {
		return fmt.Errorf("current price %v must be positive: %w", in.CurrentPrice, model.ErrInvalidInput)
	}
	return nil
}

// expectedProfitLoss applies the framing to an expected price.
func expectedProfitLoss(f model.Framing, expectedPrice float64, in Input) float64 {
	if f == model.FramingCurrent {
		return (expectedPrice - in.CurrentPrice) * in.Quantity
	}
	return (expectedPrice - in.ReferencePrice) * in.Quantity
}

func framingOrDefault(f model.Framing) model.Framing {
	if f.Valid() {
		return f
	}
	return model.FramingReference
}
