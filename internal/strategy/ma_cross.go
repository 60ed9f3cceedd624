package strategy

import (
	"fmt"

	"TradeBuddy/internal/calculator"
	"TradeBuddy/internal/model"
)

const (
	DefaultMAWindow = 20
	DefaultUpRate   = 0.05
	DefaultDownRate = -0.03
)

// MACrossover compares the current price with a simple moving average of the
// most recent closes and applies a flat assumed rate for the whole horizon.
// Holding days do not scale the projection.
type MACrossover struct {
	window   int
	upRate   float64
	downRate float64
	framing  model.Framing
}

// NewMACrossover creates a moving-average crossover projector. A window below
// the default of 20 closes is raised to it.
func NewMACrossover(window int, upRate, downRate float64, framing model.Framing) *MACrossover {
	if window < DefaultMAWindow {
		window = DefaultMAWindow
	}
	return &MACrossover{
		window:   window,
		upRate:   upRate,
		downRate: downRate,
		framing:  framingOrDefault(framing),
	}
}

func (m *MACrossover) Name() model.TrendModel { return model.ModelMovingAverageCrossover }

func (m *MACrossover) Window() int { return m.window }

func (m *MACrossover) Project(in Input) (model.Projection, error) {
	if err := validate(in); err != nil {
		return model.Projection{}, err
	}
	if in.Series.Len() < m.window {
		return model.Projection{}, fmt.Errorf("moving average needs %d points, have %d: %w",
			m.window, in.Series.Len(), model.ErrInsufficientData)
	}

	sma, err := calculator.CalculateSMA(in.Series.Closes(), m.window)
	if err != nil {
		return model.Projection{}, fmt.Errorf("moving average: %v: %w", err, model.ErrInsufficientData)
	}

	label, rate := model.TrendDown, m.downRate
	if in.CurrentPrice > sma {
		label, rate = model.TrendUp, m.upRate
	}
	expected := in.CurrentPrice * (1 + rate)

	return model.Projection{
		Model:              model.ModelMovingAverageCrossover,
		ExpectedPrice:      expected,
		ExpectedProfitLoss: expectedProfitLoss(m.framing, expected, in),
		TrendLabel:         label,
		Framing:            m.framing,
		HorizonScaled:      false,
	}, nil
}
