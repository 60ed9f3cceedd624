package strategy

import (
	"fmt"

	"TradeBuddy/internal/model"
)

// LinearTrend extends the average per-observation return of the lookback
// window linearly over the holding period. The projection scales with the
// number of holding days.
type LinearTrend struct {
	framing model.Framing
}

// NewLinearTrend creates a LinearTrend projector.
func NewLinearTrend(framing model.Framing) *LinearTrend {
	return &LinearTrend{framing: framingOrDefault(framing)}
}

func (l *LinearTrend) Name() model.TrendModel { return model.ModelLinearTrend }

// DailyReturn returns the total window return divided by the observation count.
func DailyReturn(series model.PriceSeries) (float64, error) {
	if series.Len() < 2 {
		return 0, fmt.Errorf("linear trend needs 2 points, have %d: %w", series.Len(), model.ErrInsufficientData)
	}
	first, last := series.First().Close, series.Last().Close
	if !(first > 0) {
		return 0, fmt.Errorf("first close %v must be positive: %w", first, model.ErrInvalidInput)
	}
	totalReturn := (last - first) / first
	return totalReturn / float64(series.Len()), nil
}

func (l *LinearTrend) Project(in Input) (model.Projection, error) {
	if err := validate(in); err != nil {
		return model.Projection{}, err
	}
	daily, err := DailyReturn(in.Series)
	if err != nil {
		return model.Projection{}, err
	}

	expected := in.CurrentPrice * (1 + daily*float64(in.HoldingDays))

	label := model.TrendSideways
	switch {
	case daily > 0:
		label = model.TrendUp
	case daily < 0:
		label = model.TrendDown
	}

	return model.Projection{
		Model:              model.ModelLinearTrend,
		ExpectedPrice:      expected,
		ExpectedProfitLoss: expectedProfitLoss(l.framing, expected, in),
		TrendLabel:         label,
		Framing:            l.framing,
		HorizonScaled:      true,
	}, nil
}
