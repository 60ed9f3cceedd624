package strategy

import (
	"errors"
	"math"
	"testing"
	"time"

	"TradeBuddy/internal/model"
)

func closes(values ...float64) model.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := model.PriceSeries{Symbol: "TEST.NS", Kind: model.SeriesHistorical, Window: model.Window1mo}
	for i, v := range values {
		s.Points = append(s.Points, model.PricePoint{Time: start.AddDate(0, 0, i), Close: v})
	}
	return s
}

func flat(n int, v float64) model.PriceSeries {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return closes(vals...)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLinearTrend_Scenario(t *testing.T) {
	p := NewLinearTrend(model.FramingReference)
	proj, err := p.Project(Input{
		Series:         closes(100, 110),
		CurrentPrice:   110,
		ReferencePrice: 100,
		Quantity:       10,
		HoldingDays:    7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(proj.ExpectedPrice, 148.5) {
		t.Errorf("expected price 148.5, got %.6f", proj.ExpectedPrice)
	}
	if !approx(proj.ExpectedProfitLoss, (148.5-100)*10) {
		t.Errorf("expected profit 485, got %.6f", proj.ExpectedProfitLoss)
	}
	if proj.TrendLabel != model.TrendUp {
		t.Errorf("expected UPTREND, got %s", proj.TrendLabel)
	}
	if !proj.HorizonScaled {
		t.Error("linear trend should scale with the horizon")
	}
}

func TestLinearTrend_IsDeterministic(t *testing.T) {
	p := NewLinearTrend("")
	in := Input{Series: closes(120, 118, 125, 131), CurrentPrice: 131, ReferencePrice: 120, Quantity: 3, HoldingDays: 12}
	a, errA := p.Project(in)
	b, errB := p.Project(in)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if a.ExpectedPrice != b.ExpectedPrice || a.ExpectedProfitLoss != b.ExpectedProfitLoss {
		t.Errorf("identical inputs gave %v and %v", a, b)
	}
}

func TestLinearTrend_MonotonicInHoldingDays(t *testing.T) {
	tests := []struct {
		name   string
		series model.PriceSeries
		dir    int
	}{
		{"rising", closes(100, 104, 109), 1},
		{"falling", closes(200, 190, 180), -1},
		{"flat", closes(150, 160, 150), 0},
	}
	for _, tt := range tests {
		p := NewLinearTrend(model.FramingReference)
		prev := math.NaN()
		for days := 1; days <= 30; days++ {
			proj, err := p.Project(Input{Series: tt.series, CurrentPrice: tt.series.Last().Close, ReferencePrice: tt.series.First().Close, Quantity: 1, HoldingDays: days})
			if err != nil {
				t.Fatalf("%s day %d: %v", tt.name, days, err)
			}
			if !math.IsNaN(prev) {
				switch tt.dir {
				case 1:
					if proj.ExpectedPrice <= prev {
						t.Errorf("%s: not increasing at day %d (%.4f <= %.4f)", tt.name, days, proj.ExpectedPrice, prev)
					}
				case -1:
					if proj.ExpectedPrice >= prev {
						t.Errorf("%s: not decreasing at day %d (%.4f >= %.4f)", tt.name, days, proj.ExpectedPrice, prev)
					}
				default:
					if proj.ExpectedPrice != prev {
						t.Errorf("%s: not constant at day %d (%.4f != %.4f)", tt.name, days, proj.ExpectedPrice, prev)
					}
				}
			}
			prev = proj.ExpectedPrice
		}
	}
}

func TestLinearTrend_Labels(t *testing.T) {
	p := NewLinearTrend(model.FramingReference)
	tests := []struct {
		series model.PriceSeries
		label  string
	}{
		{closes(100, 101), model.TrendUp},
		{closes(101, 100), model.TrendDown},
		{closes(100, 90, 100), model.TrendSideways},
	}
	for _, tt := range tests {
		proj, err := p.Project(Input{Series: tt.series, CurrentPrice: 100, ReferencePrice: 100, Quantity: 1, HoldingDays: 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if proj.TrendLabel != tt.label {
			t.Errorf("series %v: expected %s, got %s", tt.series.Closes(), tt.label, proj.TrendLabel)
		}
	}
}

func TestLinearTrend_InsufficientData(t *testing.T) {
	p := NewLinearTrend(model.FramingReference)
	for _, s := range []model.PriceSeries{closes(), closes(100)} {
		_, err := p.Project(Input{Series: s, CurrentPrice: 100, HoldingDays: 5})
		if !errors.Is(err, model.ErrInsufficientData) {
			t.Errorf("%d points: expected ErrInsufficientData, got %v", s.Len(), err)
		}
	}
}

func TestProjectors_RejectZeroHoldingDays(t *testing.T) {
	for _, p := range []Projector{NewLinearTrend(""), NewMACrossover(20, 0.05, -0.03, "")} {
		_, err := p.Project(Input{Series: flat(25, 100), CurrentPrice: 100, ReferencePrice: 100, Quantity: 1, HoldingDays: 0})
		if !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", p.Name(), err)
		}
	}
}

func TestMACrossover_Uptrend(t *testing.T) {
	p := NewMACrossover(20, 0.05, -0.03, model.FramingReference)
	proj, err := p.Project(Input{Series: flat(20, 100), CurrentPrice: 120, ReferencePrice: 100, Quantity: 10, HoldingDays: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.TrendLabel != model.TrendUp {
		t.Errorf("expected UPTREND, got %s", proj.TrendLabel)
	}
	if !approx(proj.ExpectedPrice, 126) {
		t.Errorf("expected 126, got %.6f", proj.ExpectedPrice)
	}
	if !approx(proj.ExpectedProfitLoss, 260) {
		t.Errorf("expected profit (126-100)*10 = 260, got %.6f", proj.ExpectedProfitLoss)
	}
	if proj.HorizonScaled {
		t.Error("moving average crossover should not scale with the horizon")
	}
}

func TestMACrossover_DowntrendWhenAtOrBelowAverage(t *testing.T) {
	p := NewMACrossover(20, 0.05, -0.03, model.FramingReference)
	for _, price := range []float64{100, 90} {
		proj, err := p.Project(Input{Series: flat(30, 100), CurrentPrice: price, ReferencePrice: 100, Quantity: 1, HoldingDays: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if proj.TrendLabel != model.TrendDown {
			t.Errorf("price %.0f: expected DOWNTREND, got %s", price, proj.TrendLabel)
		}
		if !approx(proj.ExpectedPrice, price*0.97) {
			t.Errorf("price %.0f: expected %.4f, got %.4f", price, price*0.97, proj.ExpectedPrice)
		}
	}
}

func TestMACrossover_UsesMostRecentWindow(t *testing.T) {
	// Old closes are far above the current price; only the last 20 count.
	vals := make([]float64, 0, 30)
	for i := 0; i < 10; i++ {
		vals = append(vals, 500)
	}
	for i := 0; i < 20; i++ {
		vals = append(vals, 100)
	}
	p := NewMACrossover(20, 0.05, -0.03, model.FramingReference)
	proj, err := p.Project(Input{Series: closes(vals...), CurrentPrice: 101, ReferencePrice: 500, Quantity: 1, HoldingDays: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.TrendLabel != model.TrendUp {
		t.Errorf("expected UPTREND against the recent average, got %s", proj.TrendLabel)
	}
}

func TestMACrossover_IgnoresHoldingDays(t *testing.T) {
	p := NewMACrossover(20, 0.05, -0.03, model.FramingReference)
	base := Input{Series: flat(20, 100), CurrentPrice: 110, ReferencePrice: 100, Quantity: 1}
	var first float64
	for days := 1; days <= 30; days++ {
		base.HoldingDays = days
		proj, err := p.Project(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if days == 1 {
			first = proj.ExpectedPrice
			continue
		}
		if proj.ExpectedPrice != first {
			t.Errorf("day %d: expected price %.4f differs from day 1 %.4f", days, proj.ExpectedPrice, first)
		}
	}
}

func TestMACrossover_InsufficientData(t *testing.T) {
	p := NewMACrossover(20, 0.05, -0.03, model.FramingReference)
	_, err := p.Project(Input{Series: flat(19, 100), CurrentPrice: 100, HoldingDays: 5})
	if !errors.Is(err, model.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for 19 points, got %v", err)
	}
	if _, err := p.Project(Input{Series: flat(20, 100), CurrentPrice: 100, ReferencePrice: 100, Quantity: 1, HoldingDays: 5}); err != nil {
		t.Errorf("20 points should be enough, got %v", err)
	}
}

func TestMACrossover_WindowFloor(t *testing.T) {
	if w := NewMACrossover(5, 0.05, -0.03, "").Window(); w != 20 {
		t.Errorf("expected window raised to 20, got %d", w)
	}
	if w := NewMACrossover(50, 0.05, -0.03, "").Window(); w != 50 {
		t.Errorf("expected window 50, got %d", w)
	}
}

func TestFraming_BothBases(t *testing.T) {
	// Reference 100, current 120, quantity 10, flat series so MA = 100 -> UPTREND, expected 126.
	in := Input{Series: flat(20, 100), CurrentPrice: 120, ReferencePrice: 100, Quantity: 10, HoldingDays: 7}

	ref, err := NewMACrossover(20, 0.05, -0.03, model.FramingReference).Project(in)
	if err != nil {
		t.Fatal(err)
	}
	cur, err := NewMACrossover(20, 0.05, -0.03, model.FramingCurrent).Project(in)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(ref.ExpectedProfitLoss, 260) {
		t.Errorf("reference framing: expected 260, got %.4f", ref.ExpectedProfitLoss)
	}
	// Against the investment: expected value minus investment is the same number.
	if !approx(ref.ExpectedProfitLoss, ref.ExpectedPrice*in.Quantity-in.Quantity*in.ReferencePrice) {
		t.Errorf("reference framing should equal expected value minus investment")
	}
	if !approx(cur.ExpectedProfitLoss, 60) {
		t.Errorf("current framing: expected (126-120)*10 = 60, got %.4f", cur.ExpectedProfitLoss)
	}
	if ref.Framing != model.FramingReference || cur.Framing != model.FramingCurrent {
		t.Errorf("framing not recorded: %s / %s", ref.Framing, cur.Framing)
	}

	lin, err := NewLinearTrend(model.FramingCurrent).Project(Input{Series: closes(100, 110), CurrentPrice: 110, ReferencePrice: 100, Quantity: 2, HoldingDays: 7})
	if err != nil {
		t.Fatal(err)
	}
	if !approx(lin.ExpectedProfitLoss, (148.5-110)*2) {
		t.Errorf("linear current framing: expected 77, got %.4f", lin.ExpectedProfitLoss)
	}
}

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	p, err := New(model.ModelLinearTrend, cfg)
	if err != nil || p.Name() != model.ModelLinearTrend {
		t.Errorf("linear: %v %v", p, err)
	}
	p, err = New(model.ModelMovingAverageCrossover, cfg)
	if err != nil || p.Name() != model.ModelMovingAverageCrossover {
		t.Errorf("ma: %v %v", p, err)
	}
	if _, err := New("ARIMA", cfg); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown model, got %v", err)
	}
}

func TestDecide_AllBoundaries(t *testing.T) {
	tests := []struct {
		price, profit float64
		want          model.Decision
	}{
		{99.99, 500, model.DecisionBlocked},
		{99.99, -500, model.DecisionBlocked},
		{80, 1, model.DecisionBlocked},
		{100.01, 500, model.DecisionFavorable},
		{100.01, -500, model.DecisionUnfavorable},
		{100, 0.01, model.DecisionFavorable},
		{100, 0, model.DecisionUnfavorable},
		{2500, -0.01, model.DecisionUnfavorable},
	}
	for _, tt := range tests {
		if got := Decide(tt.price, tt.profit, DefaultMinimumPrice); got != tt.want {
			t.Errorf("Decide(%.2f, %.2f): expected %s, got %s", tt.price, tt.profit, tt.want, got)
		}
	}
}

func TestIsBlocked_CustomThreshold(t *testing.T) {
	if !IsBlocked(49.99, 50) {
		t.Error("expected 49.99 blocked at threshold 50")
	}
	if IsBlocked(50, 50) {
		t.Error("price equal to threshold should not be blocked")
	}
	if IsBlocked(1, 0) {
		t.Error("zero threshold should block nothing positive")
	}
}
