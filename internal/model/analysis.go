package model

import "time"

// Analysis is the engine's result for one request.
// Projection is nil when the decision is Blocked.
type Analysis struct {
	RequestID    string     `json:"request_id"`
	Symbol       string     `json:"symbol"`
	HoldingDays  int        `json:"holding_days"`
	Model        TrendModel `json:"model"`
	Decision     Decision   `json:"decision"`
	MinimumPrice float64    `json:"minimum_price"`

	CurrentPrice       float64 `json:"current_price"`
	Quantity           float64 `json:"quantity"`
	ProfitLoss         float64 `json:"profit_loss"`
	ProfitLossPct      float64 `json:"profit_loss_pct"`
	ExpectedPrice      float64 `json:"expected_price"`
	ExpectedProfitLoss float64 `json:"expected_profit_loss"`
	TrendLabel         string  `json:"trend_label"`

	Position        Position    `json:"position"`
	Projection      *Projection `json:"projection,omitempty"`
	ReferenceSource PriceSource `json:"reference_source"`
	CurrentSource   PriceSource `json:"current_source"`

	PriceSeriesForChart []PricePoint `json:"price_series"`
	AnalyzedAt          time.Time    `json:"analyzed_at"`
}
