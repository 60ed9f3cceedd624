package model

// Position is a hypothetical holding derived from an investment amount.
type Position struct {
	Investment     float64 `json:"investment"`
	ReferencePrice float64 `json:"reference_price"`
	CurrentPrice   float64 `json:"current_price"`
	Quantity       float64 `json:"quantity"`
	CurrentValue   float64 `json:"current_value"`
	ProfitLoss     float64 `json:"profit_loss"`
	ProfitLossPct  float64 `json:"profit_loss_pct"`
}
