package model

import "time"

// SeriesKind distinguishes the two independently fetched price series.
type SeriesKind string

const (
	SeriesLive       SeriesKind = "LIVE"
	SeriesHistorical SeriesKind = "HISTORICAL"
)

// Window is a historical lookback range in provider notation.
type Window string

const (
	Window1mo Window = "1mo"
	Window2mo Window = "2mo"
	Window3mo Window = "3mo"

	// WindowSession is the window recorded on live series.
	WindowSession Window = "1d"
)

// Valid reports whether w is one of the supported lookback windows.
func (w Window) Valid() bool {
	switch w {
	case Window1mo, Window2mo, Window3mo:
		return true
	}
	return false
}

// PricePoint is a single closing price observation.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// PriceSeries holds closes in ascending time order. An empty series means
// the data is unavailable; it is not itself an error.
type PriceSeries struct {
	Symbol    string       `json:"symbol"`
	Kind      SeriesKind   `json:"kind"`
	Window    Window       `json:"window"`
	Points    []PricePoint `json:"points"`
	FetchedAt time.Time    `json:"fetched_at"`
}

func (s PriceSeries) Len() int    { return len(s.Points) }
func (s PriceSeries) Empty() bool { return len(s.Points) == 0 }

// First returns the earliest point. Callers must check Empty first.
func (s PriceSeries) First() PricePoint { return s.Points[0] }

// Last returns the latest point. Callers must check Empty first.
func (s PriceSeries) Last() PricePoint { return s.Points[len(s.Points)-1] }

// Clone returns a copy of s whose Points do not share memory with s.
func (s PriceSeries) Clone() PriceSeries {
	if s.Points != nil {
		s.Points = append([]PricePoint(nil), s.Points...)
	}
	return s
}

// Closes returns the closing prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// PriceSource records which series and observation a price was taken from.
type PriceSource struct {
	Kind   SeriesKind `json:"kind"`
	Window Window     `json:"window"`
	Time   time.Time  `json:"time"`
}
