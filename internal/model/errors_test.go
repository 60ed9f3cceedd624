package model

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{ErrInvalidSymbol, KindInvalidSymbol},
		{fmt.Errorf("resolve: %w", ErrInvalidSymbol), KindInvalidSymbol},
		{fmt.Errorf("history RELIANCE.NS: %w", ErrDataUnavailable), KindDataUnavailable},
		{fmt.Errorf("value: %w", ErrInvalidInput), KindInvalidInput},
		{fmt.Errorf("linear: %w", ErrInsufficientData), KindInsufficientData},
		{errors.New("boom"), KindInternal},
		{context.Canceled, KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestParseTrendModel(t *testing.T) {
	if m, ok := ParseTrendModel("linear"); !ok || m != ModelLinearTrend {
		t.Errorf("linear: got %q %v", m, ok)
	}
	if m, ok := ParseTrendModel("MA_CROSSOVER"); !ok || m != ModelMovingAverageCrossover {
		t.Errorf("MA_CROSSOVER: got %q %v", m, ok)
	}
	if _, ok := ParseTrendModel("arima"); ok {
		t.Error("expected unknown model to be rejected")
	}
}
