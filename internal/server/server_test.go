package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeBuddy/internal/collector"
	"TradeBuddy/internal/engine"
	"TradeBuddy/internal/model"
	"TradeBuddy/internal/symbol"
)

type stubAnalyzer struct {
	err error
}

func (s stubAnalyzer) Analyze(_ context.Context, req engine.Request) (*model.Analysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Analysis{Symbol: req.Symbol, Model: req.Model, Decision: model.DecisionFavorable}, nil
}

func newTestServer(a Analyzer) *Server {
	return New(Config{
		Log:      zerolog.Nop(),
		Analyzer: a,
		Resolver: symbol.NewResolver(map[string]string{"Infosys": "INFY.NS", "TCS": "TCS.NS"}),
		Provider: "mock",
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSymbols(t *testing.T) {
	rec := do(t, newTestServer(stubAnalyzer{}), http.MethodGet, "/api/symbols", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []symbolEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []symbolEntry{{"Infosys", "INFY.NS"}, {"TCS", "TCS.NS"}}, got)
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(stubAnalyzer{}), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"provider":"mock"`)
}

func TestAnalyze_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   model.Kind
	}{
		{fmt.Errorf("resolve: %w", model.ErrInvalidSymbol), http.StatusBadRequest, model.KindInvalidSymbol},
		{model.ErrInvalidInput, http.StatusBadRequest, model.KindInvalidInput},
		{model.ErrDataUnavailable, http.StatusServiceUnavailable, model.KindDataUnavailable},
		{model.ErrInsufficientData, http.StatusUnprocessableEntity, model.KindInsufficientData},
		{fmt.Errorf("boom"), http.StatusInternalServerError, model.KindInternal},
	}
	for _, tt := range tests {
		rec := do(t, newTestServer(stubAnalyzer{err: tt.err}), http.MethodPost, "/api/analyze",
			`{"symbol":"Infosys","investment":1000,"holding_days":3}`)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())

		var got errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Error)
		assert.Equal(t, tt.kind, got.Kind)
		assert.NotEmpty(t, got.Message)
	}
}

func TestAnalyze_ModelAliases(t *testing.T) {
	tests := []struct {
		model string
		want  model.TrendModel
	}{
		{"linear", model.ModelLinearTrend},
		{"ma", model.ModelMovingAverageCrossover},
		{"MA_CROSSOVER", model.ModelMovingAverageCrossover},
		{"", ""},
	}
	for _, tt := range tests {
		body := fmt.Sprintf(`{"symbol":"Infosys","investment":1000,"holding_days":3,"model":%q}`, tt.model)
		rec := do(t, newTestServer(stubAnalyzer{}), http.MethodPost, "/api/analyze", body)
		require.Equal(t, http.StatusOK, rec.Code, tt.model)

		var got model.Analysis
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, tt.want, got.Model, tt.model)
	}
}

func TestAnalyze_UnknownModel(t *testing.T) {
	rec := do(t, newTestServer(stubAnalyzer{}), http.MethodPost, "/api/analyze",
		`{"symbol":"Infosys","investment":1000,"holding_days":3,"model":"ARIMA"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, model.KindInvalidInput, got.Kind)
	assert.Contains(t, got.Message, "ARIMA")
}

func TestAnalyze_BadBody(t *testing.T) {
	rec := do(t, newTestServer(stubAnalyzer{}), http.MethodPost, "/api/analyze", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	now := time.Now().UTC()
	f := &collector.MockFetcher{
		IntradayData: []model.PricePoint{},
		DailyData: []model.PricePoint{
			{Time: now.AddDate(0, 0, -2), Close: 100},
			{Time: now.AddDate(0, 0, -1), Close: 110},
		},
	}
	gw := collector.NewGateway(f, collector.GatewayOptions{}, zerolog.Nop())
	resolver := symbol.NewResolver(map[string]string{"Infosys": "INFY.NS"})
	a, err := engine.NewAnalyzer(gw, resolver, engine.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	s := New(Config{Log: zerolog.Nop(), Analyzer: a, Resolver: resolver})
	rec := do(t, s, http.MethodPost, "/api/analyze",
		`{"symbol":"infosys","investment":1000,"holding_days":7,"model":"LINEAR_TREND"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "INFY.NS", got.Symbol)
	assert.Equal(t, model.DecisionFavorable, got.Decision)
	assert.InDelta(t, 110.0, got.CurrentPrice, 1e-9)
	assert.InDelta(t, 148.5, got.ExpectedPrice, 1e-9)
	assert.NotEmpty(t, got.RequestID)
	assert.Len(t, got.PriceSeriesForChart, 2)
}
