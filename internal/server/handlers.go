package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"TradeBuddy/internal/engine"
	"TradeBuddy/internal/model"
	"TradeBuddy/internal/notifier"
)

type symbolEntry struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}

type errorResponse struct {
	Error   bool       `json:"error"`
	Kind    model.Kind `json:"kind"`
	Message string     `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"provider":  s.provider,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	names := s.resolver.Names()
	out := make([]symbolEntry, 0, len(names))
	for _, name := range names {
		ticker, _ := s.resolver.Lookup(name)
		out = append(out, symbolEntry{Name: name, Ticker: ticker})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		msg := "request body must be JSON with symbol, investment and holding_days"
		if errors.Is(err, model.ErrInvalidInput) {
			msg = err.Error()
		}
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:   true,
			Kind:    model.KindInvalidInput,
			Message: msg,
		})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		kind := model.KindOf(err)
		s.log.Warn().Err(err).Str("symbol", req.Symbol).Str("kind", string(kind)).Msg("analysis failed")
		s.respondJSON(w, statusFor(kind), errorResponse{
			Error:   true,
			Kind:    kind,
			Message: notifier.FailureMessage(err),
		})
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// statusFor maps an error kind to an HTTP status.
func statusFor(k model.Kind) int {
	switch k {
	case model.KindInvalidSymbol, model.KindInvalidInput:
		return http.StatusBadRequest
	case model.KindDataUnavailable:
		return http.StatusServiceUnavailable
	case model.KindInsufficientData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
