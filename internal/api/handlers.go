package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/terra-clan/loan-engine/internal/engine"
	"github.com/terra-clan/loan-engine/internal/models"
)

// Selector is the backend-agnostic evaluation contract this server
// exposes. Satisfied by backend.Selector.
type Selector interface {
	Evaluate(ctx context.Context, profile models.ApplicationProfile) models.EvaluationResult
	Validate(ctx context.Context, req models.ValidationRequest) models.ValidationResult
	BusinessLimits(ctx context.Context) models.BusinessLimits
	Ready() bool
}

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	// Ready once backend selection has completed, in either mode
	if !s.selector.Ready() {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "backend selection not completed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Evaluation handlers

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var profile models.ApplicationProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// The engine is total: out-of-range values categorize instead of
	// erroring, so there is nothing to reject here.
	result := s.selector.Evaluate(r.Context(), profile)

	slog.Info("application evaluated",
		"result", result.Result,
		"rule", result.RuleID,
		"confidence", result.Confidence,
		"method", result.EvaluationMethod,
		"request_id", requestIDFrom(r.Context()),
	)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result := s.selector.Validate(r.Context(), req)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	var profile models.ApplicationProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	respondJSON(w, http.StatusOK, engine.Details(profile))
}

func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.selector.BusinessLimits(r.Context()))
}
