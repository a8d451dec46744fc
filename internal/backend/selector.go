package backend

import (
	"context"
	"errors"
	"log/slog"

	"github.com/terra-clan/loan-engine/internal/metrics"
	"github.com/terra-clan/loan-engine/internal/models"
)

// Mode is the process-level state of the selector
type Mode string

const (
	ModeUninitialized Mode = "uninitialized"
	ModeInitializing  Mode = "initializing"

	// ModeReady means the external backend answered the startup handshake.
	// Individual calls may still fall back without leaving this mode.
	ModeReady Mode = "ready"

	// ModeFallbackOnly means the external backend is absent or failed the
	// handshake; every call for the process lifetime is served built-in.
	// There is no retry-on-call: one failed handshake at startup must not
	// become a failed handshake per request.
	ModeFallbackOnly Mode = "fallback_only"
)

// Selector presents one evaluation/validation contract while routing to
// the external rule backend first and the built-in engine on failure.
//
// The mode is written once during Initialize, before the engine accepts
// calls, and only read afterwards; that safe-publication is the only
// synchronization it needs.
type Selector struct {
	primary Backend
	builtin *Builtin
	mode    Mode
}

// NewSelector creates an uninitialized selector. primary may be nil when
// no external rule server is configured.
func NewSelector(primary Backend, builtin *Builtin) *Selector {
	return &Selector{
		primary: primary,
		builtin: builtin,
		mode:    ModeUninitialized,
	}
}

// Initialize attempts the external backend handshake exactly once and
// fixes the process-level mode. Must complete before Evaluate/Validate
// are called.
func (s *Selector) Initialize(ctx context.Context) {
	s.mode = ModeInitializing

	if s.primary == nil {
		slog.Info("no external rule backend configured, using built-in evaluator")
		s.mode = ModeFallbackOnly
		return
	}

	if err := s.primary.Initialize(ctx); err != nil {
		slog.Warn("external rule backend unavailable, using built-in evaluator",
			"error", err,
		)
		metrics.BackendUp.Set(0)
		s.mode = ModeFallbackOnly
		return
	}

	slog.Info("external rule backend initialized")
	metrics.BackendUp.Set(1)
	s.mode = ModeReady
}

// Mode returns the process-level backend mode
func (s *Selector) Mode() Mode {
	return s.mode
}

// Ready reports whether initialization has completed (in either mode)
func (s *Selector) Ready() bool {
	return s.mode == ModeReady || s.mode == ModeFallbackOnly
}

// Evaluate runs the decision query, external first. It cannot fail: any
// backend error degrades to the built-in cascade for this call only and
// shows up solely in the result's evaluation_method.
func (s *Selector) Evaluate(ctx context.Context, profile models.ApplicationProfile) models.EvaluationResult {
	if s.mode == ModeReady {
		result, err := s.primary.Evaluate(ctx, profile)
		if err == nil {
			metrics.EvaluationsTotal.WithLabelValues(string(result.Result), result.EvaluationMethod).Inc()
			return result
		}
		s.logFallback("evaluate", err)
	}

	result, _ := s.builtin.Evaluate(ctx, profile)
	metrics.EvaluationsTotal.WithLabelValues(string(result.Result), result.EvaluationMethod).Inc()
	return result
}

// Validate checks the request against business limits, external first
func (s *Selector) Validate(ctx context.Context, req models.ValidationRequest) models.ValidationResult {
	if s.mode == ModeReady {
		result, err := s.primary.Validate(ctx, req)
		if err == nil {
			metrics.ValidationsTotal.WithLabelValues(verdict(result.Valid), result.ValidationMethod).Inc()
			return result
		}
		s.logFallback("validate", err)
	}

	result, _ := s.builtin.Validate(ctx, req)
	metrics.ValidationsTotal.WithLabelValues(verdict(result.Valid), result.ValidationMethod).Inc()
	return result
}

// BusinessLimits returns the current limits, queried from the external
// backend when ready, else the fallback table. Recomputed per call.
func (s *Selector) BusinessLimits(ctx context.Context) models.BusinessLimits {
	if s.mode == ModeReady {
		limits, err := s.primary.BusinessLimits(ctx)
		if err == nil {
			return limits
		}
		s.logFallback("limits", err)
	}

	limits, _ := s.builtin.BusinessLimits(ctx)
	return limits
}

func (s *Selector) logFallback(operation string, err error) {
	metrics.BackendFallbacksTotal.WithLabelValues(operation).Inc()

	if errors.Is(err, ErrNoSolution) {
		slog.Debug("rule backend derived no solution, falling back",
			"operation", operation,
		)
		return
	}

	slog.Warn("rule backend query failed, falling back",
		"operation", operation,
		"error", err,
	)
}

func verdict(valid bool) string {
	if valid {
		return "true"
	}
	return "false"
}
