// Package backend selects between the external symbolic rule evaluator
// and the built-in procedural engine behind one contract, so callers are
// backend-agnostic. The external backend is tried first; any failure is
// absorbed by falling back, never surfaced as an error.
package backend

import (
	"context"
	"errors"

	"github.com/terra-clan/loan-engine/internal/models"
)

// ErrNoSolution means the rule backend answered but derived no
// decision for the query. The selector falls back for that call only.
var ErrNoSolution = errors.New("rule backend returned no solution")

// Backend is one interchangeable evaluator/validator implementation
type Backend interface {
	// Name returns the method tag stamped on results this backend serves
	Name() string

	// Initialize performs the backend's one-time startup handshake
	Initialize(ctx context.Context) error

	// Evaluate runs the five-signal decision query
	Evaluate(ctx context.Context, profile models.ApplicationProfile) (models.EvaluationResult, error)

	// Validate checks raw application fields against business limits
	Validate(ctx context.Context, req models.ValidationRequest) (models.ValidationResult, error)

	// BusinessLimits returns the limits table this backend answers with
	BusinessLimits(ctx context.Context) (models.BusinessLimits, error)

	// HealthCheck reports whether the backend can currently serve queries
	HealthCheck(ctx context.Context) error
}
