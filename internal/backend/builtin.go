package backend

import (
	"context"

	"github.com/terra-clan/loan-engine/internal/engine"
	"github.com/terra-clan/loan-engine/internal/models"
	"github.com/terra-clan/loan-engine/internal/rules"
)

// Builtin serves every query from the in-process procedural engine. It is
// total: no call path returns an error, so it is always a safe fallback.
type Builtin struct {
	manifest *rules.Manifest
}

// NewBuiltin creates the built-in backend over the given manifest
func NewBuiltin(manifest *rules.Manifest) *Builtin {
	if manifest == nil {
		manifest = rules.Default()
	}
	return &Builtin{manifest: manifest}
}

// Name returns the fallback method tag
func (b *Builtin) Name() string {
	return models.MethodFallback
}

// Initialize is a no-op: the built-in rules are compiled in
func (b *Builtin) Initialize(_ context.Context) error {
	return nil
}

// Evaluate runs the decision cascade
func (b *Builtin) Evaluate(_ context.Context, profile models.ApplicationProfile) (models.EvaluationResult, error) {
	result := engine.Decide(profile)
	result.EvaluationMethod = models.MethodFallback
	return result, nil
}

// Validate runs the accumulating business validator
func (b *Builtin) Validate(_ context.Context, req models.ValidationRequest) (models.ValidationResult, error) {
	result := engine.Validate(req, b.manifest.BusinessLimits())
	result.ValidationMethod = models.MethodFallback
	return result, nil
}

// BusinessLimits returns the manifest's fallback limits table
func (b *Builtin) BusinessLimits(_ context.Context) (models.BusinessLimits, error) {
	return b.manifest.BusinessLimits(), nil
}

// HealthCheck always succeeds: the engine is in-process and stateless
func (b *Builtin) HealthCheck(_ context.Context) error {
	return nil
}
