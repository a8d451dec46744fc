// Package rules loads the rulebase manifest: the name and version of the
// rule program the external backend is expected to serve, plus the
// business-limits table the built-in backend answers with. The manifest
// is read once at startup; a live external backend may still serve
// different limits per call.
package rules

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/loan-engine/internal/models"
)

// Manifest describes the rulebase and the fallback business limits
type Manifest struct {
	Rulebase RulebaseInfo `yaml:"rulebase"`
	Limits   LimitsTable  `yaml:"limits"`
}

// RulebaseInfo identifies the rule program
type RulebaseInfo struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LimitsTable holds the configured business limits
type LimitsTable struct {
	MinLoanAmount  float64 `yaml:"min_loan_amount"`
	MaxLoanAmount  float64 `yaml:"max_loan_amount"`
	MinCreditScore int     `yaml:"min_credit_score"`
	MaxCreditScore int     `yaml:"max_credit_score"`
}

// Default returns the compiled-in manifest used when no file is present
func Default() *Manifest {
	return &Manifest{
		Rulebase: RulebaseInfo{
			Name:    "loan_underwriting",
			Version: "1",
		},
		Limits: LimitsTable{
			MinLoanAmount:  1000,
			MaxLoanAmount:  1000000,
			MinCreditScore: 300,
			MaxCreditScore: 850,
		},
	}
}

// LoadFromFile loads and validates a manifest from a YAML file
func LoadFromFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	slog.Info("rulebase manifest loaded",
		"path", path,
		"rulebase", m.Rulebase.Name,
		"version", m.Rulebase.Version,
	)

	return &m, nil
}

// LoadOrDefault loads the manifest from path, falling back to the
// compiled-in defaults when the file does not exist. Any other read or
// parse failure is returned: a present but broken manifest is a
// configuration error, not a fallback case.
func LoadOrDefault(path string) (*Manifest, error) {
	if path == "" {
		return Default(), nil
	}

	m, err := LoadFromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("rulebase manifest not found, using defaults", "path", path)
			return Default(), nil
		}
		return nil, err
	}

	return m, nil
}

func (m *Manifest) validate() error {
	if m.Rulebase.Name == "" {
		return fmt.Errorf("rulebase name is required")
	}
	if m.Limits.MinLoanAmount < 0 {
		return fmt.Errorf("min_loan_amount cannot be negative")
	}
	if m.Limits.MaxLoanAmount <= m.Limits.MinLoanAmount {
		return fmt.Errorf("max_loan_amount must be greater than min_loan_amount")
	}
	if m.Limits.MaxCreditScore <= m.Limits.MinCreditScore {
		return fmt.Errorf("max_credit_score must be greater than min_credit_score")
	}
	return nil
}

// BusinessLimits converts the manifest table into the result value the
// built-in backend serves, tagged with the fallback method.
func (m *Manifest) BusinessLimits() models.BusinessLimits {
	return models.BusinessLimits{
		MinLoanAmount:  m.Limits.MinLoanAmount,
		MaxLoanAmount:  m.Limits.MaxLoanAmount,
		MinCreditScore: m.Limits.MinCreditScore,
		MaxCreditScore: m.Limits.MaxCreditScore,
		Source:         models.MethodFallback,
	}
}
