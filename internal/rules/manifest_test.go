package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeManifest(t, `
rulebase:
  name: loan_underwriting
  version: "2"
limits:
  min_loan_amount: 500
  max_loan_amount: 250000
  min_credit_score: 300
  max_credit_score: 850
`)

	m, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if m.Rulebase.Name != "loan_underwriting" {
		t.Errorf("rulebase name = %s", m.Rulebase.Name)
	}
	if m.Rulebase.Version != "2" {
		t.Errorf("rulebase version = %s", m.Rulebase.Version)
	}
	if m.Limits.MinLoanAmount != 500 || m.Limits.MaxLoanAmount != 250000 {
		t.Errorf("loan limits = %v..%v", m.Limits.MinLoanAmount, m.Limits.MaxLoanAmount)
	}
}

func TestLoadFromFileRejectsBadLimits(t *testing.T) {
	path := writeManifest(t, `
rulebase:
  name: loan_underwriting
limits:
  min_loan_amount: 5000
  max_loan_amount: 100
  min_credit_score: 300
  max_credit_score: 850
`)

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected validation error for inverted loan limits")
	}
}

func TestLoadFromFileRejectsMissingName(t *testing.T) {
	path := writeManifest(t, `
limits:
  min_loan_amount: 100
  max_loan_amount: 1000
  min_credit_score: 300
  max_credit_score: 850
`)

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected validation error for missing rulebase name")
	}
}

func TestLoadOrDefault(t *testing.T) {
	// Missing file falls back to the compiled-in defaults
	m, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if m.Limits.MinCreditScore != 300 || m.Limits.MaxCreditScore != 850 {
		t.Errorf("default credit limits = %d..%d", m.Limits.MinCreditScore, m.Limits.MaxCreditScore)
	}

	// Empty path also yields defaults
	m, err = LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault with empty path failed: %v", err)
	}
	if m.Rulebase.Name == "" {
		t.Error("default manifest must name a rulebase")
	}

	// A present but broken manifest is a hard error
	bad := writeManifest(t, "rulebase: [")
	if _, err := LoadOrDefault(bad); err == nil {
		t.Fatal("expected parse error for broken manifest")
	}
}

func TestBusinessLimitsTagsFallbackSource(t *testing.T) {
	limits := Default().BusinessLimits()
	if limits.Source != "fallback" {
		t.Errorf("source = %s, want fallback", limits.Source)
	}
	if limits.MinLoanAmount != 1000 || limits.MaxLoanAmount != 1000000 {
		t.Errorf("default loan limits = %v..%v", limits.MinLoanAmount, limits.MaxLoanAmount)
	}
}
