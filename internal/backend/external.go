package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/terra-clan/loan-engine/internal/engine"
	"github.com/terra-clan/loan-engine/internal/models"
)

const defaultQueryTimeout = 10 * time.Second

// External queries a remote symbolic rule server over HTTP. The server
// holds the rulebase; each evaluation is a query with the five numeric
// signals expected to bind zero or one solutions.
type External struct {
	baseURL    string
	rulebase   string
	httpClient *http.Client
}

// Option configures the external backend
type Option func(*External)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(e *External) {
		e.httpClient = client
	}
}

// WithTimeout sets the per-query timeout
func WithTimeout(timeout time.Duration) Option {
	return func(e *External) {
		e.httpClient.Timeout = timeout
	}
}

// NewExternal creates a client for the rule server at baseURL. rulebase
// is the rule program the server must have loaded; the initialization
// handshake verifies it.
func NewExternal(baseURL, rulebase string, opts ...Option) *External {
	e := &External{
		baseURL:  baseURL,
		rulebase: rulebase,
		httpClient: &http.Client{
			Timeout: defaultQueryTimeout,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Name returns the external method tag
func (e *External) Name() string {
	return models.MethodExternal
}

type rulebaseInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	RulesCount int    `json:"rules_count"`
}

// Initialize performs the one-time startup handshake: it asks the server
// which rulebase is loaded and verifies it is the expected, non-empty
// one. Called once per process; failures make the selector fall back for
// the process lifetime.
func (e *External) Initialize(ctx context.Context) error {
	body, err := e.doRequest(ctx, http.MethodGet, "/v1/rulebase", nil)
	if err != nil {
		return fmt.Errorf("rulebase handshake: %w", err)
	}

	var info rulebaseInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return fmt.Errorf("rulebase handshake: failed to unmarshal response: %w", err)
	}

	if info.Name != e.rulebase {
		return fmt.Errorf("rulebase handshake: server has %q loaded, want %q", info.Name, e.rulebase)
	}
	if info.RulesCount == 0 {
		return fmt.Errorf("rulebase handshake: rulebase %q is empty", info.Name)
	}

	return nil
}

type evaluateQuery struct {
	CreditScore     int     `json:"credit_score"`
	DebtAmount      float64 `json:"debt_amount"`
	AnnualIncome    float64 `json:"annual_income"`
	EmploymentYears int     `json:"employment_years"`
	LoanAmount      float64 `json:"loan_amount"`
}

type evaluateSolution struct {
	Result      models.Decision `json:"result"`
	Explanation string          `json:"explanation"`
	Confidence  float64         `json:"confidence"`
	RuleID      models.RuleID   `json:"rule_id,omitempty"`
}

// Evaluate queries the rule server for a decision. The categories and
// the echoed ratio are derived locally with the reporting convention
// (dti 0 at zero income); the server binds result, explanation and
// confidence. Zero solutions yield ErrNoSolution.
func (e *External) Evaluate(ctx context.Context, profile models.ApplicationProfile) (models.EvaluationResult, error) {
	query := evaluateQuery{
		CreditScore:     profile.CreditScore,
		DebtAmount:      profile.DebtAmount,
		AnnualIncome:    profile.AnnualIncome,
		EmploymentYears: profile.EmploymentYears,
		LoanAmount:      profile.LoanAmount,
	}

	var solutions []evaluateSolution
	if err := e.query(ctx, "/v1/query/evaluate", query, &solutions); err != nil {
		return models.EvaluationResult{}, err
	}
	if len(solutions) == 0 {
		return models.EvaluationResult{}, ErrNoSolution
	}

	sol := solutions[0]
	dti := engine.DebtToIncome(profile.DebtAmount, profile.AnnualIncome)

	return models.EvaluationResult{
		Result:           sol.Result,
		RuleID:           sol.RuleID,
		Explanation:      sol.Explanation,
		Confidence:       sol.Confidence,
		DTIRatio:         engine.Round2(dti),
		CreditCategory:   engine.CreditCategoryOf(profile.CreditScore),
		DTICategory:      engine.DTICategoryOf(dti),
		EvaluationMethod: models.MethodExternal,
	}, nil
}

type validateSolution struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate queries the rule server's validation predicate
func (e *External) Validate(ctx context.Context, req models.ValidationRequest) (models.ValidationResult, error) {
	var solutions []validateSolution
	if err := e.query(ctx, "/v1/query/validate", req, &solutions); err != nil {
		return models.ValidationResult{}, err
	}
	if len(solutions) == 0 {
		return models.ValidationResult{}, ErrNoSolution
	}

	sol := solutions[0]
	return models.ValidationResult{
		Valid:            sol.Valid,
		Errors:           sol.Errors,
		ValidationMethod: models.MethodExternal,
	}, nil
}

// BusinessLimits fetches the server's current limits table. Called per
// request and never cached: the server may change limits at runtime.
func (e *External) BusinessLimits(ctx context.Context) (models.BusinessLimits, error) {
	body, err := e.doRequest(ctx, http.MethodGet, "/v1/limits", nil)
	if err != nil {
		return models.BusinessLimits{}, err
	}

	var limits models.BusinessLimits
	if err := json.Unmarshal(body, &limits); err != nil {
		return models.BusinessLimits{}, fmt.Errorf("failed to unmarshal limits: %w", err)
	}

	limits.Source = models.MethodExternal
	return limits, nil
}

// HealthCheck probes the rule server
func (e *External) HealthCheck(ctx context.Context) error {
	_, err := e.doRequest(ctx, http.MethodGet, "/v1/rulebase", nil)
	return err
}

// query posts a JSON query and decodes the solutions list from the
// response envelope.
func (e *External) query(ctx context.Context, path string, payload interface{}, solutions interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	resp, err := e.doRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	var envelope struct {
		Solutions json.RawMessage `json:"solutions"`
	}
	if err := json.Unmarshal(resp, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(envelope.Solutions) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Solutions, solutions); err != nil {
		return fmt.Errorf("failed to unmarshal solutions: %w", err)
	}

	return nil
}

// doRequest performs an HTTP request against the rule server
func (e *External) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, path)
	}

	return respBody, nil
}
