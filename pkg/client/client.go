// Package client is a Go SDK for the loan-engine API, intended for the
// host application layer that owns users, persistence and presentation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a loan-engine instance
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new loan-engine client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// EvaluationResult is the structured outcome of an evaluation
type EvaluationResult struct {
	Result           string  `json:"result"`
	RuleID           string  `json:"rule_id"`
	Explanation      string  `json:"explanation"`
	Confidence       float64 `json:"confidence"`
	DTIRatio         float64 `json:"dti_ratio"`
	CreditCategory   string  `json:"credit_category"`
	DTICategory      string  `json:"dti_category"`
	EvaluationMethod string  `json:"evaluation_method"`
}

// ValidationResult reports business-limit violations in check order
type ValidationResult struct {
	Valid            bool     `json:"valid"`
	Errors           []string `json:"errors"`
	ValidationMethod string   `json:"validation_method"`
}

// BusinessLimits are the engine's configured application bounds
type BusinessLimits struct {
	MinLoanAmount  float64 `json:"min_loan_amount"`
	MaxLoanAmount  float64 `json:"max_loan_amount"`
	MinCreditScore int     `json:"min_credit_score"`
	MaxCreditScore int     `json:"max_credit_score"`
	Source         string  `json:"source"`
}

// EvaluationDetails is the audit breakdown of a profile
type EvaluationDetails struct {
	CreditScore         int     `json:"credit_score"`
	CreditCategory      string  `json:"credit_category"`
	DebtAmount          float64 `json:"debt_amount"`
	AnnualIncome        float64 `json:"annual_income"`
	DTIRatio            float64 `json:"dti_ratio"`
	DTICategory         string  `json:"dti_category"`
	LoanAmount          float64 `json:"loan_amount"`
	LoanToIncomeRatio   float64 `json:"loan_to_income_ratio"`
	EmploymentYears     int     `json:"employment_years"`
	EmploymentStability string  `json:"employment_stability"`
}

// EvaluateRequest carries the five numeric evaluation signals
type EvaluateRequest struct {
	CreditScore     int     `json:"credit_score"`
	DebtAmount      float64 `json:"debt_amount"`
	AnnualIncome    float64 `json:"annual_income"`
	EmploymentYears int     `json:"employment_years"`
	LoanAmount      float64 `json:"loan_amount"`
}

// ValidateRequest carries the raw fields checked against business limits
type ValidateRequest struct {
	LoanAmount      float64 `json:"loan_amount"`
	AnnualIncome    float64 `json:"annual_income"`
	CreditScore     int     `json:"credit_score"`
	EmploymentYears int     `json:"employment_years"`
	LoanPurpose     string  `json:"loan_purpose"`
}

// Evaluate runs a loan evaluation
func (c *Client) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluationResult, error) {
	var result EvaluationResult
	if err := c.post(ctx, "/api/v1/evaluate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks an application against business limits
func (c *Client) Validate(ctx context.Context, req ValidateRequest) (*ValidationResult, error) {
	var result ValidationResult
	if err := c.post(ctx, "/api/v1/validate", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Details returns the audit breakdown of a profile
func (c *Client) Details(ctx context.Context, req EvaluateRequest) (*EvaluationDetails, error) {
	var details EvaluationDetails
	if err := c.post(ctx, "/api/v1/details", req, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// BusinessLimits returns the engine's current business limits
func (c *Client) BusinessLimits(ctx context.Context) (*BusinessLimits, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/v1/limits", nil)
	if err != nil {
		return nil, err
	}

	var limits BusinessLimits
	if err := decodeEnvelope(body, &limits); err != nil {
		return nil, err
	}
	return &limits, nil
}

// Health checks whether the engine is reachable
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	return decodeEnvelope(resp, out)
}

func decodeEnvelope(body []byte, out interface{}) error {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !envelope.Success {
		if envelope.Error != nil {
			return fmt.Errorf("api error %s: %s", envelope.Error.Code, envelope.Error.Message)
		}
		return fmt.Errorf("api request failed")
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The body may still carry a structured error envelope
		var probe struct {
			Error *struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBody, &probe) == nil && probe.Error != nil {
			return nil, fmt.Errorf("api error %s: %s", probe.Error.Code, probe.Error.Message)
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return respBody, nil
}
