package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/loan-engine/internal/api"
	"github.com/terra-clan/loan-engine/internal/backend"
	"github.com/terra-clan/loan-engine/internal/config"
	"github.com/terra-clan/loan-engine/internal/rules"
)

func newEngine(t *testing.T) *httptest.Server {
	t.Helper()

	selector := backend.NewSelector(nil, backend.NewBuiltin(rules.Default()))
	selector.Initialize(context.Background())

	srv := api.NewServer(config.ServerConfig{
		RequestTimeout: 5 * time.Second,
		AllowedOrigins: []string{"*"},
	}, selector)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestClientEvaluate(t *testing.T) {
	ts := newEngine(t)
	c := NewClient(ts.URL)

	result, err := c.Evaluate(context.Background(), EvaluateRequest{
		CreditScore:     780,
		DebtAmount:      500,
		AnnualIncome:    60000,
		EmploymentYears: 5,
		LoanAmount:      15000,
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", result.Result)
	assert.Equal(t, "high_credit_excellent_dti", result.RuleID)
	assert.Equal(t, 95.0, result.Confidence)
	assert.Equal(t, "fallback", result.EvaluationMethod)
}

func TestClientValidate(t *testing.T) {
	ts := newEngine(t)
	c := NewClient(ts.URL)

	result, err := c.Validate(context.Background(), ValidateRequest{
		LoanAmount:      0,
		AnnualIncome:    50000,
		CreditScore:     700,
		EmploymentYears: 2,
		LoanPurpose:     "",
	})
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Equal(t, []string{
		"Loan amount must be greater than 0.",
		"Please specify the loan purpose.",
	}, result.Errors)
	assert.Equal(t, "fallback", result.ValidationMethod)
}

func TestClientDetails(t *testing.T) {
	ts := newEngine(t)
	c := NewClient(ts.URL)

	details, err := c.Details(context.Background(), EvaluateRequest{
		CreditScore:     700,
		DebtAmount:      15000,
		AnnualIncome:    60000,
		EmploymentYears: 4,
		LoanAmount:      20000,
	})
	require.NoError(t, err)

	assert.Equal(t, "medium", details.CreditCategory)
	assert.Equal(t, 25.0, details.DTIRatio)
	assert.Equal(t, "good", details.DTICategory)
	assert.Equal(t, "stable", details.EmploymentStability)
}

func TestClientBusinessLimits(t *testing.T) {
	ts := newEngine(t)
	c := NewClient(ts.URL)

	limits, err := c.BusinessLimits(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1000.0, limits.MinLoanAmount)
	assert.Equal(t, 1000000.0, limits.MaxLoanAmount)
	assert.Equal(t, 300, limits.MinCreditScore)
	assert.Equal(t, 850, limits.MaxCreditScore)
}

func TestClientHealth(t *testing.T) {
	ts := newEngine(t)
	c := NewClient(ts.URL)

	require.NoError(t, c.Health(context.Background()))
}

func TestClientErrorEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "error": {"code": "invalid_request", "message": "invalid request body"}}`))
	}))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL)
	_, err := c.Evaluate(context.Background(), EvaluateRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_request")
}
