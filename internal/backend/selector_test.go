package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/loan-engine/internal/models"
	"github.com/terra-clan/loan-engine/internal/rules"
)

// stubBackend scripts the primary backend's behavior per call
type stubBackend struct {
	initErr     error
	evalErr     error
	evalResult  models.EvaluationResult
	validateErr error
	limitsErr   error
	evalCalls   int
}

func (s *stubBackend) Name() string { return models.MethodExternal }

func (s *stubBackend) Initialize(context.Context) error { return s.initErr }

func (s *stubBackend) HealthCheck(context.Context) error { return nil }

func (s *stubBackend) Evaluate(context.Context, models.ApplicationProfile) (models.EvaluationResult, error) {
	s.evalCalls++
	if s.evalErr != nil {
		return models.EvaluationResult{}, s.evalErr
	}
	return s.evalResult, nil
}

func (s *stubBackend) Validate(context.Context, models.ValidationRequest) (models.ValidationResult, error) {
	if s.validateErr != nil {
		return models.ValidationResult{}, s.validateErr
	}
	return models.ValidationResult{Valid: true, ValidationMethod: models.MethodExternal}, nil
}

func (s *stubBackend) BusinessLimits(context.Context) (models.BusinessLimits, error) {
	if s.limitsErr != nil {
		return models.BusinessLimits{}, s.limitsErr
	}
	return models.BusinessLimits{MinLoanAmount: 500, MaxLoanAmount: 99999, MinCreditScore: 300, MaxCreditScore: 850, Source: models.MethodExternal}, nil
}

var testProfile = models.ApplicationProfile{
	CreditScore:     780,
	DebtAmount:      500,
	AnnualIncome:    60000,
	EmploymentYears: 5,
	LoanAmount:      15000,
}

func TestSelectorWithoutExternalBackend(t *testing.T) {
	s := NewSelector(nil, NewBuiltin(rules.Default()))
	require.Equal(t, ModeUninitialized, s.Mode())
	require.False(t, s.Ready())

	s.Initialize(context.Background())
	require.Equal(t, ModeFallbackOnly, s.Mode())
	require.True(t, s.Ready())

	result := s.Evaluate(context.Background(), testProfile)
	assert.Equal(t, models.MethodFallback, result.EvaluationMethod)
	assert.Equal(t, models.DecisionApproved, result.Result)
}

func TestSelectorFallbackOnlyIsPermanent(t *testing.T) {
	stub := &stubBackend{
		initErr:    errors.New("connection refused"),
		evalResult: models.EvaluationResult{Result: models.DecisionApproved, EvaluationMethod: models.MethodExternal},
	}

	s := NewSelector(stub, NewBuiltin(rules.Default()))
	s.Initialize(context.Background())
	require.Equal(t, ModeFallbackOnly, s.Mode())

	// The backend would now answer, but a failed handshake is final:
	// the external backend is never queried again in this process.
	stub.initErr = nil
	for i := 0; i < 5; i++ {
		result := s.Evaluate(context.Background(), testProfile)
		assert.Equal(t, models.MethodFallback, result.EvaluationMethod)

		validation := s.Validate(context.Background(), models.ValidationRequest{LoanAmount: 1, AnnualIncome: 1, CreditScore: 700, LoanPurpose: "car"})
		assert.Equal(t, models.MethodFallback, validation.ValidationMethod)
	}
	assert.Zero(t, stub.evalCalls)
}

func TestSelectorServesExternalWhenReady(t *testing.T) {
	stub := &stubBackend{
		evalResult: models.EvaluationResult{
			Result:           models.DecisionConditional,
			Explanation:      "served by rule server",
			Confidence:       75,
			EvaluationMethod: models.MethodExternal,
		},
	}

	s := NewSelector(stub, NewBuiltin(rules.Default()))
	s.Initialize(context.Background())
	require.Equal(t, ModeReady, s.Mode())

	result := s.Evaluate(context.Background(), testProfile)
	assert.Equal(t, models.MethodExternal, result.EvaluationMethod)
	assert.Equal(t, models.DecisionConditional, result.Result)
	assert.Equal(t, "served by rule server", result.Explanation)

	limits := s.BusinessLimits(context.Background())
	assert.Equal(t, models.MethodExternal, limits.Source)
	assert.Equal(t, 500.0, limits.MinLoanAmount)
}

func TestSelectorPerCallFallback(t *testing.T) {
	stub := &stubBackend{
		evalResult: models.EvaluationResult{Result: models.DecisionApproved, EvaluationMethod: models.MethodExternal},
	}

	s := NewSelector(stub, NewBuiltin(rules.Default()))
	s.Initialize(context.Background())
	require.Equal(t, ModeReady, s.Mode())

	// Transient query failure degrades this call only
	stub.evalErr = errors.New("query timeout")
	result := s.Evaluate(context.Background(), testProfile)
	assert.Equal(t, models.MethodFallback, result.EvaluationMethod)
	assert.Equal(t, ModeReady, s.Mode())

	// Next call goes external again
	stub.evalErr = nil
	result = s.Evaluate(context.Background(), testProfile)
	assert.Equal(t, models.MethodExternal, result.EvaluationMethod)
}

func TestSelectorFallsBackOnNoSolution(t *testing.T) {
	stub := &stubBackend{evalErr: ErrNoSolution, validateErr: ErrNoSolution, limitsErr: errors.New("no limits")}

	s := NewSelector(stub, NewBuiltin(rules.Default()))
	s.Initialize(context.Background())

	result := s.Evaluate(context.Background(), testProfile)
	assert.Equal(t, models.MethodFallback, result.EvaluationMethod)
	// The built-in cascade decided, so the result is fully populated
	assert.Equal(t, models.DecisionApproved, result.Result)
	assert.Equal(t, 95.0, result.Confidence)

	validation := s.Validate(context.Background(), models.ValidationRequest{LoanAmount: 5000, AnnualIncome: 40000, CreditScore: 700, EmploymentYears: 2, LoanPurpose: "car"})
	assert.Equal(t, models.MethodFallback, validation.ValidationMethod)
	assert.True(t, validation.Valid)

	limits := s.BusinessLimits(context.Background())
	assert.Equal(t, models.MethodFallback, limits.Source)
	assert.Equal(t, 1000.0, limits.MinLoanAmount)
}
