package engine

import (
	"fmt"
	"strings"

	"github.com/terra-clan/loan-engine/internal/models"
)

// Validate checks raw application fields against business limits. Checks
// run in a fixed order and accumulate: a request violating three checks
// reports three messages. Validation never derives ratios or categories;
// out-of-range values that the cascade would absorb are reportable here.
func Validate(req models.ValidationRequest, limits models.BusinessLimits) models.ValidationResult {
	var errs []string

	if req.LoanAmount <= 0 {
		errs = append(errs, "Loan amount must be greater than 0.")
	}
	if req.AnnualIncome <= 0 {
		errs = append(errs, "Annual income must be greater than 0.")
	}
	if req.CreditScore < limits.MinCreditScore || req.CreditScore > limits.MaxCreditScore {
		errs = append(errs, fmt.Sprintf("Credit score must be between %d and %d.", limits.MinCreditScore, limits.MaxCreditScore))
	}
	if req.EmploymentYears < 0 {
		errs = append(errs, "Employment years cannot be negative.")
	}
	if strings.TrimSpace(req.LoanPurpose) == "" {
		errs = append(errs, "Please specify the loan purpose.")
	}

	return models.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
