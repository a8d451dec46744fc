package engine

import "math"

// Two zero-income conventions coexist here and must stay separate. The
// reporting pair (DebtToIncome, LoanToIncome) returns 0 when income is
// non-positive, matching what the primary evaluation path echoes back.
// The decision pair returns 100, so a zero-income applicant is decided
// as poor-DTI rather than excellent-DTI. Unifying them would silently
// change which band such an applicant lands in.

// DebtToIncome returns the debt-to-income ratio as a percentage, 0 when
// income is non-positive. Reporting convention.
func DebtToIncome(debt, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return debt / income * 100
}

// LoanToIncome returns the loan-to-income ratio as a percentage, 0 when
// income is non-positive. Reporting convention.
func LoanToIncome(loan, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return loan / income * 100
}

// DecisionDebtToIncome returns the debt-to-income ratio used by the
// built-in decision cascade, 100 when income is non-positive.
func DecisionDebtToIncome(debt, income float64) float64 {
	if income <= 0 {
		return 100
	}
	return debt / income * 100
}

// DecisionLoanToIncome returns the loan-to-income ratio used by the
// built-in decision cascade, 100 when income is non-positive.
func DecisionLoanToIncome(loan, income float64) float64 {
	if income <= 0 {
		return 100
	}
	return loan / income * 100
}

// Round2 rounds to two decimal places. Presentation only: decision
// comparisons always run on unrounded values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
