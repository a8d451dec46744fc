package models

// Decision is the final outcome of a loan evaluation
type Decision string

const (
	DecisionApproved    Decision = "approved"
	DecisionConditional Decision = "conditional"
	DecisionRejected    Decision = "rejected"
)

// Evaluation/validation method tags identify which backend served a call
const (
	MethodExternal = "external"
	MethodFallback = "fallback"
)

// RuleID identifies the decision rule that produced a result. The set is
// fixed; callers may assert on it for audit purposes.
type RuleID string

// EvaluationResult is the structured outcome of one evaluation call.
// Explanation and confidence are fixed per matched rule, not computed
// from the inputs. DTIRatio is rounded to two decimals for presentation.
type EvaluationResult struct {
	Result           Decision       `json:"result"`
	RuleID           RuleID         `json:"rule_id"`
	Explanation      string         `json:"explanation"`
	Confidence       float64        `json:"confidence"`
	DTIRatio         float64        `json:"dti_ratio"`
	CreditCategory   CreditCategory `json:"credit_category"`
	DTICategory      DTICategory    `json:"dti_category"`
	EvaluationMethod string         `json:"evaluation_method"`
}

// ValidationResult reports business-limit violations in the order the
// fields are checked. Valid is true iff Errors is empty.
type ValidationResult struct {
	Valid            bool     `json:"valid"`
	Errors           []string `json:"errors"`
	ValidationMethod string   `json:"validation_method"`
}

// BusinessLimits are the configured bounds applications are checked
// against. They are re-read on every call, never cached: a live rule
// backend may change them at runtime.
type BusinessLimits struct {
	MinLoanAmount  float64 `json:"min_loan_amount"`
	MaxLoanAmount  float64 `json:"max_loan_amount"`
	MinCreditScore int     `json:"min_credit_score"`
	MaxCreditScore int     `json:"max_credit_score"`
	Source         string  `json:"source"`
}

// EvaluationDetails is the audit/presentation breakdown of a profile.
// Ratios here use the reporting convention (0 at zero income).
type EvaluationDetails struct {
	CreditScore         int                 `json:"credit_score"`
	CreditCategory      CreditCategory      `json:"credit_category"`
	DebtAmount          float64             `json:"debt_amount"`
	AnnualIncome        float64             `json:"annual_income"`
	DTIRatio            float64             `json:"dti_ratio"`
	DTICategory         DTICategory         `json:"dti_category"`
	LoanAmount          float64             `json:"loan_amount"`
	LoanToIncomeRatio   float64             `json:"loan_to_income_ratio"`
	EmploymentYears     int                 `json:"employment_years"`
	EmploymentStability EmploymentStability `json:"employment_stability"`
}
