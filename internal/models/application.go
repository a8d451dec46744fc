package models

// CreditCategory represents the creditworthiness band of an applicant
type CreditCategory string

const (
	CreditHigh   CreditCategory = "high"
	CreditMedium CreditCategory = "medium"
	CreditLow    CreditCategory = "low"
)

// DTICategory represents the debt-to-income band of an applicant
type DTICategory string

const (
	DTIExcellent DTICategory = "excellent"
	DTIGood      DTICategory = "good"
	DTIModerate  DTICategory = "moderate"
	DTIPoor      DTICategory = "poor"
)

// IsFavorable returns true for the two bands treated as low-risk debt levels
func (c DTICategory) IsFavorable() bool {
	return c == DTIExcellent || c == DTIGood
}

// EmploymentStability represents the employment-history band of an applicant.
// It is informational only; the decision rules test raw years directly.
type EmploymentStability string

const (
	EmploymentStable   EmploymentStability = "stable"
	EmploymentModerate EmploymentStability = "moderate"
	EmploymentUnstable EmploymentStability = "unstable"
)

// ApplicationProfile is the financial profile a single evaluation runs on.
// Values are taken as submitted: out-of-range inputs are not clamped here,
// they categorize deterministically downstream.
type ApplicationProfile struct {
	CreditScore     int     `json:"credit_score"`
	DebtAmount      float64 `json:"debt_amount"`
	AnnualIncome    float64 `json:"annual_income"`
	EmploymentYears int     `json:"employment_years"`
	LoanAmount      float64 `json:"loan_amount"`
}

// ValidationRequest carries the raw application fields checked against
// business limits. It is independent of the evaluation profile on purpose:
// validation never derives ratios or categories.
type ValidationRequest struct {
	LoanAmount      float64 `json:"loan_amount"`
	AnnualIncome    float64 `json:"annual_income"`
	CreditScore     int     `json:"credit_score"`
	EmploymentYears int     `json:"employment_years"`
	LoanPurpose     string  `json:"loan_purpose"`
}
