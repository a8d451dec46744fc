package engine

import "github.com/terra-clan/loan-engine/internal/models"

// Details returns the presentation breakdown of a profile: both ratios,
// both categories and the employment stability band. Ratios use the
// reporting convention (0 at zero income), rounded to two decimals.
func Details(profile models.ApplicationProfile) models.EvaluationDetails {
	dti := DebtToIncome(profile.DebtAmount, profile.AnnualIncome)
	lti := LoanToIncome(profile.LoanAmount, profile.AnnualIncome)

	return models.EvaluationDetails{
		CreditScore:         profile.CreditScore,
		CreditCategory:      CreditCategoryOf(profile.CreditScore),
		DebtAmount:          profile.DebtAmount,
		AnnualIncome:        profile.AnnualIncome,
		DTIRatio:            Round2(dti),
		DTICategory:         DTICategoryOf(dti),
		LoanAmount:          profile.LoanAmount,
		LoanToIncomeRatio:   Round2(lti),
		EmploymentYears:     profile.EmploymentYears,
		EmploymentStability: EmploymentStabilityOf(profile.EmploymentYears),
	}
}
