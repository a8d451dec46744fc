package engine

import "github.com/terra-clan/loan-engine/internal/models"

// ruleInput holds the derived signals the rule guards test.
type ruleInput struct {
	Credit          models.CreditCategory
	DTI             models.DTICategory
	EmploymentYears int
	LTI             float64
}

// decisionRule is one row of the cascade: a guard plus its fixed outcome.
type decisionRule struct {
	ID          models.RuleID
	Guard       func(in ruleInput) bool
	Decision    models.Decision
	Confidence  float64
	Explanation string
}

// decisionRules is evaluated top to bottom; the first true guard wins and
// later rows are unreachable for that input. Row order is part of the
// contract. The excessive_loan_to_income row tests only LTI: by the time
// it is reached, no credit/DTI combination above has matched (high credit
// with poor DTI, or a favorable DTI without the employment the earlier
// rows require).
var decisionRules = []decisionRule{
	{
		ID: "high_credit_excellent_dti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditHigh && in.DTI == models.DTIExcellent && in.EmploymentYears >= 3
		},
		Decision:    models.DecisionApproved,
		Confidence:  95,
		Explanation: "Excellent credit score combined with low debt-to-income ratio and stable employment indicates very low risk. Loan is approved.",
	},
	{
		ID: "high_credit_good_dti_low_lti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditHigh && in.DTI == models.DTIGood && in.EmploymentYears >= 3 && in.LTI < 30
		},
		Decision:    models.DecisionApproved,
		Confidence:  90,
		Explanation: "Strong credit history and manageable debt levels. The loan amount is reasonable relative to income. Approved.",
	},
	{
		ID: "high_credit_good_dti_high_lti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditHigh && in.DTI == models.DTIGood && in.EmploymentYears >= 3
		},
		Decision:    models.DecisionConditional,
		Confidence:  75,
		Explanation: "Good credit score but loan amount is high relative to income. Approved with conditions.",
	},
	{
		ID: "high_credit_moderate_dti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditHigh && in.DTI == models.DTIModerate
		},
		Decision:    models.DecisionConditional,
		Confidence:  75,
		Explanation: "Good credit score but debt-to-income ratio is slightly elevated. Loan approved with conditions such as additional documentation or co-signer.",
	},
	{
		ID: "medium_credit_excellent_dti_stable",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditMedium && in.DTI == models.DTIExcellent && in.EmploymentYears >= 3
		},
		Decision:    models.DecisionApproved,
		Confidence:  85,
		Explanation: "Good credit history with excellent debt management. Stable employment supports the loan approval.",
	},
	{
		ID: "medium_credit_good_dti_low_lti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditMedium && in.DTI == models.DTIGood && in.LTI < 25
		},
		Decision:    models.DecisionApproved,
		Confidence:  80,
		Explanation: "Acceptable credit score with manageable debt levels. Loan approved.",
	},
	{
		ID: "medium_credit_favorable_dti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditMedium && in.DTI.IsFavorable()
		},
		Decision:    models.DecisionConditional,
		Confidence:  70,
		Explanation: "Average credit score with reasonable debt levels. Additional documentation may be required.",
	},
	{
		ID: "medium_credit_moderate_dti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditMedium && in.DTI == models.DTIModerate
		},
		Decision:    models.DecisionConditional,
		Confidence:  65,
		Explanation: "Average credit score combined with elevated debt levels requires additional review. Consider reducing loan amount or improving debt situation.",
	},
	{
		ID: "medium_credit_poor_dti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditMedium && in.DTI == models.DTIPoor
		},
		Decision:    models.DecisionRejected,
		Confidence:  80,
		Explanation: "Debt-to-income ratio is too high relative to credit history. Recommend improving debt management before reapplying.",
	},
	{
		ID: "low_credit_excellent_dti_stable",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditLow && in.DTI == models.DTIExcellent && in.EmploymentYears >= 3
		},
		Decision:    models.DecisionConditional,
		Confidence:  55,
		Explanation: "Despite low credit score, excellent debt management and stable employment may compensate. Additional documentation required.",
	},
	{
		ID: "low_credit_good_dti",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditLow && in.DTI == models.DTIGood
		},
		Decision:    models.DecisionRejected,
		Confidence:  75,
		Explanation: "Credit history concerns outweigh positive debt levels. Recommend improving credit score before applying.",
	},
	{
		ID: "low_credit",
		Guard: func(in ruleInput) bool {
			return in.Credit == models.CreditLow
		},
		Decision:    models.DecisionRejected,
		Confidence:  90,
		Explanation: "Low credit score combined with high debt levels presents unacceptable risk. Application rejected.",
	},
	{
		ID: "excessive_loan_to_income",
		Guard: func(in ruleInput) bool {
			return in.LTI > 40
		},
		Decision:    models.DecisionRejected,
		Confidence:  85,
		Explanation: "Loan amount exceeds reasonable limits relative to income. Consider applying for a smaller loan amount.",
	},
	{
		ID: "limited_employment_history",
		Guard: func(in ruleInput) bool {
			return in.EmploymentYears < 1
		},
		Decision:    models.DecisionConditional,
		Confidence:  60,
		Explanation: "Limited employment history requires additional verification. Co-signer may be required.",
	},
	{
		ID:          "default_reject",
		Guard:       func(ruleInput) bool { return true },
		Decision:    models.DecisionRejected,
		Confidence:  50,
		Explanation: "Application does not meet minimum requirements for loan approval.",
	},
}

// Decide runs the profile through the rule cascade and returns the
// outcome of the first matching rule. Pure function of the profile: no
// I/O, no clock, no randomness. The evaluation method tag is left empty;
// the backend layer stamps it.
func Decide(profile models.ApplicationProfile) models.EvaluationResult {
	dti := DecisionDebtToIncome(profile.DebtAmount, profile.AnnualIncome)

	in := ruleInput{
		Credit:          CreditCategoryOf(profile.CreditScore),
		DTI:             DTICategoryOf(dti),
		EmploymentYears: profile.EmploymentYears,
		LTI:             DecisionLoanToIncome(profile.LoanAmount, profile.AnnualIncome),
	}

	for _, rule := range decisionRules {
		if !rule.Guard(in) {
			continue
		}
		return models.EvaluationResult{
			Result:         rule.Decision,
			RuleID:         rule.ID,
			Explanation:    rule.Explanation,
			Confidence:     rule.Confidence,
			DTIRatio:       Round2(dti),
			CreditCategory: in.Credit,
			DTICategory:    in.DTI,
		}
	}

	// Unreachable: the last rule always matches.
	return models.EvaluationResult{}
}
