// Package engine implements the built-in loan decision engine: pure,
// deterministic categorization, ratio derivation, the ordered decision
// rule cascade and the business-limit validator. Nothing in this package
// performs I/O; the same inputs always produce the same outputs.
package engine

import "github.com/terra-clan/loan-engine/internal/models"

// CreditCategoryOf maps a credit score to its creditworthiness band.
// Total over all ints: out-of-domain scores (negative, above 850) land in
// the nearest band without special-casing. Boundaries belong to the
// higher band: 750 is high, 650 is medium.
func CreditCategoryOf(score int) models.CreditCategory {
	switch {
	case score >= 750:
		return models.CreditHigh
	case score >= 650:
		return models.CreditMedium
	default:
		return models.CreditLow
	}
}

// DTICategoryOf maps a debt-to-income ratio (percent) to its band.
// Boundaries belong to the higher band: 15 is good, 30 is moderate,
// 43 is poor.
func DTICategoryOf(ratio float64) models.DTICategory {
	switch {
	case ratio < 15:
		return models.DTIExcellent
	case ratio < 30:
		return models.DTIGood
	case ratio < 43:
		return models.DTIModerate
	default:
		return models.DTIPoor
	}
}

// EmploymentStabilityOf maps years of employment to a stability band.
// Used for presentation only; decision rules test raw years.
func EmploymentStabilityOf(years int) models.EmploymentStability {
	switch {
	case years >= 3:
		return models.EmploymentStable
	case years >= 1:
		return models.EmploymentModerate
	default:
		return models.EmploymentUnstable
	}
}
