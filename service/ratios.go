package service

import "math"

// LoanRatio is the loan amount as a whole percentage of the home value.
func LoanRatio(loanAmount, homeValue float64) int {
	return clampPercent(loanAmount * 100 / homeValue)
}

// IncomeRatio is the monthly payment as a whole percentage of the estimated
// after-tax monthly income.
func IncomeRatio(monthlyPayment, annualIncome float64) int {
	monthlyIncome := annualIncome * NetIncomeFactor / 12
	return clampPercent(monthlyPayment / monthlyIncome * 100)
}

// clampPercent rounds p and bounds it to ±MaxRatioPercent. NaN maps to zero;
// the validator keeps it from occurring.
func clampPercent(p float64) int {
	switch {
	case math.IsNaN(p):
		return 0
	case p > MaxRatioPercent:
		return MaxRatioPercent
	case p < -MaxRatioPercent:
		return -MaxRatioPercent
	}
	return int(math.Round(p))
}
