package service

import (
	"math"

	"github.com/shopspring/decimal"

	"loan-evaluator/domain"
)

// roundTo2Decimals rounds half away from zero on the cent.
func roundTo2Decimals(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// ComputeAmortization returns the fixed-rate totals of a 30 year mortgage.
// principal and annualRatePercent must both be positive; callers validate
// before calling.
func ComputeAmortization(principal, annualRatePercent float64) domain.LoanTotals {
	monthlyRate := annualRatePercent / 12 / 100
	n := float64(NumberOfPayments)

	payment := (monthlyRate * principal) / (1 - math.Pow(1+monthlyRate, -n))
	totalPaid := payment * n
	totalInterest := totalPaid - principal

	return domain.LoanTotals{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalInterest:  roundTo2Decimals(totalInterest),
		TotalPaid:      roundTo2Decimals(totalPaid),
	}
}

// CalculateTotals validates a loan amount and rate given as text and returns
// their amortization.
func CalculateTotals(loanAmount, interestRate string) (domain.LoanTotals, error) {
	var invalid []string
	amount, ok := parseFinite(loanAmount)
	if !ok || amount <= 0 || amount > MaxLoanAmount {
		invalid = append(invalid, "loanAmount")
	}
	rate, ok := parseFinite(interestRate)
	if !ok || rate < MinInterestRate || rate > MaxInterestRate {
		invalid = append(invalid, "interestRate")
	}
	if len(invalid) > 0 {
		return domain.LoanTotals{}, &ValidationError{Fields: invalid}
	}
	return ComputeAmortization(amount, rate), nil
}
