package service

import (
	"math"
	"strconv"
	"strings"

	"loan-evaluator/domain"
)

// loanFigures are the numeric parameters once validated.
type loanFigures struct {
	HomeValue    float64
	LoanAmount   float64
	InterestRate float64
	AnnualIncome float64
}

// AllRequiredPresent reports whether params can be evaluated in their mode.
func AllRequiredPresent(params domain.LoanParameters) bool {
	_, err := validateParameters(params)
	return err == nil
}

// Validate returns a *ValidationError naming every field that is missing or
// unusable for the parameters' mode.
func Validate(params domain.LoanParameters) error {
	_, err := validateParameters(params)
	return err
}

func validateParameters(params domain.LoanParameters) (loanFigures, error) {
	var (
		figures loanFigures
		invalid []string
	)

	atLeast := func(field, raw string, floor float64, dst *float64) {
		v, ok := parseFinite(raw)
		if !ok || v <= 0 || v < floor {
			invalid = append(invalid, field)
			return
		}
		*dst = v
	}

	if !params.Mode.Valid() {
		invalid = append(invalid, "mode")
	}
	atLeast("homeValue", params.HomeValue, MinHomeValue, &figures.HomeValue)
	if _, err := strconv.ParseUint(strings.TrimSpace(params.HomeZipCode), 10, 32); err != nil {
		invalid = append(invalid, "homeZipCode")
	}
	atLeast("loanAmount", params.LoanAmount, 0, &figures.LoanAmount)
	atLeast("interestRate", params.InterestRate, MinInterestRate, &figures.InterestRate)
	atLeast("annualIncome", params.AnnualIncome, MinAnnualIncome, &figures.AnnualIncome)
	if _, ok := parseFinite(params.CreditScore); !ok {
		invalid = append(invalid, "creditScore")
	}
	if params.Mode == domain.ModeBiased && strings.TrimSpace(params.LenderLastName) == "" {
		invalid = append(invalid, "lenderLastName")
	}

	if figures.LoanAmount > MaxLoanAmount {
		invalid = append(invalid, "loanAmount")
	}
	if figures.InterestRate > MaxInterestRate {
		invalid = append(invalid, "interestRate")
	}

	if len(invalid) > 0 {
		return loanFigures{}, &ValidationError{Fields: invalid}
	}
	return figures, nil
}

// parseFinite parses a decimal number, rejecting NaN and infinities which
// strconv accepts.
func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
