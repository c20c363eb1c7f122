package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAmortization_ThirtyYearsAtSixPercent(t *testing.T) {
	totals := ComputeAmortization(320000, 6)

	assert.InDelta(t, 1918.56, totals.MonthlyPayment, 0.0001)
	assert.InDelta(t, 690682.20, totals.TotalPaid, 0.0001)
	assert.InDelta(t, 370682.20, totals.TotalInterest, 0.0001)
}

func TestComputeAmortization_TotalsAreConsistent(t *testing.T) {
	for _, tc := range []struct {
		principal float64
		rate      float64
	}{
		{100000, 3.5},
		{250000, 7.25},
		{1000, 12},
	} {
		totals := ComputeAmortization(tc.principal, tc.rate)
		assert.Greater(t, totals.MonthlyPayment, tc.principal/NumberOfPayments)
		assert.InDelta(t, totals.TotalPaid-tc.principal, totals.TotalInterest, 0.011)
	}
}

func TestRoundTo2Decimals_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{1.005, 1.01},
		{-1.005, -1.01},
		{2.675, 2.68},
		{1918.5616, 1918.56},
		{0.001, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, roundTo2Decimals(tt.input), "roundTo2Decimals(%v)", tt.input)
	}
}

func TestCalculateTotals(t *testing.T) {
	totals, err := CalculateTotals("320000", " 6 ")
	require.NoError(t, err)
	assert.InDelta(t, 1918.56, totals.MonthlyPayment, 0.0001)
}

func TestCalculateTotals_Invalid(t *testing.T) {
	_, err := CalculateTotals("0", "abc")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"loanAmount", "interestRate"}, validationErr.Fields)
}

func TestCalculateTotals_RejectsNonFinite(t *testing.T) {
	tests := []struct {
		amount, rate string
		fields       []string
	}{
		{"NaN", "6", []string{"loanAmount"}},
		{"Inf", "6", []string{"loanAmount"}},
		{"-Inf", "6", []string{"loanAmount"}},
		{"320000", "NaN", []string{"interestRate"}},
		{"320000", "+Inf", []string{"interestRate"}},
		{"320000", "1e-300", []string{"interestRate"}},
		{"NaN", "NaN", []string{"loanAmount", "interestRate"}},
	}

	for _, tt := range tests {
		_, err := CalculateTotals(tt.amount, tt.rate)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "CalculateTotals(%q, %q)", tt.amount, tt.rate)
		assert.Equal(t, tt.fields, validationErr.Fields)
	}
}
