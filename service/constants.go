package service

const (
	TermYears        = 30
	NumberOfPayments = TermYears * 12

	// Share of gross annual income treated as after-tax income.
	NetIncomeFactor = 0.75

	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // % anual
	// Below this the monthly rate vanishes next to 1 and the payment is 0/0.
	MinInterestRate = 0.0001

	// Ratio denominators are floored so the percentages stay representable.
	MinHomeValue    = 1.0
	MinAnnualIncome = 1.0

	// Ratios beyond this are reported at the cap.
	MaxRatioPercent = 1_000_000_000

	DefaultMaxTokens   = 500
	DefaultTemperature = 0.1

	// Role of the single message carrying the whole prompt.
	PromptRole = "assistant"
)
