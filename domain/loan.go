package domain

// LoanParameters is the applicant snapshot evaluated by the engine. Numeric
// fields are kept as text, exactly as entered by the applicant.
type LoanParameters struct {
	HomeValue      string `json:"homeValue"`
	HomeZipCode    string `json:"homeZipCode"`
	LoanAmount     string `json:"loanAmount"`
	InterestRate   string `json:"interestRate"`
	AnnualIncome   string `json:"annualIncome"`
	CreditScore    string `json:"creditScore"`
	Bankruptcies   YesNo  `json:"bankruptcies"`
	LenderLastName string `json:"lenderLastName,omitempty"`
	Mode           Mode   `json:"mode"`
}

// LoanTotals holds the 30 year amortization figures, rounded to cents.
type LoanTotals struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPaid      float64 `json:"totalPaid"`
}

// Evaluation is the result of one evaluation cycle.
type Evaluation struct {
	Mode        Mode       `json:"mode"`
	Totals      LoanTotals `json:"totals"`
	LoanRatio   int        `json:"loanRatio"`
	IncomeRatio int        `json:"incomeRatio"`
	Decision    Decision   `json:"decision"`
}

// SampleParameters returns the parameters the evaluator form starts with.
func SampleParameters() LoanParameters {
	return LoanParameters{
		HomeValue:      "400000",
		HomeZipCode:    "10200",
		LoanAmount:     "320000",
		InterestRate:   "6",
		AnnualIncome:   "120000",
		CreditScore:    "700",
		Bankruptcies:   false,
		LenderLastName: "Morales",
		Mode:           ModeUnbiased,
	}
}
