package http

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"loan-evaluator/domain"
)

// totalsDisplay carries the totals formatted for the evaluator table.
type totalsDisplay struct {
	MonthlyPayment string `json:"monthlyPayment"`
	TotalInterest  string `json:"totalInterest"`
	TotalPaid      string `json:"totalPaid"`
}

func displayTotals(t domain.LoanTotals) totalsDisplay {
	p := message.NewPrinter(language.English)
	return totalsDisplay{
		MonthlyPayment: p.Sprintf("%.2f", t.MonthlyPayment),
		TotalInterest:  p.Sprintf("%.2f", t.TotalInterest),
		TotalPaid:      p.Sprintf("%.2f", t.TotalPaid),
	}
}
