package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"loan-evaluator/domain"
	"loan-evaluator/service"
)

type calculateRequest struct {
	LoanAmount   string `json:"loanAmount"`
	InterestRate string `json:"interestRate"`
}

type calculateResponse struct {
	Totals  domain.LoanTotals `json:"totals"`
	Display totalsDisplay     `json:"display"`
}

type LoanHandler struct {
	logger *zap.Logger
}

func NewLoanHandler(logger *zap.Logger) *LoanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanHandler{logger: logger}
}

// CalculateLoan previews the 30 year amortization without evaluating.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	totals, err := service.CalculateTotals(input.LoanAmount, input.InterestRate)
	if err != nil {
		writeEvaluationError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, calculateResponse{
		Totals:  totals,
		Display: displayTotals(totals),
	})
}
