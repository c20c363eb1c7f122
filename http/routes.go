package http

import (
	"net/http"

	"go.uber.org/zap"
)

// NewRouter wires the loan endpoints. Endpoints that reach the completion
// service or compute totals are rate limited per client IP.
func NewRouter(
	loanHandler *LoanHandler,
	evaluationHandler *EvaluationHandler,
	limiter *RateLimiter,
	logger *zap.Logger,
) http.Handler {
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, logger, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/loan/calculate", limited(loanHandler.CalculateLoan))
	mux.Handle("/loan/evaluate", limited(evaluationHandler.Evaluate))
	mux.HandleFunc("/loan/evaluations/latest", evaluationHandler.Latest)
	mux.HandleFunc("/loan/evaluations", evaluationHandler.History)
	mux.HandleFunc("/loan/sample", evaluationHandler.Sample)
	return mux
}
