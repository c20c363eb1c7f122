package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"loan-evaluator/domain"
	"loan-evaluator/repository"
	"loan-evaluator/service"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 200
)

type evaluationResponse struct {
	domain.Evaluation
	Display totalsDisplay `json:"display"`
}

type EvaluationHandler struct {
	service *service.EvaluationService
	cache   repository.CacheRepository
	audit   repository.EvaluationRepository
	logger  *zap.Logger
}

func NewEvaluationHandler(
	service *service.EvaluationService,
	cache repository.CacheRepository,
	audit repository.EvaluationRepository,
	logger *zap.Logger,
) *EvaluationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationHandler{service: service, cache: cache, audit: audit, logger: logger}
}

func latestKey(mode domain.Mode) string {
	return "latest:" + mode.String()
}

// Evaluate runs one evaluation and remembers it as the latest result for
// its mode.
func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validar Content-Type
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var params domain.LoanParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.logger.Info("invalid evaluation request body", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if params.Mode == "" {
		params.Mode = domain.ModeUnbiased
	}

	evaluation, err := h.service.Evaluate(r.Context(), params)
	if err != nil {
		writeEvaluationError(w, h.logger, err)
		return
	}

	resp := evaluationResponse{Evaluation: evaluation, Display: displayTotals(evaluation.Totals)}
	if h.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := h.cache.Set(latestKey(evaluation.Mode), string(data)); err != nil {
				h.logger.Warn("failed to cache latest evaluation", zap.Error(err))
			}
		}
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Latest returns the last successful evaluation of ?mode= (unbiased by default).
func (h *EvaluationHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mode := domain.ModeUnbiased
	if raw := r.URL.Query().Get("mode"); raw != "" {
		parsed, err := domain.ParseMode(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = parsed
	}

	if h.cache == nil {
		http.Error(w, "no evaluation yet", http.StatusNotFound)
		return
	}
	data, ok, err := h.cache.Get(latestKey(mode))
	if err != nil {
		h.logger.Error("failed to read latest evaluation", zap.String("mode", mode.String()), zap.Error(err))
		http.Error(w, "latest evaluation unavailable", http.StatusServiceUnavailable)
		return
	}
	if !ok {
		http.Error(w, "no evaluation yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(data)); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}

// History lists recent audit records, newest first.
func (h *EvaluationHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxAuditLimit)
	}

	records := []domain.AuditRecord{}
	if h.audit != nil {
		var err error
		records, err = h.audit.Recent(limit)
		if err != nil {
			h.logger.Error("failed to read audit records", zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, h.logger, http.StatusOK, records)
}

// Sample returns the parameters the evaluator form starts with.
func (h *EvaluationHandler) Sample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, domain.SampleParameters())
}
