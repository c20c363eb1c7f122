package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"loan-evaluator/service"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("failed to write response", zap.Error(err))
	}
}

// writeEvaluationError maps engine failures to status codes. Upstream
// failures are reported generically.
func writeEvaluationError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr *service.ValidationError
	var transportErr *service.TransportError
	var formatErr *service.ResponseFormatError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{
			Error:  "Please fill all the required fields",
			Fields: validationErr.Fields,
		})
	case errors.As(err, &transportErr), errors.As(err, &formatErr):
		writeJSON(w, logger, http.StatusBadGateway, errorResponse{Error: "the loan could not be evaluated, please try again"})
	default:
		writeJSON(w, logger, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
