package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"debt-planner/logging"
	"debt-planner/payoff"
	"debt-planner/repository"
	"debt-planner/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string `json:"error"`
	DebtID string `json:"debtId,omitempty"`
	Name   string `json:"name,omitempty"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// writeJSON encodes into a buffer first so an encoding failure still yields
// a clean 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, logger logging.Logger, err error) {
	status := statusFor(err)
	body := errorResponse{Error: err.Error()}

	var nonAmortizing *payoff.NonAmortizingDebtError
	if errors.As(err, &nonAmortizing) {
		body.DebtID = nonAmortizing.DebtID
		body.Name = nonAmortizing.Name
	}
	var invalid *payoff.ValidationError
	if errors.As(err, &invalid) {
		body.DebtID = invalid.DebtID
	}

	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("Request failed")
		body = errorResponse{Error: "internal error"}
	}
	writeJSON(w, status, body)
}

func statusFor(err error) int {
	var nonAmortizing *payoff.NonAmortizingDebtError
	var invalid *payoff.ValidationError
	switch {
	case errors.As(err, &nonAmortizing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrDebtNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDebtExists):
		return http.StatusConflict
	case errors.As(err, &invalid),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, payoff.ErrNoDebts),
		errors.Is(err, payoff.ErrInvalidStrategy),
		errors.Is(err, payoff.ErrInvalidCap):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
