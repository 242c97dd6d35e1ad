package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  logging.Logger
}

func NewLoanHandler(service *service.LoanService, logger logging.Logger) *LoanHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &LoanHandler{service: service, logger: logger}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
