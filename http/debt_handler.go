package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/service"
)

type DebtHandler struct {
	service *service.DebtService
	logger  logging.Logger
}

func NewDebtHandler(service *service.DebtService, logger logging.Logger) *DebtHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &DebtHandler{service: service, logger: logger}
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.Debt
	if !decodeJSON(w, r, &input) {
		return
	}

	debt, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/debts/"+debt.ID)
	writeJSON(w, http.StatusCreated, debt)
}

func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	debts, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if debts == nil {
		debts = []domain.Debt{}
	}
	writeJSON(w, http.StatusOK, debts)
}

func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	debt, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input domain.Debt
	if !decodeJSON(w, r, &input) {
		return
	}

	debt, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordPayment applies a real payment to the debt's remaining balance.
func (h *DebtHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var input domain.DebtPaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	debt, err := h.service.RecordPayment(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}
