package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/service"

	"github.com/shopspring/decimal"
)

type RepaymentHandler struct {
	service *service.RepaymentService
	logger  logging.Logger
}

func NewRepaymentHandler(service *service.RepaymentService, logger logging.Logger) *RepaymentHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RepaymentHandler{service: service, logger: logger}
}

// Schedule projects the debts in the request body.
func (h *RepaymentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.RepaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Plan(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Compare runs both strategies over the debts in the request body.
func (h *RepaymentHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.RepaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Plan projects the stored debts. Query: strategy (default avalanche) and
// extra, the extra monthly payment.
func (h *RepaymentHandler) Plan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	strategy := q.Get("strategy")
	if strategy == "" {
		strategy = domain.StrategyAvalanche.String()
	}
	extra := decimal.Zero
	if raw := q.Get("extra"); raw != "" {
		var err error
		if extra, err = decimal.NewFromString(raw); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid extra payment"})
			return
		}
	}

	result, err := h.service.PlanStored(r.Context(), strategy, extra)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
