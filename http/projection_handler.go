package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/logging"
	"debt-planner/service"
)

type ProjectionHandler struct {
	service *service.ProjectionService
	logger  logging.Logger
}

func NewProjectionHandler(service *service.ProjectionService, logger logging.Logger) *ProjectionHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProjectionHandler{service: service, logger: logger}
}

func (h *ProjectionHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	var input domain.NetWorthInput
	if !decodeJSON(w, r, &input) {
		return
	}

	points, err := h.service.NetWorth(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
