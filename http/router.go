package http

import (
	"net/http"

	"debt-planner/logging"
)

// Handlers groups every handler the router exposes.
type Handlers struct {
	Repayment  *RepaymentHandler
	Debts      *DebtHandler
	Loan       *LoanHandler
	Projection *ProjectionHandler
}

// NewRouter registers all routes behind the rate limiter. A nil limiter
// disables rate limiting.
func NewRouter(h Handlers, limiter *RateLimiter, logger logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	mux := http.NewServeMux()

	handle := func(pattern string, fn http.HandlerFunc) {
		var handler http.Handler = fn
		if limiter != nil {
			handler = RateLimitMiddleware(limiter, handler)
		}
		mux.Handle(pattern, handler)
	}

	handle("POST /repayment/schedule", h.Repayment.Schedule)
	handle("POST /repayment/compare", h.Repayment.Compare)
	handle("GET /repayment/plan", h.Repayment.Plan)

	handle("POST /debts", h.Debts.Create)
	handle("GET /debts", h.Debts.List)
	handle("GET /debts/{id}", h.Debts.Get)
	handle("PUT /debts/{id}", h.Debts.Update)
	handle("DELETE /debts/{id}", h.Debts.Delete)
	handle("POST /debts/{id}/payments", h.Debts.RecordPayment)

	handle("POST /loan/calculate", h.Loan.CalculateLoan)
	handle("POST /projection/net-worth", h.Projection.NetWorth)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return LoggingMiddleware(logger, mux)
}
