package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/swift-payments-portal/src/internal/commons"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type EmployeeAuthService interface {
	Login(ctx context.Context, req models.EmployeeLoginRequest) (string, error)
}

type PendingPaymentLister interface {
	ListPendingPayments(ctx context.Context) ([]domain.PaymentWithOwner, error)
}

type SwiftSubmitter interface {
	Submit(ctx context.Context, ids []string) (int64, error)
}

// EmployeeController serves the staff review flow under /employees.
type EmployeeController struct {
	auth      EmployeeAuthService
	payments  PendingPaymentLister
	submitter SwiftSubmitter
	opts      Options
}

func NewEmployeeController(auth EmployeeAuthService, payments PendingPaymentLister, submitter SwiftSubmitter, opts Options) *EmployeeController {
	return &EmployeeController{
		auth:      auth,
		payments:  payments,
		submitter: submitter,
		opts:      opts,
	}
}

func (c *EmployeeController) RegisterRoutes(mux *http.ServeMux, authLimit, requireEmployee func(http.Handler) http.Handler) {
	mux.Handle("/employees/login", middleware.Chain(http.HandlerFunc(c.login), authLimit))
	mux.Handle("/employees/logout", http.HandlerFunc(c.logout))
	mux.Handle("/employees/transactions", middleware.Chain(http.HandlerFunc(c.transactions), requireEmployee))
	mux.Handle("/employees/submit-swift", middleware.Chain(http.HandlerFunc(c.submitSwift), requireEmployee))
}

func (c *EmployeeController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}

	var req models.EmployeeLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	token, err := c.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err, c.opts, serverErrorMessage, start)
		return
	}

	setSessionCookie(w, middleware.EmployeeCookieName, token, c.opts)
	response := models.TokenResponse{
		Token:   token,
		Message: "Login successful",
	}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *EmployeeController) logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}
	logRequest(r, nil)

	clearSessionCookie(w, middleware.EmployeeCookieName, c.opts)
	response := commons.Message("Logged out successfully")
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *EmployeeController) transactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, start)
		return
	}
	logRequest(r, nil)

	if _, ok := requirePrincipal(w, r, start); !ok {
		return
	}

	pending, err := c.payments.ListPendingPayments(r.Context())
	if err != nil {
		writeError(w, r, err, c.opts, "Failed to fetch transactions", start)
		return
	}

	response := models.NewPendingPaymentResponses(pending)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, map[string]any{"count": len(response)}, start)
}

func (c *EmployeeController) submitSwift(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}

	principal, ok := requirePrincipal(w, r, start)
	if !ok {
		return
	}

	var req models.SubmitSwiftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, map[string]any{"employeeId": principal.SubjectID, "transactions": req.Transactions})

	ids, err := req.IDs()
	if err != nil {
		writeError(w, r, err, c.opts, "Failed to submit transactions", start)
		return
	}

	count, err := c.submitter.Submit(r.Context(), ids)
	if err != nil {
		writeError(w, r, err, c.opts, "Failed to submit transactions", start)
		return
	}

	response := models.SubmitSwiftResponse{
		Message: "Verified transactions submitted to SWIFT successfully",
		Count:   count,
	}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
