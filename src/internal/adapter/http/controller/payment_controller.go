package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, ownerID string, req models.CreatePaymentRequest) (domain.Payment, error)
	ListCustomerPayments(ctx context.Context, ownerID string) ([]domain.Payment, error)
}

type PaymentController struct {
	service PaymentService
	opts    Options
}

func NewPaymentController(service PaymentService, opts Options) *PaymentController {
	return &PaymentController{service: service, opts: opts}
}

func (c *PaymentController) RegisterRoutes(mux *http.ServeMux, requireCustomer func(http.Handler) http.Handler) {
	mux.Handle("/payments/make-payment", middleware.Chain(http.HandlerFunc(c.makePayment), requireCustomer))
	mux.Handle("/payments/customer-payments", middleware.Chain(http.HandlerFunc(c.customerPayments), requireCustomer))
}

func (c *PaymentController) makePayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}

	principal, ok := requirePrincipal(w, r, start)
	if !ok {
		return
	}

	var req models.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	payment, err := c.service.CreatePayment(r.Context(), principal.SubjectID, req)
	if err != nil {
		writeError(w, r, err, c.opts, "Server error while processing payment", start)
		return
	}

	response := models.CreatePaymentResponse{
		Message: "Payment successfully processed via SWIFT!",
		Payment: models.NewPaymentResponse(payment),
	}
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *PaymentController) customerPayments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, start)
		return
	}
	logRequest(r, nil)

	principal, ok := requirePrincipal(w, r, start)
	if !ok {
		return
	}

	payments, err := c.service.ListCustomerPayments(r.Context(), principal.SubjectID)
	if err != nil {
		writeError(w, r, err, c.opts, "Failed to fetch your payments", start)
		return
	}

	response := models.NewPaymentResponses(payments)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, map[string]any{"count": len(response)}, start)
}
