package router

import (
	"encoding/json"
	"net/http"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/swift-payments-portal/src/internal/commons"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
)

const healthMessage = "SWIFT payments portal API is running"

type AuthRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authLimit func(http.Handler) http.Handler)
}

type EmployeeRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authLimit, requireEmployee func(http.Handler) http.Handler)
}

type PaymentRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, requireCustomer func(http.Handler) http.Handler)
}

type AdminRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, channelAuth func(http.Handler) http.Handler)
}

// Guards are the per-route middlewares handed to the controllers.
type Guards struct {
	AuthLimit       func(http.Handler) http.Handler
	RequireCustomer func(http.Handler) http.Handler
	RequireEmployee func(http.Handler) http.Handler
	ChannelAuth     func(http.Handler) http.Handler
}

func New(
	authController AuthRouteRegistrar,
	employeeController EmployeeRouteRegistrar,
	paymentController PaymentRouteRegistrar,
	adminController AdminRouteRegistrar,
	guards Guards,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)
	mux.HandleFunc("/", root)

	if authController != nil {
		authController.RegisterRoutes(mux, guards.AuthLimit)
	}
	if employeeController != nil {
		employeeController.RegisterRoutes(mux, guards.AuthLimit, guards.RequireEmployee)
	}
	if paymentController != nil {
		paymentController.RegisterRoutes(mux, guards.RequireCustomer)
	}
	if adminController != nil {
		adminController.RegisterRoutes(mux, guards.ChannelAuth)
	}

	return mux
}

// Hardening configures the middlewares wrapped around every route.
type Hardening struct {
	CORSOrigin       string
	RequestBodyLimit int64
	GeneralLimit     func(http.Handler) http.Handler
}

// Handler wraps the mux with the middlewares every request passes through.
func Handler(mux http.Handler, h Hardening) http.Handler {
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CORS(h.CORSOrigin),
		h.GeneralLimit,
		middleware.BodyLimit(h.RequestBodyLimit),
	)
}

// root answers the health check and is the fallback for unknown routes.
func root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" && r.Method == http.MethodGet {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(healthMessage))
		return
	}

	logger.Info("router route not found", logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(commons.Message("Route not found"))
}
