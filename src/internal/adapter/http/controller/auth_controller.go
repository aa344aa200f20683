package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/swift-payments-portal/src/internal/commons"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/usecase/services"
)

type CustomerAuthService interface {
	Register(ctx context.Context, req models.RegisterCustomerRequest) (services.CustomerSession, error)
	Login(ctx context.Context, req models.LoginCustomerRequest) (services.CustomerSession, error)
	Refresh(ctx context.Context, token string) (string, error)
}

// AuthController serves customer registration and sessions under /auth.
type AuthController struct {
	service CustomerAuthService
	opts    Options
}

func NewAuthController(service CustomerAuthService, opts Options) *AuthController {
	return &AuthController{service: service, opts: opts}
}

// RegisterRoutes mounts the /auth routes. authLimit guards the credential
// endpoints only.
func (c *AuthController) RegisterRoutes(mux *http.ServeMux, authLimit func(http.Handler) http.Handler) {
	mux.Handle("/auth/register", middleware.Chain(http.HandlerFunc(c.register), authLimit))
	mux.Handle("/auth/login", middleware.Chain(http.HandlerFunc(c.login), authLimit))
	mux.Handle("/auth/refresh", http.HandlerFunc(c.refresh))
	mux.Handle("/auth/logout", http.HandlerFunc(c.logout))
}

func (c *AuthController) register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}

	var req models.RegisterCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	session, err := c.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err, c.opts, serverErrorMessage, start)
		return
	}

	setSessionCookie(w, middleware.CustomerCookieName, session.Token, c.opts)
	response := models.RegisterCustomerResponse{
		Token:   session.Token,
		Message: "Registration successful",
	}
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}

	var req models.LoginCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	logRequest(r, req)

	session, err := c.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err, c.opts, serverErrorMessage, start)
		return
	}

	setSessionCookie(w, middleware.CustomerCookieName, session.Token, c.opts)
	response := models.LoginCustomerResponse{
		Token:    session.Token,
		Customer: models.NewCustomerResponse(session.Customer),
		Message:  "Login successful",
	}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// refresh only looks at the customer cookie and the bearer header. Staff
// sessions are not refreshable.
func (c *AuthController) refresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}
	logRequest(r, nil)

	token := ""
	if cookie, err := r.Cookie(middleware.CustomerCookieName); err == nil {
		token = strings.TrimSpace(cookie.Value)
	}
	if token == "" {
		token = middleware.BearerToken(r)
	}
	if token == "" {
		body := commons.ErrorResponse("No token provided")
		writeJSON(w, http.StatusUnauthorized, body)
		logResponse(r, http.StatusUnauthorized, body, start)
		return
	}

	refreshed, err := c.service.Refresh(r.Context(), token)
	if err != nil {
		if domain.IsAuthError(err) {
			logError(r, err, nil)
			body := commons.ErrorResponse("Invalid or expired token")
			writeJSON(w, http.StatusUnauthorized, body)
			logResponse(r, http.StatusUnauthorized, body, start)
			return
		}
		writeError(w, r, err, c.opts, serverErrorMessage, start)
		return
	}

	setSessionCookie(w, middleware.CustomerCookieName, refreshed, c.opts)
	response := models.TokenResponse{
		Token:   refreshed,
		Message: "Token refreshed successfully",
	}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, start)
		return
	}
	logRequest(r, nil)

	clearSessionCookie(w, middleware.CustomerCookieName, c.opts)
	response := commons.Message("Logged out successfully")
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
