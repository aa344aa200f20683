package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/swift-payments-portal/src/internal/commons"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/usecase/services"
)

const (
	duplicateCustomerMessage = "User already exists with these details"
	serverErrorMessage       = "Server error"
)

// Options carries the transport settings every controller shares.
type Options struct {
	SecureCookies bool
	// ExposeErrorDetail adds the underlying error to 500 responses. Only for
	// development.
	ExposeErrorDetail bool
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON reads the request body into dst and writes the error response
// itself when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logError(r, err, nil)
			writeJSON(w, http.StatusRequestEntityTooLarge, commons.ErrorResponse("Request body too large"))
			return false
		}
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse("Invalid request body"))
		return false
	}
	return true
}

// writeError maps a service error to its response. serverMessage is used for
// anything that is not a client error.
func writeError(w http.ResponseWriter, r *http.Request, err error, opts Options, serverMessage string, start time.Time) {
	status, body := errorResponse(err, opts, serverMessage)
	logError(r, err, map[string]any{"status": status})
	writeJSON(w, status, body)
	logResponse(r, status, body, start)
}

func errorResponse(err error, opts Options, serverMessage string) (int, commons.ErrorBody) {
	var validationErr domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, commons.ErrorResponse(validationErr.Message)
	case errors.Is(err, domain.ErrDuplicateRecord):
		return http.StatusBadRequest, commons.ErrorResponse(duplicateCustomerMessage)
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusBadRequest, commons.ErrorResponse(domain.ErrBadCredentials.Error())
	case errors.Is(err, domain.ErrNoToken):
		return http.StatusUnauthorized, commons.ErrorResponse("No token, authorization denied")
	case domain.IsAuthError(err):
		return http.StatusUnauthorized, commons.ErrorResponse("Token is not valid")
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, commons.ErrorResponse(domain.ErrRecordNotFound.Error())
	}

	if opts.ExposeErrorDetail {
		return http.StatusInternalServerError, commons.ErrorResponse(serverMessage, err.Error())
	}
	return http.StatusInternalServerError, commons.ErrorResponse(serverMessage)
}

func setSessionCookie(w http.ResponseWriter, name, token string, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, name string, opts Options) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func requirePrincipal(w http.ResponseWriter, r *http.Request, start time.Time) (domain.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		body := commons.ErrorResponse("No token, authorization denied")
		writeJSON(w, http.StatusUnauthorized, body)
		logResponse(r, http.StatusUnauthorized, body, start)
		return domain.Principal{}, false
	}
	return principal, true
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, start time.Time) {
	body := commons.ErrorResponse("Method not allowed")
	writeJSON(w, http.StatusMethodNotAllowed, body)
	logResponse(r, http.StatusMethodNotAllowed, body, start)
}
