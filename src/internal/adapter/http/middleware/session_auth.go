package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/api-sage/swift-payments-portal/src/internal/commons"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
	"github.com/api-sage/swift-payments-portal/src/internal/usecase/service_interfaces"
)

const (
	CustomerCookieName = "customerToken"
	EmployeeCookieName = "employeeToken"
)

const (
	noTokenMessage      = "No token, authorization denied"
	invalidTokenMessage = "Token is not valid"
)

type principalContextKey struct{}

// RequirePrincipal verifies the session token on the request and only lets
// principals of the given kind through. See TokenFromRequest for where the
// token is looked up.
func RequirePrincipal(tokens service_interfaces.TokenService, kind domain.PrincipalKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authenticate(tokens, r, kind)
			if err != nil {
				message := invalidTokenMessage
				if errors.Is(err, domain.ErrNoToken) {
					message = noTokenMessage
				}
				logger.Info("session auth middleware rejected request", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"kind":   string(kind),
					"reason": err.Error(),
				})
				writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse(message))
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the principal stored by RequirePrincipal.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(domain.Principal)
	return principal, ok
}

// CookieName returns the session cookie issued to principals of kind.
func CookieName(kind domain.PrincipalKind) string {
	if kind == domain.PrincipalEmployee {
		return EmployeeCookieName
	}
	return CustomerCookieName
}

// TokenFromRequest returns the session token a route guarded for kind should
// verify. The cookie issued to that kind is tried first; otherwise the customer
// cookie, the employee cookie and the bearer header are tried in that order.
func TokenFromRequest(r *http.Request, kind domain.PrincipalKind) string {
	names := []string{CookieName(kind), CustomerCookieName, EmployeeCookieName}
	for _, name := range names {
		if cookie, err := r.Cookie(name); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}
	return BearerToken(r)
}

// BearerToken extracts the credential from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func authenticate(tokens service_interfaces.TokenService, r *http.Request, kind domain.PrincipalKind) (domain.Principal, error) {
	token := TokenFromRequest(r, kind)
	if token == "" {
		return domain.Principal{}, domain.ErrNoToken
	}

	principal, err := tokens.Verify(token)
	if err != nil {
		return domain.Principal{}, err
	}
	if principal.Kind != kind {
		return domain.Principal{}, domain.ErrWrongPrincipalKind
	}
	return principal, nil
}
