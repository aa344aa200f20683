package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBasicAuth_AllowsValidCredentials(t *testing.T) {
	mw := BasicAuth("portal-admin", "provisioning-key-001")

	req := httptest.NewRequest(http.MethodPost, "/admin/employees", nil)
	req.SetBasicAuth("portal-admin", "provisioning-key-001")

	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestBasicAuth_RejectsInvalidCredentials(t *testing.T) {
	mw := BasicAuth("portal-admin", "provisioning-key-001")

	cases := map[string]func(r *http.Request){
		"wrong key":     func(r *http.Request) { r.SetBasicAuth("portal-admin", "wrong") },
		"wrong id":      func(r *http.Request) { r.SetBasicAuth("someone", "provisioning-key-001") },
		"missing":       func(r *http.Request) {},
		"bearer header": func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") },
	}

	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/employees", nil)
			prepare(req)

			rr := httptest.NewRecorder()
			mw(okHandler()).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
			}
		})
	}
}

func TestBasicAuth_FailsClosedWithoutConfiguration(t *testing.T) {
	mw := BasicAuth("", "")

	req := httptest.NewRequest(http.MethodPost, "/admin/employees", nil)
	req.SetBasicAuth("", "")

	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}
