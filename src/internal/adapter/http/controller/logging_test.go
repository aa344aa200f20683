package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type fixedTokens struct {
	principal domain.Principal
}

func (f fixedTokens) Issue(domain.PrincipalKind, string) (string, error) { return "token", nil }

func (f fixedTokens) Verify(string) (domain.Principal, error) { return f.principal, nil }

func TestRequestFieldsIncludePrincipal(t *testing.T) {
	tokens := fixedTokens{principal: domain.Principal{Kind: domain.PrincipalEmployee, SubjectID: "e-1"}}

	var got map[string]any
	handler := middleware.RequirePrincipal(tokens, domain.PrincipalEmployee)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestFields(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/employees/transactions", nil)
	req.Header.Set("Authorization", "Bearer token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got["principal"] != "employee" || got["subject"] != "e-1" {
		t.Fatalf("expected employee e-1 in log fields, got %v", got)
	}
	if got["method"] != http.MethodGet || got["path"] != "/employees/transactions" {
		t.Fatalf("unexpected request fields %v", got)
	}
}

func TestRequestFieldsWithoutPrincipal(t *testing.T) {
	got := requestFields(httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	if _, ok := got["subject"]; ok {
		t.Fatalf("expected no subject for an unauthenticated request, got %v", got)
	}
}
