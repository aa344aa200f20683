package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/usecase/services"
	"github.com/golang-jwt/jwt/v5"
)

var issuedAt = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func TestTokenServiceIssueVerify(t *testing.T) {
	now := issuedAt
	tokens := services.NewTokenService(testSecret, func() time.Time { return now })

	for _, kind := range []domain.PrincipalKind{domain.PrincipalCustomer, domain.PrincipalEmployee} {
		token, err := tokens.Issue(kind, "subject-1")
		if err != nil {
			t.Fatalf("issue %s token: %v", kind, err)
		}

		principal, err := tokens.Verify(token)
		if err != nil {
			t.Fatalf("verify %s token: %v", kind, err)
		}
		if principal.Kind != kind || principal.SubjectID != "subject-1" {
			t.Fatalf("unexpected principal %+v", principal)
		}
	}
}

func TestTokenServiceExpiresAfterOneHour(t *testing.T) {
	now := issuedAt
	tokens := services.NewTokenService(testSecret, func() time.Time { return now })

	token, err := tokens.Issue(domain.PrincipalCustomer, "c-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	now = issuedAt.Add(time.Hour - time.Second)
	if _, err := tokens.Verify(token); err != nil {
		t.Fatalf("expected token to be valid just before expiry, got %v", err)
	}

	now = issuedAt.Add(time.Hour + time.Second)
	_, err = tokens.Verify(token)
	if !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected expired token error, got %v", err)
	}
	if !domain.IsAuthError(err) {
		t.Fatalf("expected expiry to be an auth error")
	}
}

func TestTokenServiceRejectsTampering(t *testing.T) {
	tokens := services.NewTokenService(testSecret, fixedClock(issuedAt))

	token, err := tokens.Issue(domain.PrincipalCustomer, "c-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	other := services.NewTokenService("another-secret-another-secret-xx", fixedClock(issuedAt))
	if _, err := other.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token for foreign secret, got %v", err)
	}

	parts := strings.Split(token, ".")
	parts[1] = parts[1] + "AA"
	if _, err := tokens.Verify(strings.Join(parts, ".")); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token for tampered payload, got %v", err)
	}

	if _, err := tokens.Verify("not-a-jwt"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token for garbage, got %v", err)
	}

	if _, err := tokens.Verify("   "); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected no token for blank input, got %v", err)
	}
}

func TestTokenServiceRejectsForeignAlgorithmsAndClaims(t *testing.T) {
	tokens := services.NewTokenService(testSecret, fixedClock(issuedAt))

	cases := map[string]*jwt.Token{
		"hs512": jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"kind": "customer",
			"sub":  "c-1",
			"exp":  issuedAt.Add(time.Hour).Unix(),
		}),
		"no expiry": jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"kind": "customer",
			"sub":  "c-1",
		}),
		"no kind": jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "c-1",
			"exp": issuedAt.Add(time.Hour).Unix(),
		}),
		"unknown kind": jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"kind": "admin",
			"sub":  "c-1",
			"exp":  issuedAt.Add(time.Hour).Unix(),
		}),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			signed, err := token.SignedString([]byte(testSecret))
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			if _, err := tokens.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected invalid token, got %v", err)
			}
		})
	}
}

func TestTokenServiceIssueRequiresKindAndSubject(t *testing.T) {
	tokens := services.NewTokenService(testSecret, fixedClock(issuedAt))

	if _, err := tokens.Issue(domain.PrincipalKind("admin"), "x"); err == nil {
		t.Fatal("expected error for unknown principal kind")
	}
	if _, err := tokens.Issue(domain.PrincipalCustomer, " "); err == nil {
		t.Fatal("expected error for blank subject")
	}
}
