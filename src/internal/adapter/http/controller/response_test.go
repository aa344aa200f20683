package controller

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

func TestErrorResponseMapping(t *testing.T) {
	storeErr := errors.New("pq: connection refused")

	cases := []struct {
		name        string
		err         error
		opts        Options
		wantStatus  int
		wantMessage string
		wantDetail  string
	}{
		{"validation", domain.NewValidationError("Invalid SWIFT code format"), Options{}, http.StatusBadRequest, "Invalid SWIFT code format", ""},
		{"wrapped duplicate", fmt.Errorf("register customer: %w", domain.ErrDuplicateRecord), Options{}, http.StatusBadRequest, "User already exists with these details", ""},
		{"bad credentials", domain.ErrBadCredentials, Options{}, http.StatusBadRequest, "Invalid credentials", ""},
		{"no token", domain.ErrNoToken, Options{}, http.StatusUnauthorized, "No token, authorization denied", ""},
		{"expired", fmt.Errorf("%w: exp", domain.ErrExpiredToken), Options{}, http.StatusUnauthorized, "Token is not valid", ""},
		{"wrong kind", domain.ErrWrongPrincipalKind, Options{}, http.StatusUnauthorized, "Token is not valid", ""},
		{"not found", domain.ErrRecordNotFound, Options{}, http.StatusNotFound, "Record not found", ""},
		{"store production", storeErr, Options{}, http.StatusInternalServerError, "Server error", ""},
		{"store development", storeErr, Options{ExposeErrorDetail: true}, http.StatusInternalServerError, "Server error", storeErr.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorResponse(tc.err, tc.opts, serverErrorMessage)
			if status != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, status)
			}
			if body.Message != tc.wantMessage {
				t.Fatalf("expected message %q, got %q", tc.wantMessage, body.Message)
			}
			if body.Error != tc.wantDetail {
				t.Fatalf("expected detail %q, got %q", tc.wantDetail, body.Error)
			}
		})
	}
}
