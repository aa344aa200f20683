package models

import (
	"strings"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type RegisterCustomerRequest struct {
	FullName      string `json:"fullName"`
	IDNumber      string `json:"idNumber"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

func (r RegisterCustomerRequest) Validate() error {
	if isBlank(r.FullName, r.IDNumber, r.AccountNumber) || isEmpty(r.Password) {
		return domain.NewValidationError("All fields are required")
	}
	if !idNumberPattern.MatchString(r.IDNumber) {
		return domain.NewValidationError("ID number must be 13 digits")
	}
	if !accountNumberPattern.MatchString(r.AccountNumber) {
		return domain.NewValidationError("Account number must be 10-12 digits")
	}
	if charCount(r.Password) < minPasswordLength {
		return domain.NewValidationError("Password must be at least 6 characters")
	}

	return nil
}

type RegisterCustomerResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type LoginCustomerRequest struct {
	FullName      string `json:"fullName"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

func (r LoginCustomerRequest) Validate() error {
	if isBlank(r.FullName, r.AccountNumber) || isEmpty(r.Password) {
		return domain.NewValidationError("Full name, account number, and password are required")
	}
	if charCount(strings.TrimSpace(r.FullName)) < 2 {
		return domain.NewValidationError("Invalid full name")
	}
	if !numericPattern.MatchString(r.AccountNumber) {
		return domain.NewValidationError("Account number must be numeric")
	}

	return nil
}

type LoginCustomerResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
	Message  string           `json:"message"`
}

type TokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// CustomerResponse is the outward view of a customer. It has no password field.
type CustomerResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	IDNumber      string `json:"idNumber"`
	AccountNumber string `json:"accountNumber"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func NewCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		FullName:      c.FullName,
		IDNumber:      c.IDNumber,
		AccountNumber: c.AccountNumber,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
