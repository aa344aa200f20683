package models

import (
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type EmployeeLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r EmployeeLoginRequest) Validate() error {
	if isBlank(r.Username) || isEmpty(r.Password) {
		return domain.NewValidationError("Username and password are required")
	}
	return nil
}

type CreateEmployeeRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r CreateEmployeeRequest) Validate() error {
	if isBlank(r.Username) || isEmpty(r.Password) {
		return domain.NewValidationError("Username and password are required")
	}
	if charCount(r.Password) < minPasswordLength {
		return domain.NewValidationError("Password must be at least 6 characters")
	}
	return nil
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

func NewEmployeeResponse(e domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Username:  e.Username,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type CreateEmployeeResponse struct {
	Message  string           `json:"message"`
	Employee EmployeeResponse `json:"employee"`
}
