package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateRecord = errors.New("Record already exists")

// Authentication failures. ErrBadCredentials is reported to clients as a 400,
// the token errors as a 401.
var (
	ErrNoToken            = errors.New("no token provided")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrExpiredToken       = errors.New("token has expired")
	ErrWrongPrincipalKind = errors.New("token was not issued for this principal kind")
	ErrBadCredentials     = errors.New("Invalid credentials")
)

// ValidationError reports the first rule a request failed.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return ValidationError{Message: message}
}

// IsAuthError reports whether err belongs to the token family of failures.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrWrongPrincipalKind)
}
