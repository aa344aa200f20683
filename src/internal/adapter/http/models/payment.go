package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

// Amount accepts either a JSON number or a numeric string and keeps the raw text
// so validation can report a malformed value instead of failing the decode.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
		return nil
	}
	*a = Amount(raw)
	return nil
}

const (
	maxAmountLength = 32
	maxAmountScale  = 4
	// Exponents outside this range are rejected before any arithmetic, since
	// rendering or rescaling them costs memory proportional to the exponent.
	maxAmountExponent = 18
)

var maxAmount = decimal.RequireFromString("999999999999999999.9999")

// Decimal parses the amount. Callers validate first.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(a))
}

// valid reports whether the amount is a positive value of at most 18 integer
// digits and 4 decimal places.
func (a Amount) valid() bool {
	if len(a) > maxAmountLength {
		return false
	}
	amount, err := a.Decimal()
	if err != nil || !amount.IsPositive() {
		return false
	}
	exp := amount.Exponent()
	if exp > maxAmountExponent || exp < -maxAmountExponent {
		return false
	}
	if amount.GreaterThan(maxAmount) {
		return false
	}
	return amount.Equal(amount.Truncate(maxAmountScale))
}

type CreatePaymentRequest struct {
	Amount       Amount `json:"amount"`
	Currency     string `json:"currency"`
	PayeeAccount string `json:"payeeAccount"`
	SwiftCode    string `json:"swiftCode"`
}

func (r CreatePaymentRequest) Validate() error {
	if isBlank(string(r.Amount), r.Currency, r.PayeeAccount, r.SwiftCode) {
		return domain.NewValidationError("All payment fields are required")
	}
	if !r.Amount.valid() {
		return domain.NewValidationError("Amount must be a valid positive number")
	}
	if !currencyPattern.MatchString(r.Currency) {
		return domain.NewValidationError("Currency must be a valid 3-letter ISO code (e.g., USD, ZAR)")
	}
	if !accountNumberPattern.MatchString(r.PayeeAccount) {
		return domain.NewValidationError("Payee account number must be 10–12 digits")
	}
	if !swiftCodePattern.MatchString(r.SwiftCode) {
		return domain.NewValidationError("Invalid SWIFT code format")
	}

	return nil
}

type PaymentResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customerId"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Provider     string          `json:"provider"`
	PayeeAccount string          `json:"payeeAccount"`
	SwiftCode    string          `json:"swiftCode"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

func NewPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		CustomerID:   p.CustomerID,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Provider:     p.Provider,
		PayeeAccount: p.PayeeAccount,
		SwiftCode:    p.SwiftCode,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func NewPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, NewPaymentResponse(p))
	}
	return out
}

type CreatePaymentResponse struct {
	Message string          `json:"message"`
	Payment PaymentResponse `json:"payment"`
}

type PaymentOwnerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	IDNumber string `json:"idNumber"`
}

// PendingPaymentResponse is a payment as staff see it in the review queue.
type PendingPaymentResponse struct {
	PaymentResponse
	Customer PaymentOwnerResponse `json:"customer"`
}

func NewPendingPaymentResponses(payments []domain.PaymentWithOwner) []PendingPaymentResponse {
	out := make([]PendingPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PendingPaymentResponse{
			PaymentResponse: NewPaymentResponse(p.Payment),
			Customer: PaymentOwnerResponse{
				ID:       p.Owner.ID,
				FullName: p.Owner.FullName,
				IDNumber: p.Owner.IDNumber,
			},
		})
	}
	return out
}

type SubmitSwiftRequest struct {
	Transactions json.RawMessage `json:"transactions"`
}

// IDs returns the requested payment ids. The field must be present and be an
// array of strings.
func (r SubmitSwiftRequest) IDs() ([]string, error) {
	raw := strings.TrimSpace(string(r.Transactions))
	if raw == "" || raw == "null" || !strings.HasPrefix(raw, "[") {
		return nil, domain.NewValidationError("Invalid request")
	}

	var ids []string
	if err := json.Unmarshal(r.Transactions, &ids); err != nil {
		return nil, domain.NewValidationError("Invalid request")
	}

	return ids, nil
}

func (r SubmitSwiftRequest) Validate() error {
	_, err := r.IDs()
	return err
}

type SubmitSwiftResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}
