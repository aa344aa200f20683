package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusSubmitted PaymentStatus = "Submitted"
)

const PaymentProviderSWIFT = "SWIFT"

type Payment struct {
	ID           string
	CustomerID   string
	Amount       decimal.Decimal
	Currency     string
	Provider     string
	PayeeAccount string
	SwiftCode    string
	Status       PaymentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PaymentOwner is the slice of a customer shown to staff next to a payment.
type PaymentOwner struct {
	ID       string
	FullName string
	IDNumber string
}

type PaymentWithOwner struct {
	Payment
	Owner PaymentOwner
}
