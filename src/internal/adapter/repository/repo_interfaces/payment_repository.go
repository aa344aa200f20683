package repo_interfaces

import (
	"context"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	// ListByCustomerID returns the customer's payments, newest first.
	ListByCustomerID(ctx context.Context, customerID string) ([]domain.Payment, error)
	ListByStatusWithOwner(ctx context.Context, status domain.PaymentStatus) ([]domain.PaymentWithOwner, error)
	// UpdateStatusForIDs sets status on every listed payment and reports how many
	// rows actually changed. Rows already at status are left alone and not counted.
	UpdateStatusForIDs(ctx context.Context, ids []string, status domain.PaymentStatus) (int64, error)
}
