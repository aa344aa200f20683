package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
)

type PaymentService struct {
	paymentRepo repo_interfaces.PaymentRepository
	newID       func() string
	now         func() time.Time
}

func NewPaymentService(paymentRepo repo_interfaces.PaymentRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		newID:       newRecordID,
		now:         utcNow,
	}
}

// CreatePayment records a pending SWIFT payment owned by ownerID.
func (s *PaymentService) CreatePayment(ctx context.Context, ownerID string, req models.CreatePaymentRequest) (domain.Payment, error) {
	logger.Info("payment service create payment request", logger.Fields{
		"customerId": ownerID,
		"payload":    logger.SanitizePayload(req),
	})

	if strings.TrimSpace(ownerID) == "" {
		return domain.Payment{}, fmt.Errorf("create payment: %w", domain.ErrNoToken)
	}
	if err := req.Validate(); err != nil {
		return domain.Payment{}, err
	}

	amount, err := req.Amount.Decimal()
	if err != nil {
		return domain.Payment{}, domain.NewValidationError("Amount must be a valid positive number")
	}

	now := s.now()
	created, err := s.paymentRepo.Create(ctx, domain.Payment{
		ID:           s.newID(),
		CustomerID:   ownerID,
		Amount:       amount,
		Currency:     req.Currency,
		Provider:     domain.PaymentProviderSWIFT,
		PayeeAccount: req.PayeeAccount,
		SwiftCode:    req.SwiftCode,
		Status:       domain.PaymentStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.Payment{}, err
	}

	logger.Info("payment service create payment success", logger.Fields{
		"paymentId":    created.ID,
		"customerId":   ownerID,
		"amount":       created.Amount.String(),
		"currency":     created.Currency,
		"payeeAccount": created.PayeeAccount,
	})

	return created, nil
}

// ListCustomerPayments returns ownerID's payments, newest first.
func (s *PaymentService) ListCustomerPayments(ctx context.Context, ownerID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListByCustomerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	logger.Info("payment service list customer payments", logger.Fields{
		"customerId": ownerID,
		"count":      len(payments),
	})

	return payments, nil
}

// ListPendingPayments is the staff review queue.
func (s *PaymentService) ListPendingPayments(ctx context.Context) ([]domain.PaymentWithOwner, error) {
	payments, err := s.paymentRepo.ListByStatusWithOwner(ctx, domain.PaymentStatusPending)
	if err != nil {
		return nil, err
	}

	logger.Info("payment service list pending payments", logger.Fields{
		"count": len(payments),
	})

	return payments, nil
}
