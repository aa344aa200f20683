package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
	"github.com/lib/pq"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, customer_id, amount, currency, provider, payee_account, swift_code, status, created_at, updated_at`

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	logger.Info("payment repository create", logger.Fields{
		"paymentId":  payment.ID,
		"customerId": payment.CustomerID,
		"status":     payment.Status,
	})

	const query = `
INSERT INTO payments (
	id,
	customer_id,
	amount,
	currency,
	provider,
	payee_account,
	swift_code,
	status,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + paymentColumns

	var created domain.Payment
	if err := scanPayment(r.db.QueryRowContext(
		ctx,
		query,
		payment.ID,
		payment.CustomerID,
		payment.Amount,
		payment.Currency,
		payment.Provider,
		payment.PayeeAccount,
		payment.SwiftCode,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	), &created); err != nil {
		logger.Error("payment repository create failed", err, logger.Fields{
			"paymentId": payment.ID,
		})
		return domain.Payment{}, fmt.Errorf("create payment: %w", err)
	}

	logger.Info("payment repository create success", logger.Fields{
		"paymentId": created.ID,
	})

	return created, nil
}

func (r *PaymentRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Payment, error) {
	const query = `
SELECT ` + paymentColumns + `
FROM payments
WHERE customer_id = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		logger.Error("payment repository list by customer failed", err, logger.Fields{
			"customerId": customerID,
		})
		return nil, fmt.Errorf("list payments by customer: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var payment domain.Payment
		if err := scanPayment(rows, &payment); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) ListByStatusWithOwner(ctx context.Context, status domain.PaymentStatus) ([]domain.PaymentWithOwner, error) {
	const query = `
SELECT p.id, p.customer_id, p.amount, p.currency, p.provider, p.payee_account, p.swift_code, p.status, p.created_at, p.updated_at,
	c.id, c.full_name, c.id_number
FROM payments p
JOIN customers c ON c.id = p.customer_id
WHERE p.status = $1
ORDER BY p.created_at ASC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		logger.Error("payment repository list by status failed", err, logger.Fields{
			"status": status,
		})
		return nil, fmt.Errorf("list payments by status: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.PaymentWithOwner, 0)
	for rows.Next() {
		var item domain.PaymentWithOwner
		if err := rows.Scan(
			&item.ID,
			&item.CustomerID,
			&item.Amount,
			&item.Currency,
			&item.Provider,
			&item.PayeeAccount,
			&item.SwiftCode,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Owner.ID,
			&item.Owner.FullName,
			&item.Owner.IDNumber,
		); err != nil {
			return nil, fmt.Errorf("scan payment with owner: %w", err)
		}
		payments = append(payments, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) UpdateStatusForIDs(ctx context.Context, ids []string, status domain.PaymentStatus) (int64, error) {
	logger.Info("payment repository update status", logger.Fields{
		"count":  len(ids),
		"status": status,
	})

	if len(ids) == 0 {
		return 0, nil
	}

	const query = `
UPDATE payments
SET status = $2,
	updated_at = NOW()
WHERE id = ANY($1)
	AND status <> $2`

	result, err := r.db.ExecContext(ctx, query, pq.Array(ids), status)
	if err != nil {
		logger.Error("payment repository update status failed", err, logger.Fields{
			"status": status,
		})
		return 0, fmt.Errorf("update payment status: %w", err)
	}

	modified, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update payment status rows affected: %w", err)
	}

	logger.Info("payment repository update status success", logger.Fields{
		"modified": modified,
		"status":   status,
	})

	return modified, nil
}

func scanPayment(row rowScanner, payment *domain.Payment) error {
	return row.Scan(
		&payment.ID,
		&payment.CustomerID,
		&payment.Amount,
		&payment.Currency,
		&payment.Provider,
		&payment.PayeeAccount,
		&payment.SwiftCode,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
}
