package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
)

type PaymentRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db, now: time.Now}
}

const paymentColumns = `p.id, p.customer_id, p.amount, p.currency, p.provider, p.payee_account, p.swift_code, p.status, p.created_at, p.updated_at`

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	logger.Info("payment repository create", logger.Fields{
		"paymentId":  payment.ID,
		"customerId": payment.CustomerID,
		"status":     payment.Status,
	})

	const query = `
INSERT INTO payments (id, customer_id, amount, currency, provider, payee_account, swift_code, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		payment.ID,
		payment.CustomerID,
		payment.Amount.String(),
		payment.Currency,
		payment.Provider,
		payment.PayeeAccount,
		payment.SwiftCode,
		string(payment.Status),
		toUnixNano(payment.CreatedAt),
		toUnixNano(payment.UpdatedAt),
	); err != nil {
		logger.Error("payment repository create failed", err, logger.Fields{
			"paymentId": payment.ID,
		})
		return domain.Payment{}, fmt.Errorf("create payment: %w", err)
	}

	const fetch = `SELECT ` + paymentColumns + ` FROM payments p WHERE p.id = ?`
	var created domain.Payment
	if err := scanPayment(r.db.QueryRowContext(ctx, fetch, payment.ID), &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, domain.ErrRecordNotFound
		}
		return domain.Payment{}, fmt.Errorf("read created payment: %w", err)
	}

	return created, nil
}

func (r *PaymentRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Payment, error) {
	const query = `
SELECT ` + paymentColumns + `
FROM payments p
WHERE p.customer_id = ?
ORDER BY p.created_at DESC, p.id DESC`

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
SELECT ` + paymentColumns + `, c.id, c.full_name, c.id_number
FROM payments p
JOIN customers c ON c.id = p.customer_id
WHERE p.status = ?
ORDER BY p.created_at ASC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, string(status))
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
		if err := scanPayment(rows, &item.Payment, &item.Owner.ID, &item.Owner.FullName, &item.Owner.IDNumber); err != nil {
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

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := `
UPDATE payments
SET status = ?, updated_at = ?
WHERE status <> ? AND id IN (` + placeholders + `)`

	args := make([]any, 0, len(ids)+3)
	args = append(args, string(status), toUnixNano(r.now()), string(status))
	for _, id := range ids {
		args = append(args, id)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
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

	return modified, nil
}

func scanPayment(row rowScanner, payment *domain.Payment, extra ...any) error {
	var (
		status    string
		createdAt int64
		updatedAt int64
	)
	dest := []any{
		&payment.ID,
		&payment.CustomerID,
		&payment.Amount,
		&payment.Currency,
		&payment.Provider,
		&payment.PayeeAccount,
		&payment.SwiftCode,
		&status,
		&createdAt,
		&updatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	payment.Status = domain.PaymentStatus(status)
	payment.CreatedAt = fromUnixNano(createdAt)
	payment.UpdatedAt = fromUnixNano(updatedAt)
	return nil
}
