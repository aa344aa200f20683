package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, full_name, id_number, account_number, password_hash, created_at, updated_at`

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository create", logger.Fields{
		"customerId":    customer.ID,
		"accountNumber": customer.AccountNumber,
	})

	const query = `
INSERT INTO customers (id, full_name, id_number, account_number, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.FullName,
		customer.IDNumber,
		customer.AccountNumber,
		customer.PasswordHash,
		toUnixNano(customer.CreatedAt),
		toUnixNano(customer.UpdatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, fmt.Errorf("create customer: %w", domain.ErrDuplicateRecord)
		}
		logger.Error("customer repository create failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	return r.GetByID(ctx, customer.ID)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *CustomerRepository) GetByFullNameAndAccountNumber(ctx context.Context, fullName string, accountNumber string) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE full_name = ? AND account_number = ?`
	return r.getOne(ctx, query, fullName, accountNumber)
}

func (r *CustomerRepository) ExistsByIDNumberOrAccountNumber(ctx context.Context, idNumber string, accountNumber string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE id_number = ? OR account_number = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, idNumber, accountNumber).Scan(&exists); err != nil {
		logger.Error("customer repository exists check failed", err, nil)
		return false, fmt.Errorf("check customer exists: %w", err)
	}

	return exists, nil
}

func (r *CustomerRepository) getOne(ctx context.Context, query string, args ...any) (domain.Customer, error) {
	var customer domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, args...), &customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		logger.Error("customer repository get failed", err, nil)
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}

	return customer, nil
}

func scanCustomer(row rowScanner, customer *domain.Customer) error {
	var createdAt, updatedAt int64
	if err := row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.IDNumber,
		&customer.AccountNumber,
		&customer.PasswordHash,
		&createdAt,
		&updatedAt,
	); err != nil {
		return err
	}
	customer.CreatedAt = fromUnixNano(createdAt)
	customer.UpdatedAt = fromUnixNano(updatedAt)
	return nil
}
