package postgres

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
INSERT INTO customers (
	id,
	full_name,
	id_number,
	account_number,
	password_hash,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + customerColumns

	var created domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(
		ctx,
		query,
		customer.ID,
		customer.FullName,
		customer.IDNumber,
		customer.AccountNumber,
		customer.PasswordHash,
		customer.CreatedAt,
		customer.UpdatedAt,
	), &created); err != nil {
		if isUniqueViolation(err) {
			logger.Info("customer repository duplicate", logger.Fields{
				"accountNumber": customer.AccountNumber,
			})
			return domain.Customer{}, fmt.Errorf("create customer: %w", domain.ErrDuplicateRecord)
		}
		logger.Error("customer repository create failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	logger.Info("customer repository create success", logger.Fields{
		"customerId": created.ID,
	})

	return created, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var customer domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, id), &customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		logger.Error("customer repository get by id failed", err, logger.Fields{
			"customerId": id,
		})
		return domain.Customer{}, fmt.Errorf("get customer by id: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetByFullNameAndAccountNumber(ctx context.Context, fullName string, accountNumber string) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE full_name = $1 AND account_number = $2`

	var customer domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, fullName, accountNumber), &customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		logger.Error("customer repository get by login failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Customer{}, fmt.Errorf("get customer by login: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) ExistsByIDNumberOrAccountNumber(ctx context.Context, idNumber string, accountNumber string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE id_number = $1 OR account_number = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, idNumber, accountNumber).Scan(&exists); err != nil {
		logger.Error("customer repository exists check failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return false, fmt.Errorf("check customer exists: %w", err)
	}

	return exists, nil
}

func scanCustomer(row rowScanner, customer *domain.Customer) error {
	return row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.IDNumber,
		&customer.AccountNumber,
		&customer.PasswordHash,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
}
