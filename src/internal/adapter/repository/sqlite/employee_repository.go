package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
)

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	const query = `
INSERT INTO employees (id, username, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(
		ctx,
		query,
		employee.ID,
		employee.Username,
		employee.PasswordHash,
		toUnixNano(employee.CreatedAt),
		toUnixNano(employee.UpdatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return domain.Employee{}, fmt.Errorf("create employee: %w", domain.ErrDuplicateRecord)
		}
		logger.Error("employee repository create failed", err, logger.Fields{
			"username": employee.Username,
		})
		return domain.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	return r.GetByUsername(ctx, employee.Username)
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (domain.Employee, error) {
	const query = `
SELECT id, username, password_hash, created_at, updated_at
FROM employees
WHERE username = ?`

	var (
		employee  domain.Employee
		createdAt int64
		updatedAt int64
	)
	if err := r.db.QueryRowContext(ctx, query, username).Scan(
		&employee.ID,
		&employee.Username,
		&employee.PasswordHash,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Employee{}, domain.ErrRecordNotFound
		}
		logger.Error("employee repository get by username failed", err, logger.Fields{
			"username": username,
		})
		return domain.Employee{}, fmt.Errorf("get employee by username: %w", err)
	}
	employee.CreatedAt = fromUnixNano(createdAt)
	employee.UpdatedAt = fromUnixNano(updatedAt)

	return employee, nil
}
