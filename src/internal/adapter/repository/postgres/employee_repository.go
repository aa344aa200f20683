package postgres

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
	logger.Info("employee repository create", logger.Fields{
		"employeeId": employee.ID,
		"username":   employee.Username,
	})

	const query = `
INSERT INTO employees (id, username, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, username, password_hash, created_at, updated_at`

	var created domain.Employee
	if err := scanEmployee(r.db.QueryRowContext(
		ctx,
		query,
		employee.ID,
		employee.Username,
		employee.PasswordHash,
		employee.CreatedAt,
		employee.UpdatedAt,
	), &created); err != nil {
		if isUniqueViolation(err) {
			return domain.Employee{}, fmt.Errorf("create employee: %w", domain.ErrDuplicateRecord)
		}
		logger.Error("employee repository create failed", err, logger.Fields{
			"username": employee.Username,
		})
		return domain.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	return created, nil
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (domain.Employee, error) {
	const query = `
SELECT id, username, password_hash, created_at, updated_at
FROM employees
WHERE username = $1`

	var employee domain.Employee
	if err := scanEmployee(r.db.QueryRowContext(ctx, query, username), &employee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Employee{}, domain.ErrRecordNotFound
		}
		logger.Error("employee repository get by username failed", err, logger.Fields{
			"username": username,
		})
		return domain.Employee{}, fmt.Errorf("get employee by username: %w", err)
	}

	return employee, nil
}

func scanEmployee(row rowScanner, employee *domain.Employee) error {
	return row.Scan(
		&employee.ID,
		&employee.Username,
		&employee.PasswordHash,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
}
