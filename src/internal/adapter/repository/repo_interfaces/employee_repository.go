package repo_interfaces

import (
	"context"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	GetByUsername(ctx context.Context, username string) (domain.Employee, error)
}
