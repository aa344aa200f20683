package repo_interfaces

import (
	"context"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	GetByFullNameAndAccountNumber(ctx context.Context, fullName string, accountNumber string) (domain.Customer, error)
	ExistsByIDNumberOrAccountNumber(ctx context.Context, idNumber string, accountNumber string) (bool, error)
}
