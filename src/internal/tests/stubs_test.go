package services_test

import (
	"context"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/usecase/services"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type customerRepoStub struct {
	createFn       func(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	getByIDFn      func(ctx context.Context, id string) (domain.Customer, error)
	getByLoginFn   func(ctx context.Context, fullName string, accountNumber string) (domain.Customer, error)
	existsByKeysFn func(ctx context.Context, idNumber string, accountNumber string) (bool, error)
}

func (s customerRepoStub) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if s.createFn != nil {
		return s.createFn(ctx, customer)
	}
	return customer, nil
}

func (s customerRepoStub) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return domain.Customer{}, domain.ErrRecordNotFound
}

func (s customerRepoStub) GetByFullNameAndAccountNumber(ctx context.Context, fullName string, accountNumber string) (domain.Customer, error) {
	if s.getByLoginFn != nil {
		return s.getByLoginFn(ctx, fullName, accountNumber)
	}
	return domain.Customer{}, domain.ErrRecordNotFound
}

func (s customerRepoStub) ExistsByIDNumberOrAccountNumber(ctx context.Context, idNumber string, accountNumber string) (bool, error) {
	if s.existsByKeysFn != nil {
		return s.existsByKeysFn(ctx, idNumber, accountNumber)
	}
	return false, nil
}

type employeeRepoStub struct {
	createFn        func(ctx context.Context, employee domain.Employee) (domain.Employee, error)
	getByUsernameFn func(ctx context.Context, username string) (domain.Employee, error)
}

func (s employeeRepoStub) Create(ctx context.Context, employee domain.Employee) (domain.Employee, error) {
	if s.createFn != nil {
		return s.createFn(ctx, employee)
	}
	return employee, nil
}

func (s employeeRepoStub) GetByUsername(ctx context.Context, username string) (domain.Employee, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return domain.Employee{}, domain.ErrRecordNotFound
}

type paymentRepoStub struct {
	createFn           func(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	listByCustomerFn   func(ctx context.Context, customerID string) ([]domain.Payment, error)
	listByStatusFn     func(ctx context.Context, status domain.PaymentStatus) ([]domain.PaymentWithOwner, error)
	updateStatusForIDs func(ctx context.Context, ids []string, status domain.PaymentStatus) (int64, error)
}

func (s paymentRepoStub) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if s.createFn != nil {
		return s.createFn(ctx, payment)
	}
	return payment, nil
}

func (s paymentRepoStub) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Payment, error) {
	if s.listByCustomerFn != nil {
		return s.listByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

func (s paymentRepoStub) ListByStatusWithOwner(ctx context.Context, status domain.PaymentStatus) ([]domain.PaymentWithOwner, error) {
	if s.listByStatusFn != nil {
		return s.listByStatusFn(ctx, status)
	}
	return nil, nil
}

func (s paymentRepoStub) UpdateStatusForIDs(ctx context.Context, ids []string, status domain.PaymentStatus) (int64, error) {
	if s.updateStatusForIDs != nil {
		return s.updateStatusForIDs(ctx, ids, status)
	}
	return 0, nil
}

func newHasher() *services.PasswordHasher {
	return services.NewPasswordHasher(bcrypt.MinCost, 2)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
