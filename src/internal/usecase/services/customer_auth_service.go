package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
	"github.com/api-sage/swift-payments-portal/src/internal/usecase/service_interfaces"
)

// CustomerSession is a freshly issued customer token and the customer it names.
type CustomerSession struct {
	Token    string
	Customer domain.Customer
}

type CustomerAuthService struct {
	customerRepo repo_interfaces.CustomerRepository
	hasher       service_interfaces.PasswordHasher
	tokens       service_interfaces.TokenService
	newID        func() string
	now          func() time.Time
}

func NewCustomerAuthService(
	customerRepo repo_interfaces.CustomerRepository,
	hasher service_interfaces.PasswordHasher,
	tokens service_interfaces.TokenService,
) *CustomerAuthService {
	return &CustomerAuthService{
		customerRepo: customerRepo,
		hasher:       hasher,
		tokens:       tokens,
		newID:        newRecordID,
		now:          utcNow,
	}
}

func (s *CustomerAuthService) Register(ctx context.Context, req models.RegisterCustomerRequest) (CustomerSession, error) {
	logger.Info("customer auth service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return CustomerSession{}, err
	}

	exists, err := s.customerRepo.ExistsByIDNumberOrAccountNumber(ctx, req.IDNumber, req.AccountNumber)
	if err != nil {
		logger.Error("customer auth service register lookup failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		return CustomerSession{}, fmt.Errorf("check existing customer: %w", err)
	}
	if exists {
		logger.Warn("customer auth service register duplicate", logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		return CustomerSession{}, fmt.Errorf("register customer: %w", domain.ErrDuplicateRecord)
	}

	passwordHash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return CustomerSession{}, err
	}

	now := s.now()
	created, err := s.customerRepo.Create(ctx, domain.Customer{
		ID:            s.newID(),
		FullName:      strings.TrimSpace(req.FullName),
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		PasswordHash:  passwordHash,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return CustomerSession{}, err
	}

	token, err := s.tokens.Issue(domain.PrincipalCustomer, created.ID)
	if err != nil {
		logger.Error("customer auth service register issue token failed", err, logger.Fields{
			"customerId": created.ID,
		})
		return CustomerSession{}, err
	}

	logger.Info("customer auth service register success", logger.Fields{
		"customerId":    created.ID,
		"fullName":      created.FullName,
		"accountNumber": created.AccountNumber,
	})

	return CustomerSession{Token: token, Customer: created}, nil
}

func (s *CustomerAuthService) Login(ctx context.Context, req models.LoginCustomerRequest) (CustomerSession, error) {
	logger.Info("customer auth service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return CustomerSession{}, err
	}

	fullName := strings.TrimSpace(req.FullName)
	customer, err := s.customerRepo.GetByFullNameAndAccountNumber(ctx, fullName, req.AccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logger.Warn("customer auth service login customer not found", logger.Fields{
				"fullName":      fullName,
				"accountNumber": req.AccountNumber,
			})
			return CustomerSession{}, domain.ErrBadCredentials
		}
		return CustomerSession{}, err
	}

	if customer.PasswordHash == "" {
		err := fmt.Errorf("customer %s has no stored password", customer.ID)
		logger.Error("customer auth service login missing password hash", err, logger.Fields{
			"customerId": customer.ID,
		})
		return CustomerSession{}, err
	}

	if err := s.hasher.Compare(ctx, customer.PasswordHash, req.Password); err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			logger.Warn("customer auth service login password mismatch", logger.Fields{
				"fullName":      fullName,
				"accountNumber": req.AccountNumber,
			})
		}
		return CustomerSession{}, err
	}

	token, err := s.tokens.Issue(domain.PrincipalCustomer, customer.ID)
	if err != nil {
		return CustomerSession{}, err
	}

	logger.Info("customer auth service login success", logger.Fields{
		"customerId":    customer.ID,
		"accountNumber": customer.AccountNumber,
	})

	return CustomerSession{Token: token, Customer: customer}, nil
}

// Refresh exchanges a live customer token for a new one with a full lifetime.
func (s *CustomerAuthService) Refresh(_ context.Context, token string) (string, error) {
	principal, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	if principal.Kind != domain.PrincipalCustomer {
		return "", domain.ErrWrongPrincipalKind
	}

	refreshed, err := s.tokens.Issue(domain.PrincipalCustomer, principal.SubjectID)
	if err != nil {
		return "", err
	}

	logger.Info("customer auth service token refreshed", logger.Fields{
		"customerId": principal.SubjectID,
	})

	return refreshed, nil
}
