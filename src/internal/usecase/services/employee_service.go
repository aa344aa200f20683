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

type EmployeeService struct {
	employeeRepo repo_interfaces.EmployeeRepository
	hasher       service_interfaces.PasswordHasher
	tokens       service_interfaces.TokenService
	newID        func() string
	now          func() time.Time
}

func NewEmployeeService(
	employeeRepo repo_interfaces.EmployeeRepository,
	hasher service_interfaces.PasswordHasher,
	tokens service_interfaces.TokenService,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		hasher:       hasher,
		tokens:       tokens,
		newID:        newRecordID,
		now:          utcNow,
	}
}

func (s *EmployeeService) Login(ctx context.Context, req models.EmployeeLoginRequest) (string, error) {
	logger.Info("employee service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return "", err
	}

	username := strings.TrimSpace(req.Username)
	employee, err := s.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logger.Warn("employee service login employee not found", logger.Fields{
				"username": username,
			})
			return "", domain.ErrBadCredentials
		}
		return "", err
	}

	if err := s.hasher.Compare(ctx, employee.PasswordHash, req.Password); err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			logger.Warn("employee service login password mismatch", logger.Fields{
				"username": username,
			})
		}
		return "", err
	}

	token, err := s.tokens.Issue(domain.PrincipalEmployee, employee.ID)
	if err != nil {
		return "", err
	}

	logger.Info("employee service login success", logger.Fields{
		"employeeId": employee.ID,
		"username":   employee.Username,
	})

	return token, nil
}

// Provision creates a staff account. It is only reachable out of band, through
// the admin channel or startup seeding.
func (s *EmployeeService) Provision(ctx context.Context, req models.CreateEmployeeRequest) (domain.Employee, error) {
	logger.Info("employee service provision request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return domain.Employee{}, err
	}

	passwordHash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return domain.Employee{}, err
	}

	now := s.now()
	created, err := s.employeeRepo.Create(ctx, domain.Employee{
		ID:           s.newID(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return domain.Employee{}, err
	}

	logger.Info("employee service provision success", logger.Fields{
		"employeeId": created.ID,
		"username":   created.Username,
	})

	return created, nil
}

// EnsureSeeded provisions username unless it already exists.
func (s *EmployeeService) EnsureSeeded(ctx context.Context, username string, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, nil
	}

	_, err := s.employeeRepo.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return false, fmt.Errorf("look up seed employee: %w", err)
	}

	if _, err := s.Provision(ctx, models.CreateEmployeeRequest{Username: username, Password: password}); err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return false, nil
		}
		return false, fmt.Errorf("seed employee: %w", err)
	}

	return true, nil
}
