package service_interfaces

import "github.com/api-sage/swift-payments-portal/src/internal/domain"

type TokenService interface {
	Issue(kind domain.PrincipalKind, subjectID string) (string, error)
	Verify(token string) (domain.Principal, error)
}
