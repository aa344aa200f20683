package services

import (
	"context"
	"strings"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
)

// SwiftSubmissionService releases payments to SWIFT. Release is simulated as
// a status change to Submitted.
//
// Any listed id is moved to Submitted whatever its current status or owner;
// the staff session check in front of the route is the only gate. Repeating a
// submission is safe and reports only rows that actually changed.
type SwiftSubmissionService struct {
	paymentRepo repo_interfaces.PaymentRepository
}

func NewSwiftSubmissionService(paymentRepo repo_interfaces.PaymentRepository) *SwiftSubmissionService {
	return &SwiftSubmissionService{paymentRepo: paymentRepo}
}

func (s *SwiftSubmissionService) Submit(ctx context.Context, ids []string) (int64, error) {
	unique := uniqueIDs(ids)
	logger.Info("swift submission service submit request", logger.Fields{
		"requested": len(ids),
		"unique":    len(unique),
	})

	if len(unique) == 0 {
		return 0, nil
	}

	modified, err := s.paymentRepo.UpdateStatusForIDs(ctx, unique, domain.PaymentStatusSubmitted)
	if err != nil {
		return 0, err
	}

	logger.Info("swift submission service submit success", logger.Fields{
		"modified": modified,
	})

	return modified, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
