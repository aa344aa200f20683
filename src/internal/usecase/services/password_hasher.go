package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher runs bcrypt off the request goroutine. At most maxConcurrent
// computations run at once; callers waiting on a slot or a result give up when
// their context ends.
type PasswordHasher struct {
	cost  int
	slots *semaphore.Weighted
}

func NewPasswordHasher(cost int, maxConcurrent int64) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &PasswordHasher{
		cost:  cost,
		slots: semaphore.NewWeighted(maxConcurrent),
	}
}

func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	var hashed []byte
	err := h.run(ctx, func() error {
		var err error
		hashed, err = bcrypt.GenerateFromPassword([]byte(password), h.cost)
		return err
	})
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.NewValidationError("Password must be at most 72 bytes")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

// Compare returns domain.ErrBadCredentials when password does not match hash.
func (h *PasswordHasher) Compare(ctx context.Context, hash string, password string) error {
	err := h.run(ctx, func() error {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrBadCredentials
	}

	return fmt.Errorf("compare password: %w", err)
}

func (h *PasswordHasher) run(ctx context.Context, fn func() error) error {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire hashing slot: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		defer h.slots.Release(1)
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
