package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := newHasher()
	ctx := context.Background()

	for _, password := range []string{"secret1", "p@ss word with spaces", "ünïcødé-pw"} {
		hash, err := hasher.Hash(ctx, password)
		if err != nil {
			t.Fatalf("hash %q: %v", password, err)
		}
		if hash == password || !strings.HasPrefix(hash, "$2") {
			t.Fatalf("expected a bcrypt hash, got %q", hash)
		}
		if err := hasher.Compare(ctx, hash, password); err != nil {
			t.Fatalf("compare %q: %v", password, err)
		}
		if err := hasher.Compare(ctx, hash, password+"x"); !errors.Is(err, domain.ErrBadCredentials) {
			t.Fatalf("expected bad credentials for wrong password, got %v", err)
		}
	}
}

func TestPasswordHasherSaltsEachHash(t *testing.T) {
	hasher := newHasher()
	ctx := context.Background()

	first, err := hasher.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected different salts for identical passwords")
	}
}

func TestPasswordHasherRejectsOverlongPassword(t *testing.T) {
	_, err := newHasher().Hash(context.Background(), strings.Repeat("a", 73))

	var validationErr domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPasswordHasherHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newHasher().Hash(ctx, "secret1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
