package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = time.Hour

// sessionClaims is the signed payload. Kind keeps customer and staff sessions
// apart; nothing else about the principal is carried.
type sessionClaims struct {
	Kind domain.PrincipalKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. Verification is
// stateless: a token stays valid until it expires.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string, now func() time.Time) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		secret: []byte(secret),
		now:    now,
	}
}

func (s *TokenService) Issue(kind domain.PrincipalKind, subjectID string) (string, error) {
	subjectID = strings.TrimSpace(subjectID)
	if !kind.Valid() {
		return "", fmt.Errorf("issue token: unknown principal kind %q", kind)
	}
	if subjectID == "" {
		return "", fmt.Errorf("issue token: subject id is required")
	}

	issuedAt := s.now().UTC()
	claims := sessionClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (s *TokenService) Verify(token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, domain.ErrNoToken
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Principal{}, mapJWTError(err)
	}

	if !claims.Kind.Valid() || strings.TrimSpace(claims.Subject) == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{
		Kind:      claims.Kind,
		SubjectID: claims.Subject,
	}, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return fmt.Errorf("%w: %v", domain.ErrExpiredToken, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
}
