package session

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTStore issues HS256 signed tokens carrying the session itself.
// Nothing is stored, so Revoke and RevokeUser cannot end a session early;
// the per-request active check in internal/auth still applies.
type JWTStore struct {
	key    []byte
	issuer string
	clock  clock
}

// NewJWTStore returns a stateless store signing with key.
func NewJWTStore(key []byte, issuer string) *JWTStore {
	return &JWTStore{key: key, issuer: issuer}
}

// WithClock overrides the time source.
func (s *JWTStore) WithClock(now func() time.Time) *JWTStore {
	s.clock = now
	return s
}

// Issue implements Store.
func (s *JWTStore) Issue(_ context.Context, userID uint64, role rbac.Role, ttl time.Duration) (*Session, error) {
	if err := checkIssue(role, ttl); err != nil {
		return nil, err
	}

	// JWT timestamps have second precision
	now := s.clock.now().Truncate(time.Second)
	exp := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := token.SignedString(s.key)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &Session{Token: signed, UserID: userID, Role: role, IssuedAt: now, ExpiresAt: exp}, nil
}

// Lookup implements Store. Only the signature and the claim shape are
// verified here; an expired token is returned so the caller decides.
func (s *JWTStore) Lookup(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	var c claims

	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, ErrNotFound
	}

	if s.issuer != "" && c.Issuer != s.issuer {
		return nil, ErrNotFound
	}

	if c.ExpiresAt == nil || c.IssuedAt == nil {
		return nil, ErrNotFound
	}

	userID, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	role, err := rbac.ParseRole(c.Role)
	if err != nil {
		return nil, ErrNotFound
	}

	return &Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		IssuedAt:  c.IssuedAt.UTC(),
		ExpiresAt: c.ExpiresAt.UTC(),
	}, nil
}

// Revoke implements Store. It is a no-op for stateless tokens.
func (s *JWTStore) Revoke(context.Context, string) error {
	return nil
}

// RevokeUser implements Store. It is a no-op for stateless tokens.
func (s *JWTStore) RevokeUser(context.Context, uint64) error {
	return nil
}
