package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

const tokenBytes = 32

var (
	// ErrNotFound is returned by Lookup for unknown, malformed or tampered tokens.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidTTL is returned by Issue for a non-positive lifetime.
	ErrInvalidTTL = errors.New("session lifetime must be positive")
	// ErrInvalidRole is returned by Issue for a role outside the matrix.
	ErrInvalidRole = errors.New("session role is not a known role")
)

// Session is the proof of an authenticated login.
type Session struct {
	Token     string    `json:"-"`
	UserID    uint64    `json:"userId"`
	Role      rbac.Role `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether the session has not yet expired at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}

// Store persists sessions.
type Store interface {
	// Issue creates a session for the user, valid for ttl.
	Issue(ctx context.Context, userID uint64, role rbac.Role, ttl time.Duration) (*Session, error)
	// Lookup returns the session for token or ErrNotFound.
	Lookup(ctx context.Context, token string) (*Session, error)
	// Revoke deletes a single session. Unknown tokens are not an error.
	Revoke(ctx context.Context, token string) error
	// RevokeUser deletes every session of the user.
	RevokeUser(ctx context.Context, userID uint64) error
}

// NewToken returns a random opaque token: 32 bytes, hex encoded.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err //nolint:wrapcheck
	}

	return hex.EncodeToString(b), nil
}

// wellFormed reports whether token could have been produced by NewToken.
func wellFormed(token string) bool {
	if len(token) != 2*tokenBytes {
		return false
	}

	_, err := hex.DecodeString(token)

	return err == nil
}

func checkIssue(role rbac.Role, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	if !role.Valid() {
		return ErrInvalidRole
	}

	return nil
}

// clock is shared by the stores so tests can pin time.
type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}

	return c().UTC()
}
