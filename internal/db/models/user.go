package models

import (
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

// User represents a staff account of the shelter administration.
// Every user carries exactly one role from the permission matrix.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Active indicates whether the account may sign in and pass authorization.
	Active bool `gorm:"not null;default:true" json:"active"`
	// Email is the unique login name.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	// Name is the display name shown in the interface.
	Name string `gorm:"size:100;not null" json:"name"`
	// Password is the password hash (argon2id, or bcrypt for imported accounts).
	Password string `gorm:"size:255" json:"-"`
	// Role is the privilege level of the account.
	Role rbac.Role `gorm:"type:varchar(20);not null;default:'VIEWER'" json:"role"`
	// ValidUntil optionally limits the account lifetime (temporary volunteers).
	ValidUntil *time.Time `json:"validUntil"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// Enabled reports whether the account may act at the given instant:
// it must be active and, when ValidUntil is set, not past it.
func (u *User) Enabled(now time.Time) bool {
	if u == nil || !u.Active {
		return false
	}

	if u.ValidUntil != nil && !now.Before(*u.ValidUntil) {
		return false
	}

	return true
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// VerifyPassword verifies a plaintext password against the user's stored hash.
// Hashes imported from the previous system are bcrypt and verified as such.
func (u *User) VerifyPassword(password string) bool {
	if u.Password == "" {
		return false
	}

	if strings.HasPrefix(u.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", u.ID).Msg("failed to verify password")
		return false
	}

	return match
}

// NeedsRehash reports whether the stored hash uses a legacy algorithm.
func (u *User) NeedsRehash() bool {
	return strings.HasPrefix(u.Password, "$2")
}
