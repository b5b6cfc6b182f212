package models

import "time"

// Session is a server-side login session persisted by the database store.
// Rows are inserted once at login and deleted at logout; they are never updated.
type Session struct {
	// Token is the opaque credential handed to the client.
	Token string `gorm:"primaryKey;size:64"`
	// UserID references the owner of the session.
	UserID uint64 `gorm:"index;not null"`
	// Role is the role snapshot captured at issuance.
	Role string `gorm:"type:varchar(20);not null"`
	// IssuedAt is the time of login.
	IssuedAt time.Time `gorm:"not null"`
	// ExpiresAt is the instant from which the session is no longer valid.
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}
