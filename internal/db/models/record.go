package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record holds the columns shared by every shelter record.
// Identifiers are random UUIDs assigned on insert.
type Record struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none was provided.
func (r *Record) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	return nil
}

// GetID returns the record identifier.
func (r *Record) GetID() string {
	return r.ID
}
