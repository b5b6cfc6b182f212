package models

import "time"

// Event is a public event organized or attended by the shelter.
type Event struct {
	Record
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Organizer   string     `gorm:"size:200" json:"organizer"`
	Tags        string     `gorm:"size:500" json:"tags"`
	IsActive    bool       `gorm:"not null" json:"isActive"`
	StartAt     *time.Time `json:"startAt"`
	FinishAt    *time.Time `json:"finishAt"`
}

// TableName specifies the database table name for the Event model.
func (Event) TableName() string {
	return "events"
}
