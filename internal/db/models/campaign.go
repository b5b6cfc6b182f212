package models

import "time"

// Campaign is a fund-raising or adoption campaign.
type Campaign struct {
	Record
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	TargetAmount float64    `json:"targetAmount"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	FinishAt     *time.Time `json:"finishAt"`
}

// TableName specifies the database table name for the Campaign model.
func (Campaign) TableName() string {
	return "campaigns"
}
