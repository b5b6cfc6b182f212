package models

// Breed is an animal breed referenced by animals.
type Breed struct {
	Record
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// TableName specifies the database table name for the Breed model.
func (Breed) TableName() string {
	return "breeds"
}
