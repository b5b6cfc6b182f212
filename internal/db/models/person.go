package models

import "time"

// Person is a registered adopter, volunteer or donor.
type Person struct {
	Record
	Name      string     `gorm:"size:150;not null" json:"name"`
	CPF       string     `gorm:"column:cpf;uniqueIndex;size:14;not null" json:"cpf"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    Gender     `gorm:"type:varchar(10);not null;default:'UNSET'" json:"gender"`
}

// TableName specifies the database table name for the Person model.
func (Person) TableName() string {
	return "people"
}
