package models

// Animal is an animal sheltered by the organization.
type Animal struct {
	Record
	Name        string       `gorm:"size:100;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Species     Species      `gorm:"type:varchar(10);not null" json:"species"`
	BreedID     *string      `gorm:"size:36;index" json:"breedId"`
	Breed       *Breed       `gorm:"foreignKey:BreedID;constraint:OnDelete:RESTRICT" json:"breed,omitempty"`
	Gender      Gender       `gorm:"type:varchar(10);not null;default:'UNSET'" json:"gender"`
	ImageURL    string       `gorm:"size:500" json:"imageUrl"`
	Status      AnimalStatus `gorm:"type:varchar(20);not null;default:'UNSET';index" json:"status"`
}

// TableName specifies the database table name for the Animal model.
func (Animal) TableName() string {
	return "animals"
}
