package models

// All returns every model managed by AutoMigrate, parents before children.
func All() []any {
	return []any{
		&User{},
		&Session{},
		&Breed{},
		&Animal{},
		&Campaign{},
		&Event{},
		&Report{},
		&Person{},
	}
}
