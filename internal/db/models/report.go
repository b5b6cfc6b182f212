package models

// Report is an abuse or neglect report received by the shelter.
type Report struct {
	Record
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Address     string       `gorm:"size:300" json:"address"`
	Tags        string       `gorm:"size:500" json:"tags"`
	Status      ReportStatus `gorm:"type:varchar(20);not null;default:'AWAITING';index" json:"status"`
}

// TableName specifies the database table name for the Report model.
func (Report) TableName() string {
	return "reports"
}
