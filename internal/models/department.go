package models

import (
	"time"
)

// Department is an institution component (faculty, school, UFR). Its
// generated ids carry the COMP prefix.
type Department struct {
	ID            string    `gorm:"size:12;primaryKey" json:"id"`
	Code          string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Label         string    `gorm:"size:100" json:"label"`
	Abbreviation  string    `gorm:"size:20" json:"abbreviation"`
	LogoPath      string    `gorm:"size:255" json:"logo_path"`
	InstitutionID string    `gorm:"size:10;not null;index" json:"institution_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Institution Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	Mentions    []Mention   `gorm:"foreignKey:DepartmentID" json:"mentions,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
