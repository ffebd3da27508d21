package models

import (
	"time"
)

type Institution struct {
	ID           string    `gorm:"size:10;primaryKey" json:"id"`
	Code         string    `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Type         string    `gorm:"size:10" json:"type"`
	Description  string    `gorm:"type:text" json:"description"`
	Abbreviation string    `gorm:"size:20" json:"abbreviation"`
	LogoPath     string    `gorm:"size:255" json:"logo_path"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Departments []Department `gorm:"foreignKey:InstitutionID" json:"departments,omitempty"`
}

func (Institution) TableName() string {
	return "institutions"
}
