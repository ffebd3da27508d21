package models

import (
	"time"
)

// Yearly label snapshots for entities whose canonical label may change
// across academic years. One table per historized entity type, keyed by
// (entity id, academic year id).

type InstitutionHistory struct {
	InstitutionID  string    `gorm:"size:10;primaryKey" json:"institution_id"`
	AcademicYearID string    `gorm:"size:9;primaryKey" json:"academic_year_id"`
	Label          string    `gorm:"size:255;not null" json:"label"`
	Code           string    `gorm:"size:32" json:"code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (InstitutionHistory) TableName() string {
	return "institution_history"
}

type DepartmentHistory struct {
	DepartmentID   string    `gorm:"size:12;primaryKey" json:"department_id"`
	AcademicYearID string    `gorm:"size:9;primaryKey" json:"academic_year_id"`
	Label          string    `gorm:"size:255;not null" json:"label"`
	Code           string    `gorm:"size:50" json:"code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (DepartmentHistory) TableName() string {
	return "department_history"
}

type MentionHistory struct {
	MentionID      string    `gorm:"size:12;primaryKey" json:"mention_id"`
	AcademicYearID string    `gorm:"size:9;primaryKey" json:"academic_year_id"`
	Label          string    `gorm:"size:255;not null" json:"label"`
	Code           string    `gorm:"size:50" json:"code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (MentionHistory) TableName() string {
	return "mention_history"
}

type ProgramHistory struct {
	ProgramID      string    `gorm:"size:15;primaryKey" json:"program_id"`
	AcademicYearID string    `gorm:"size:9;primaryKey" json:"academic_year_id"`
	Label          string    `gorm:"size:255;not null" json:"label"`
	Code           string    `gorm:"size:50" json:"code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ProgramHistory) TableName() string {
	return "program_history"
}
