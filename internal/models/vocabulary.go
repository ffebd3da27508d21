package models

import (
	"time"
)

// Fixed vocabularies seeded by the import pipeline, never spreadsheet-driven.

type Cycle struct {
	ID        string    `gorm:"size:10;primaryKey" json:"id"`
	Code      string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Label     string    `gorm:"size:50;not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Levels []Level `gorm:"foreignKey:CycleID" json:"levels,omitempty"`
}

func (Cycle) TableName() string {
	return "cycles"
}

type Level struct {
	ID        string    `gorm:"size:10;primaryKey" json:"id"`
	Code      string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Label     string    `gorm:"size:50" json:"label"`
	CycleID   string    `gorm:"size:10;not null;index" json:"cycle_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Cycle     Cycle      `gorm:"foreignKey:CycleID" json:"cycle,omitempty"`
	Semesters []Semester `gorm:"foreignKey:LevelID" json:"semesters,omitempty"`
}

func (Level) TableName() string {
	return "levels"
}

// Semester codes embed the owning level (L1_S01); Number is the global
// two-digit token (S01..S10).
type Semester struct {
	ID        string    `gorm:"size:10;primaryKey" json:"id"`
	Code      string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Number    string    `gorm:"size:10;not null;index" json:"number"`
	LevelID   string    `gorm:"size:10;not null;index" json:"level_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Level Level `gorm:"foreignKey:LevelID" json:"level,omitempty"`
}

func (Semester) TableName() string {
	return "semesters"
}

type ExamSession struct {
	ID        string    `gorm:"size:8;primaryKey" json:"id"`
	Code      string    `gorm:"size:5;uniqueIndex;not null" json:"code"`
	Label     string    `gorm:"size:50;not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

type EnrollmentMode struct {
	ID        string    `gorm:"size:10;primaryKey" json:"id"`
	Code      string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Label     string    `gorm:"size:50;not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EnrollmentMode) TableName() string {
	return "enrollment_modes"
}

type ProgramType struct {
	ID          string    `gorm:"size:10;primaryKey" json:"id"`
	Code        string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Label       string    `gorm:"size:50;not null" json:"label"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProgramType) TableName() string {
	return "program_types"
}

// AcademicYear ordinals enforce chronological order independent of the
// label's string comparison.
type AcademicYear struct {
	ID          string    `gorm:"size:9;primaryKey" json:"id"`
	Year        string    `gorm:"size:9;uniqueIndex;not null" json:"year"`
	Ordinal     int       `gorm:"uniqueIndex;not null" json:"ordinal"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (AcademicYear) TableName() string {
	return "academic_years"
}
