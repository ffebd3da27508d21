package models

import (
	"time"
)

// ProgramLevel ties a program to a level it actually offers. Rows are
// derived from enrollments by the deduction stage and are never written by
// anything else; Ordinal ranks levels in academic progression order.
type ProgramLevel struct {
	ID        string    `gorm:"size:50;primaryKey" json:"id"`
	ProgramID string    `gorm:"size:15;not null;uniqueIndex:idx_program_level" json:"program_id"`
	LevelID   string    `gorm:"size:10;not null;uniqueIndex:idx_program_level" json:"level_id"`
	Ordinal   int       `gorm:"not null" json:"ordinal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Program Program `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	Level   Level   `gorm:"foreignKey:LevelID" json:"level,omitempty"`
}

func (ProgramLevel) TableName() string {
	return "program_levels"
}
