package models

import (
	"time"
)

// Enrollment is keyed by the natural enrollment code from the source file.
// The composite index enforces at most one enrollment per student per
// program per semester per academic year; the importer merges on that
// tuple, so a later row with the same tuple but another code replaces the
// earlier one.
type Enrollment struct {
	Code           string     `gorm:"size:100;primaryKey" json:"code"`
	StudentID      string     `gorm:"size:50;not null;uniqueIndex:idx_enrollment_key" json:"student_id"`
	AcademicYearID string     `gorm:"size:9;not null;uniqueIndex:idx_enrollment_key" json:"academic_year_id"`
	ProgramID      string     `gorm:"size:15;not null;uniqueIndex:idx_enrollment_key" json:"program_id"`
	SemesterID     string     `gorm:"size:10;not null;uniqueIndex:idx_enrollment_key" json:"semester_id"`
	ModeID         string     `gorm:"size:10" json:"mode_id"`
	EnrolledAt     *time.Time `json:"enrolled_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Student      Student        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	AcademicYear AcademicYear   `gorm:"foreignKey:AcademicYearID" json:"academic_year,omitempty"`
	Program      Program        `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	Semester     Semester       `gorm:"foreignKey:SemesterID" json:"semester,omitempty"`
	Mode         EnrollmentMode `gorm:"foreignKey:ModeID" json:"mode,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
