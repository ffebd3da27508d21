package models

import (
	"time"
)

// Student is keyed by the natural identifier carried in the enrollment
// extract, not by a pipeline-generated id.
type Student struct {
	ID                 string     `gorm:"size:50;primaryKey" json:"id"`
	RegistrationNumber string     `gorm:"size:100" json:"registration_number"`
	LastName           string     `gorm:"size:100;not null" json:"last_name"`
	FirstNames         string     `gorm:"size:150" json:"first_names"`
	Gender             string     `gorm:"size:20" json:"gender"`
	BirthDate          *time.Time `json:"birth_date"`
	BirthPlace         string     `gorm:"size:100" json:"birth_place"`
	Nationality        string     `gorm:"size:50" json:"nationality"`
	BaccYear           *int       `json:"bacc_year"`
	BaccSeries         string     `gorm:"size:50" json:"bacc_series"`
	BaccNumber         string     `gorm:"size:10" json:"bacc_number"`
	BaccCenter         string     `gorm:"size:100" json:"bacc_center"`
	BaccHonors         string     `gorm:"size:20" json:"bacc_honors"`
	Phone              string     `gorm:"size:50" json:"phone"`
	Email              string     `gorm:"size:100" json:"email"`
	NationalID         string     `gorm:"size:15" json:"national_id"`
	NationalIDDate     *time.Time `json:"national_id_date"`
	NationalIDPlace    string     `gorm:"size:100" json:"national_id_place"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Relations
	Enrollments []Enrollment `gorm:"foreignKey:StudentID" json:"enrollments,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
