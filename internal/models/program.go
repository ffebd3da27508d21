package models

import (
	"time"
)

// Program is a study track (parcours) inside a mention. The PARC-prefixed
// ids are generated; the natural code is unique within the mention.
type Program struct {
	ID            string     `gorm:"size:15;primaryKey" json:"id"`
	Code          string     `gorm:"size:50;not null;uniqueIndex:idx_program_code_mention" json:"code"`
	MentionID     string     `gorm:"size:12;not null;uniqueIndex:idx_program_code_mention" json:"mention_id"`
	Label         string     `gorm:"size:100" json:"label"`
	Abbreviation  string     `gorm:"size:20" json:"abbreviation"`
	ProgramTypeID *string    `gorm:"size:10" json:"program_type_id"`
	CreationDate  *time.Time `json:"creation_date"`
	EndDate       *time.Time `json:"end_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Mention     Mention        `gorm:"foreignKey:MentionID" json:"mention,omitempty"`
	ProgramType *ProgramType   `gorm:"foreignKey:ProgramTypeID" json:"program_type,omitempty"`
	Levels      []ProgramLevel `gorm:"foreignKey:ProgramID" json:"levels,omitempty"`
}

func (Program) TableName() string {
	return "programs"
}
