package models

import (
	"time"
)

// Mention groups programs under a department. Its natural code is only
// unique within the owning department, hence the composite index.
type Mention struct {
	ID           string    `gorm:"size:12;primaryKey" json:"id"`
	Code         string    `gorm:"size:30;not null;uniqueIndex:idx_mention_code_dept" json:"code"`
	DepartmentID string    `gorm:"size:12;not null;uniqueIndex:idx_mention_code_dept" json:"department_id"`
	Label        string    `gorm:"size:100" json:"label"`
	Abbreviation string    `gorm:"size:20" json:"abbreviation"`
	DomainID     string    `gorm:"size:20;not null;index" json:"domain_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Domain     Domain     `gorm:"foreignKey:DomainID" json:"domain,omitempty"`
	Programs   []Program  `gorm:"foreignKey:MentionID" json:"programs,omitempty"`
}

func (Mention) TableName() string {
	return "mentions"
}
