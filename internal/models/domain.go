package models

import (
	"time"
)

// Domain is an independent classification axis referenced by mentions.
type Domain struct {
	ID          string    `gorm:"size:20;primaryKey" json:"id"`
	Code        string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Label       string    `gorm:"size:100" json:"label"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Domain) TableName() string {
	return "domains"
}
