package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ImportRunStatusRunning = "running"
	ImportRunStatusSuccess = "success"
	ImportRunStatusFailed  = "failed"
)

// ImportRun records one execution of the pipeline so operators can
// reconcile partial-failure runs against the audit log.
type ImportRun struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Status       string     `gorm:"size:20;not null;default:running" json:"status"`
	ErrorMessage *string    `gorm:"type:text" json:"error_message"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`

	RowsInserted int `gorm:"not null;default:0" json:"rows_inserted"`
	RowsUpdated  int `gorm:"not null;default:0" json:"rows_updated"`
	RowsSkipped  int `gorm:"not null;default:0" json:"rows_skipped"`
	RowsFailed   int `gorm:"not null;default:0" json:"rows_failed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}

func (r *ImportRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
