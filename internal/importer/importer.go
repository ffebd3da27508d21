// Package importer loads the academic registry from spreadsheet extracts:
// fixed vocabularies, the four-level institution hierarchy, students and
// enrollments, then the derived program-level associations and the yearly
// label history. Stages run strictly in that order and each commits before
// the next starts, so later stages only ever read committed state.
package importer

import (
	"fmt"
	"log"
	"time"

	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/source"
	"gorm.io/gorm"
)

// LogoResolver locates an institution's logo asset by natural code and
// returns the stored object path, or "" when there is none. The MinIO
// implementation lives in services; the importer only needs this much.
type LogoResolver interface {
	Resolve(code string) string
}

type Importer struct {
	db    *gorm.DB
	audit *AuditLog

	Institutions source.Source
	Metadata     source.Source
	Enrollments  source.Source

	// Inclusive academic-year range seeded by the vocabulary stage.
	YearStart int
	YearEnd   int

	// Optional collaborators.
	Logos LogoResolver
}

func New(db *gorm.DB, audit *AuditLog, institutions, metadata, enrollments source.Source) *Importer {
	return &Importer{
		db:           db,
		audit:        audit,
		Institutions: institutions,
		Metadata:     metadata,
		Enrollments:  enrollments,
		YearStart:    2021,
		YearEnd:      2026,
	}
}

// Run executes the full pipeline and records it as an ImportRun. Row-level
// problems are tallied and logged but never abort a stage; a stage-level
// failure rolls back that stage and halts the remaining pipeline.
func (imp *Importer) Run() (*RunSummary, error) {
	run := models.ImportRun{
		Status:    models.ImportRunStatusRunning,
		StartedAt: time.Now(),
	}
	if err := imp.db.Create(&run).Error; err != nil {
		return nil, fmt.Errorf("failed to record import run: %w", err)
	}

	summary := &RunSummary{}
	err := imp.runStages(summary)

	now := time.Now()
	run.FinishedAt = &now
	run.RowsInserted, run.RowsUpdated, run.RowsSkipped, run.RowsFailed = summary.Totals()
	if err != nil {
		run.Status = models.ImportRunStatusFailed
		msg := err.Error()
		run.ErrorMessage = &msg
	} else {
		run.Status = models.ImportRunStatusSuccess
	}
	if saveErr := imp.db.Save(&run).Error; saveErr != nil {
		log.Printf("Warning: failed to finalize import run: %v", saveErr)
	}

	summary.Log()
	return summary, err
}

func (imp *Importer) runStages(summary *RunSummary) error {
	log.Println("Stage 1/6: fixed vocabularies")
	if err := imp.db.Transaction(func(tx *gorm.DB) error {
		return imp.seedVocabulary(tx, summary.stage("vocabulary"))
	}); err != nil {
		return fmt.Errorf("vocabulary stage failed: %w", err)
	}

	log.Println("Stage 2/6: institution hierarchy")
	if err := imp.importHierarchy(summary); err != nil {
		return fmt.Errorf("hierarchy stage failed: %w", err)
	}

	log.Println("Stage 3/6: students")
	enrollmentRows, err := imp.Enrollments.Load()
	if err != nil {
		return fmt.Errorf("failed to load enrollment extract: %w", err)
	}
	imp.importStudents(enrollmentRows, summary.stage("students"))

	log.Println("Stage 4/6: enrollments")
	if err := imp.importEnrollments(enrollmentRows, summary.stage("enrollments")); err != nil {
		return fmt.Errorf("enrollment stage failed: %w", err)
	}

	log.Println("Stage 5/6: program-level deduction")
	if err := imp.db.Transaction(func(tx *gorm.DB) error {
		return imp.deduceProgramLevels(tx, summary.stage("program_levels"))
	}); err != nil {
		return fmt.Errorf("deduction stage failed: %w", err)
	}

	log.Println("Stage 6/6: historical labels")
	if err := imp.importHistory(enrollmentRows, summary); err != nil {
		return fmt.Errorf("history stage failed: %w", err)
	}

	return nil
}
