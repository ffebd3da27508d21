package importer

import (
	"fmt"
	"io"
	"log"
	"os"
)

// StageReport tallies one pipeline stage.
type StageReport struct {
	Stage    string
	Inserted int
	Updated  int
	Skipped  int
	Errors   map[ErrorKind]int
}

func newStageReport(stage string) *StageReport {
	return &StageReport{Stage: stage, Errors: make(map[ErrorKind]int)}
}

func (r *StageReport) fail(kind ErrorKind) {
	r.Errors[kind]++
}

// Failed returns the total rejected rows across all error kinds.
func (r *StageReport) Failed() int {
	n := 0
	for _, c := range r.Errors {
		n += c
	}
	return n
}

// Log prints the human-readable stage summary.
func (r *StageReport) Log() {
	log.Printf("[%s] inserted=%d updated=%d skipped=%d errors=%d", r.Stage, r.Inserted, r.Updated, r.Skipped, r.Failed())
	for kind, count := range r.Errors {
		if count > 0 {
			log.Printf("[%s]   %s: %d", r.Stage, kind, count)
		}
	}
}

// RunSummary collects per-stage reports in execution order.
type RunSummary struct {
	Stages []*StageReport
}

func (s *RunSummary) stage(name string) *StageReport {
	r := newStageReport(name)
	s.Stages = append(s.Stages, r)
	return r
}

// Totals sums inserted/updated/skipped/failed across stages.
func (s *RunSummary) Totals() (inserted, updated, skipped, failed int) {
	for _, r := range s.Stages {
		inserted += r.Inserted
		updated += r.Updated
		skipped += r.Skipped
		failed += r.Failed()
	}
	return
}

// Log prints the summary for every stage.
func (s *RunSummary) Log() {
	log.Println("Import Summary:")
	for _, r := range s.Stages {
		r.Log()
	}
}

// AuditLog is the durable record of rejected rows: one line per rejection
// with the natural key, classified kind and source row index, so operators
// can reconcile partial-failure runs.
type AuditLog struct {
	logger *log.Logger
	closer io.Closer
}

// OpenAuditLog appends to the given file.
func OpenAuditLog(path string) (*AuditLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return &AuditLog{
		logger: log.New(f, "", log.LstdFlags),
		closer: f,
	}, nil
}

// NewAuditLog writes to an arbitrary writer; tests use a buffer.
func NewAuditLog(w io.Writer) *AuditLog {
	return &AuditLog{logger: log.New(w, "", 0)}
}

// Reject records one rejected row.
func (a *AuditLog) Reject(stage, naturalKey string, kind ErrorKind, rowIndex int, detail string) {
	if a == nil {
		return
	}
	a.logger.Printf("%s | key=%s | kind=%s | row=%d | %s", stage, naturalKey, kind, rowIndex, detail)
}

func (a *AuditLog) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
