package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageReportFailed(t *testing.T) {
	r := newStageReport("test")
	assert.Equal(t, 0, r.Failed())

	r.fail(ErrMissingField)
	r.fail(ErrMissingField)
	r.fail(ErrUnresolvedParent)
	assert.Equal(t, 3, r.Failed())
	assert.Equal(t, 2, r.Errors[ErrMissingField])
}

func TestRunSummaryTotals(t *testing.T) {
	s := &RunSummary{}

	a := s.stage("a")
	a.Inserted = 5
	a.Updated = 2
	a.fail(ErrOther)

	b := s.stage("b")
	b.Inserted = 1
	b.Skipped = 3

	inserted, updated, skipped, failed := s.Totals()
	assert.Equal(t, 7, inserted)
	assert.Equal(t, 2, updated)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, 1, failed)
}

func TestAuditLogReject(t *testing.T) {
	var buf bytes.Buffer
	audit := NewAuditLog(&buf)

	audit.Reject("enrollments", "ENR-0001", ErrUnresolvedParent, 42, "program=GHOST")

	line := buf.String()
	assert.Contains(t, line, "enrollments")
	assert.Contains(t, line, "key=ENR-0001")
	assert.Contains(t, line, "kind=unresolved_parent")
	assert.Contains(t, line, "row=42")
	assert.Contains(t, line, "program=GHOST")
}

func TestAuditLogNilIsSafe(t *testing.T) {
	var audit *AuditLog
	audit.Reject("stage", "key", ErrOther, 0, "detail")
	assert.NoError(t, audit.Close())
}
