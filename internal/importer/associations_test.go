package importer

import (
	"testing"

	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// L2 enrolled before L1 in file order: ordinals must still follow academic
// progression, not encounter order.
func TestDeduceProgramLevelsAcademicOrder(t *testing.T) {
	db := newTestDB(t)
	rows := []source.Row{
		{
			"enrollment_code":   "ENR-0001",
			"student_id":        "STU-001",
			"student_last_name": "RAKOTO",
			"academic_year":     "2021-2022",
			"program_code":      "INFO_GL",
			"level_code":        "L2",
			"semester_number":   "S3",
			"enrollment_mode":   "CLAS",
		},
		{
			"enrollment_code":   "ENR-0002",
			"student_id":        "STU-002",
			"student_last_name": "RABE",
			"academic_year":     "2021-2022",
			"program_code":      "INFO_GL",
			"level_code":        "L1",
			"semester_number":   "S1",
			"enrollment_mode":   "CLAS",
		},
	}
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)
	imp.importStudents(rows, newStageReport("students"))
	require.NoError(t, imp.importEnrollments(rows, newStageReport("enrollments")))

	report := newStageReport("program_levels")
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return imp.deduceProgramLevels(tx, report)
	}))
	assert.Equal(t, 2, report.Inserted)

	var assocs []models.ProgramLevel
	require.NoError(t, db.Preload("Level").Order("ordinal asc").Find(&assocs).Error)
	require.Len(t, assocs, 2)
	assert.Equal(t, "L1", assocs[0].Level.Code)
	assert.Equal(t, 1, assocs[0].Ordinal)
	assert.Equal(t, "L2", assocs[1].Level.Code)
	assert.Equal(t, 2, assocs[1].Ordinal)
}

func TestDeduceProgramLevelsOnlyEvidencedPairs(t *testing.T) {
	db := newTestDB(t)
	rows := enrollmentFixture()
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)
	imp.importStudents(rows, newStageReport("students"))
	require.NoError(t, imp.importEnrollments(rows, newStageReport("enrollments")))

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return imp.deduceProgramLevels(tx, newStageReport("program_levels"))
	}))

	var assocs []models.ProgramLevel
	require.NoError(t, db.Preload("Level").Find(&assocs).Error)
	require.Len(t, assocs, 1)
	assert.Equal(t, "L1", assocs[0].Level.Code)
}

func TestDeduceProgramLevelsRerunDoesNotDuplicate(t *testing.T) {
	db := newTestDB(t)
	rows := enrollmentFixture()
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)
	imp.importStudents(rows, newStageReport("students"))
	require.NoError(t, imp.importEnrollments(rows, newStageReport("enrollments")))

	deduce := func() {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return imp.deduceProgramLevels(tx, newStageReport("program_levels"))
		}))
	}
	deduce()
	deduce()

	var count int64
	require.NoError(t, db.Model(&models.ProgramLevel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLevelRankUnknownSortsLast(t *testing.T) {
	assert.Less(t, levelRank("L1"), levelRank("M2"))
	assert.Less(t, levelRank("M2"), levelRank("D3"))
	assert.Less(t, levelRank("D3"), levelRank("X9"))
}
