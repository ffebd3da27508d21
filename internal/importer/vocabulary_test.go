package importer

import (
	"testing"

	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTestVocabulary(t *testing.T, imp *Importer) *StageReport {
	t.Helper()
	report := newStageReport("vocabulary")
	require.NoError(t, imp.db.Transaction(func(tx *gorm.DB) error {
		return imp.seedVocabulary(tx, report)
	}))
	return report
}

func TestSeedVocabularyFixedSets(t *testing.T) {
	db := newTestDB(t)
	imp := newTestImporter(t, db, nil, nil, nil)

	seedTestVocabulary(t, imp)

	counts := map[any]int64{
		&models.Cycle{}:          3,
		&models.Level{}:          5,
		&models.Semester{}:       10,
		&models.EnrollmentMode{}: 2,
		&models.ExamSession{}:    2,
		&models.ProgramType{}:    2,
		&models.AcademicYear{}:   6,
	}
	for model, want := range counts {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Equal(t, want, n)
	}

	var cycle models.Cycle
	require.NoError(t, db.First(&cycle, "code = ?", "L").Error)
	assert.Equal(t, "CYCL_1", cycle.ID)
	assert.Equal(t, "Licence", cycle.Label)

	// Semester codes derive from level and global number.
	var sem models.Semester
	require.NoError(t, db.First(&sem, "code = ?", "M2_S10").Error)
	assert.Equal(t, "S10", sem.Number)

	var level models.Level
	require.NoError(t, db.First(&level, "id = ?", sem.LevelID).Error)
	assert.Equal(t, "M2", level.Code)

	var year models.AcademicYear
	require.NoError(t, db.First(&year, "year = ?", "2021-2022").Error)
	assert.Equal(t, "ANNE_0001", year.ID)
	assert.Equal(t, 0, year.Ordinal)
}

func TestSeedVocabularyIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	imp := newTestImporter(t, db, nil, nil, nil)

	seedTestVocabulary(t, imp)
	seedTestVocabulary(t, imp)

	var cycles, semesters int64
	require.NoError(t, db.Model(&models.Cycle{}).Count(&cycles).Error)
	require.NoError(t, db.Model(&models.Semester{}).Count(&semesters).Error)
	assert.Equal(t, int64(3), cycles)
	assert.Equal(t, int64(10), semesters)
}

func TestSeedVocabularyExtendedYearRangeOnlyAppends(t *testing.T) {
	db := newTestDB(t)
	imp := newTestImporter(t, db, nil, nil, nil)

	seedTestVocabulary(t, imp)

	imp.YearEnd = 2027
	seedTestVocabulary(t, imp)

	var years []models.AcademicYear
	require.NoError(t, db.Order("ordinal asc").Find(&years).Error)
	require.Len(t, years, 7)
	assert.Equal(t, "2027-2028", years[6].Year)
	assert.Equal(t, "2021-2022", years[0].Year)
}

func TestSeedVocabularyRejectsInvalidYearRange(t *testing.T) {
	db := newTestDB(t)
	imp := newTestImporter(t, db, nil, nil, nil)
	imp.YearStart = 2025
	imp.YearEnd = 2024

	report := newStageReport("vocabulary")
	err := imp.db.Transaction(func(tx *gorm.DB) error {
		return imp.seedVocabulary(tx, report)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid academic year range")
}
