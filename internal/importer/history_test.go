package importer

import (
	"testing"

	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportHistoryPrefersExtractLabel(t *testing.T) {
	db := newTestDB(t)
	rows := enrollmentFixture()
	rows[0]["institution_name"] = "Faculty of Sciences (2021 naming)"
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)

	summary := &RunSummary{}
	require.NoError(t, imp.importHistory(rows, summary))

	var snap models.InstitutionHistory
	require.NoError(t, db.First(&snap).Error)
	assert.Equal(t, "Faculty of Sciences (2021 naming)", snap.Label)
	assert.Equal(t, "UF1", snap.Code)
	assert.Equal(t, "ANNE_0001", snap.AcademicYearID)
}

func TestImportHistoryFallsBackToCanonicalLabel(t *testing.T) {
	db := newTestDB(t)
	rows := enrollmentFixture()
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)

	require.NoError(t, imp.importHistory(rows, &RunSummary{}))

	// The extract carries no department label, so the canonical one wins.
	var snap models.DepartmentHistory
	require.NoError(t, db.First(&snap).Error)
	assert.Equal(t, "Sciences Department", snap.Label)
	assert.Equal(t, "UF1_SCI", snap.Code)
}

func TestImportHistoryStoresSentinelWhenNoLabelExists(t *testing.T) {
	db := newTestDB(t)
	rows := enrollmentFixture()
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)

	require.NoError(t, db.Model(&models.Program{}).
		Where("code = ?", "INFO_GL").Update("label", "").Error)

	require.NoError(t, imp.importHistory(rows, &RunSummary{}))

	var snap models.ProgramHistory
	require.NoError(t, db.First(&snap).Error)
	assert.Equal(t, UnknownLabel, snap.Label)
}

func TestImportHistoryDerivesMentionCode(t *testing.T) {
	db := newTestDB(t)
	rows := enrollmentFixture()
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)

	require.NoError(t, imp.importHistory(rows, &RunSummary{}))

	var snap models.MentionHistory
	require.NoError(t, db.First(&snap).Error)
	assert.Equal(t, "UF1_SCI_INFO", snap.Code)
	assert.Equal(t, "Computer Science", snap.Label)
}

func TestImportHistorySkipsUnresolvableRows(t *testing.T) {
	db := newTestDB(t)
	rows := enrollmentFixture()
	rows[0]["academic_year"] = "1999-2000"
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)

	summary := &RunSummary{}
	require.NoError(t, imp.importHistory(rows, summary))

	report := stageByName(t, summary, "institution_history")
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Inserted)

	var count int64
	require.NoError(t, db.Model(&models.InstitutionHistory{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestImportHistoryRerunUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	rows := enrollmentFixture()
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), rows)
	importHierarchyFixture(t, imp)

	require.NoError(t, imp.importHistory(rows, &RunSummary{}))

	rows[0]["institution_name"] = "Faculty of Sciences (renamed)"
	require.NoError(t, imp.importHistory(rows, &RunSummary{}))

	var snaps []models.InstitutionHistory
	require.NoError(t, db.Find(&snaps).Error)
	require.Len(t, snaps, 1)
	assert.Equal(t, "Faculty of Sciences (renamed)", snaps[0].Label)
}
