package importer

import (
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/scolaris/scolaris-api/internal/database"
	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func newTestImporter(t *testing.T, db *gorm.DB, inst, meta, enr []source.Row) *Importer {
	t.Helper()
	return New(db, NewAuditLog(io.Discard),
		&source.Static{Rows: inst},
		&source.Static{Rows: meta},
		&source.Static{Rows: enr},
	)
}

func stageByName(t *testing.T, s *RunSummary, name string) *StageReport {
	t.Helper()
	for _, r := range s.Stages {
		if r.Stage == name {
			return r
		}
	}
	t.Fatalf("no stage %q in summary", name)
	return nil
}

func institutionFixture() []source.Row {
	return []source.Row{{
		"institution_code":         "UF1",
		"institution_name":         "Faculty of Sciences",
		"institution_type":         "faculty",
		"institution_description":  "Natural and computer sciences",
		"institution_abbreviation": "FS",
	}}
}

func metadataFixture() []source.Row {
	return []source.Row{{
		"institution_code":        "UF1",
		"department_code":         "UF1_SCI",
		"department_label":        "Sciences Department",
		"department_abbreviation": "SCI",
		"domain_code":             "D1",
		"domain_label":            "Sciences and Technology",
		"mention_code":            "UF1_SCI_INFO",
		"mention_label":           "Computer Science",
		"mention_abbreviation":    "INFO",
		"program_code":            "INFO_GL",
		"program_label":           "Software Engineering",
		"program_abbreviation":    "GL",
		"program_type_code":       "FI",
	}}
}

func enrollmentFixture() []source.Row {
	return []source.Row{{
		"enrollment_code":      "ENR-0001",
		"student_id":           "STU-001",
		"registration_number":  "2021-001",
		"student_last_name":    "RAKOTO",
		"student_first_names":  "Jean Baptiste",
		"student_gender":       "M",
		"birth_date":           "2002-05-14",
		"academic_year":        "2021-2022",
		"program_code":         "INFO_GL",
		"level_code":           "L1",
		"semester_number":      "S1",
		"enrollment_mode":      "CLASSIQUE",
		"institution_code":     "UF1",
		"institution_name":     "Faculty of Sciences",
		"department_code":      "UF1_SCI",
		"mention_abbreviation": "INFO",
	}}
}

func TestRunFullPipeline(t *testing.T) {
	db := newTestDB(t)
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), enrollmentFixture())

	summary, err := imp.Run()
	require.NoError(t, err)
	require.NotNil(t, summary)

	var inst models.Institution
	require.NoError(t, db.First(&inst, "code = ?", "UF1").Error)
	assert.Equal(t, "INST_0001", inst.ID)

	var enr models.Enrollment
	require.NoError(t, db.First(&enr, "code = ?", "ENR-0001").Error)
	assert.Equal(t, "STU-001", enr.StudentID)
	assert.NotEmpty(t, enr.ModeID)

	var assocCount int64
	require.NoError(t, db.Model(&models.ProgramLevel{}).Count(&assocCount).Error)
	assert.Equal(t, int64(1), assocCount)

	var run models.ImportRun
	require.NoError(t, db.First(&run).Error)
	assert.Equal(t, models.ImportRunStatusSuccess, run.Status)
	assert.NotNil(t, run.FinishedAt)
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), enrollmentFixture())

	_, err := imp.Run()
	require.NoError(t, err)

	countAll := func() map[string]int64 {
		out := make(map[string]int64)
		for name, model := range map[string]any{
			"institutions":   &models.Institution{},
			"departments":    &models.Department{},
			"domains":        &models.Domain{},
			"mentions":       &models.Mention{},
			"programs":       &models.Program{},
			"students":       &models.Student{},
			"enrollments":    &models.Enrollment{},
			"program_levels": &models.ProgramLevel{},
			"inst_history":   &models.InstitutionHistory{},
			"semesters":      &models.Semester{},
			"years":          &models.AcademicYear{},
		} {
			var n int64
			require.NoError(t, db.Model(model).Count(&n).Error)
			out[name] = n
		}
		return out
	}
	first := countAll()

	_, err = imp.Run()
	require.NoError(t, err)
	assert.Equal(t, first, countAll())

	// Generated ids survive the second pass unchanged.
	var prog models.Program
	require.NoError(t, db.First(&prog, "code = ?", "INFO_GL").Error)
	assert.Equal(t, "PARC_0000001", prog.ID)

	var runs int64
	require.NoError(t, db.Model(&models.ImportRun{}).Count(&runs).Error)
	assert.Equal(t, int64(2), runs)
}

func TestRunRecordsFailedRunOnStageError(t *testing.T) {
	db := newTestDB(t)
	imp := newTestImporter(t, db, institutionFixture(), metadataFixture(), enrollmentFixture())
	imp.YearStart = 2024
	imp.YearEnd = 2021

	_, err := imp.Run()
	require.Error(t, err)

	var run models.ImportRun
	require.NoError(t, db.First(&run).Error)
	assert.Equal(t, models.ImportRunStatusFailed, run.Status)
	require.NotNil(t, run.ErrorMessage)
	assert.Contains(t, *run.ErrorMessage, "vocabulary")
}
