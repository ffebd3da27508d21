package importer

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/source"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Extract column names for the enrollment source.
const (
	colStudentID        = "student_id"
	colStudentRegNumber = "registration_number"
	colStudentLastName  = "student_last_name"
	colStudentFirstName = "student_first_names"
	colStudentGender    = "student_gender"
	colStudentBirthDate = "birth_date"
	colStudentBirthPlc  = "birth_place"
	colStudentNation    = "nationality"
	colStudentBaccYear  = "bacc_year"
	colStudentBaccSerie = "bacc_series"
	colStudentBaccNum   = "bacc_number"
	colStudentBaccCtr   = "bacc_center"
	colStudentBaccHon   = "bacc_honors"
	colStudentPhone     = "phone"
	colStudentEmail     = "email"
	colStudentNID       = "national_id"
	colStudentNIDDate   = "national_id_date"
	colStudentNIDPlace  = "national_id_place"

	colEnrollmentCode = "enrollment_code"
	colLevelCode      = "level_code"
	colSemesterNumber = "semester_number"
	colEnrollmentMode = "enrollment_mode"
	colAcademicYear   = "academic_year"
)

// enrollmentBatchSize is the commit granularity of the enrollment phase.
const enrollmentBatchSize = 300

// importStudents upserts one student per distinct natural identifier,
// committing each one individually so a malformed row can never roll back
// students already stored. Rows without identifier or last name are
// dropped up front.
func (imp *Importer) importStudents(rows []source.Row, report *StageReport) {
	for _, ir := range imp.dedupeRows(report.Stage, rows, report, colStudentID) {
		row := ir.Row

		if row.String(colStudentLastName) == "" {
			report.fail(ErrMissingField)
			imp.audit.Reject(report.Stage, row.String(colStudentID), ErrMissingField, ir.Index, "missing last name")
			continue
		}

		student := models.Student{
			ID:                 row.String(colStudentID),
			RegistrationNumber: row.String(colStudentRegNumber),
			LastName:           row.String(colStudentLastName),
			FirstNames:         row.String(colStudentFirstName),
			Gender:             row.String(colStudentGender),
			BirthDate:          row.Date(colStudentBirthDate),
			BirthPlace:         row.String(colStudentBirthPlc),
			Nationality:        row.String(colStudentNation),
			BaccYear:           row.Int(colStudentBaccYear),
			BaccSeries:         row.String(colStudentBaccSerie),
			BaccNumber:         row.String(colStudentBaccNum),
			BaccCenter:         row.String(colStudentBaccCtr),
			BaccHonors:         row.String(colStudentBaccHon),
			Phone:              row.String(colStudentPhone),
			Email:              row.String(colStudentEmail),
			NationalID:         row.String(colStudentNID),
			NationalIDDate:     row.Date(colStudentNIDDate),
			NationalIDPlace:    row.String(colStudentNIDPlace),
		}

		err := imp.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"registration_number", "last_name", "first_names", "gender",
				"birth_date", "birth_place", "nationality",
				"bacc_year", "bacc_series", "bacc_number", "bacc_center", "bacc_honors",
				"phone", "email", "national_id", "national_id_date", "national_id_place",
				"updated_at",
			}),
		}).Create(&student).Error
		if err != nil {
			kind := classifyWriteError(err)
			report.fail(kind)
			imp.audit.Reject(report.Stage, student.ID, kind, ir.Index, err.Error())
			log.Printf("Warning: failed to upsert student %s (row %d): %v", student.ID, ir.Index, err)
			continue
		}
		report.Inserted++
	}
}

// normalizeSemesterToken reformats a raw semester value to the fixed
// two-digit form: "S1", "1" and "1.0" all become "S01".
func normalizeSemesterToken(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), "S", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("S%02d", int(f))
}

// normalizeModeCode maps a source mode label to a seeded mode code,
// falling back to the default for anything absent or unrecognized.
func normalizeModeCode(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CLAS", "CLASSIQUE":
		return "CLAS"
	case "HYB", "HYBRIDE":
		return "HYB"
	default:
		return fallbackModeCode
	}
}

type enrollmentMaps struct {
	programs         map[string]string
	semesterByNumber map[string]string
	semesterByCode   map[string]string
	years            map[string]string
	modes            map[string]string
}

// loadEnrollmentMaps reads the committed mappings the enrollment phase
// resolves against. Earlier stages have already committed, so the store is
// the source of truth here, not in-memory hand-offs.
func loadEnrollmentMaps(db *gorm.DB) (*enrollmentMaps, error) {
	m := &enrollmentMaps{
		programs:         make(map[string]string),
		semesterByNumber: make(map[string]string),
		semesterByCode:   make(map[string]string),
		years:            make(map[string]string),
		modes:            make(map[string]string),
	}

	var err error
	if m.programs, err = loadCodeMap(db, &models.Program{}); err != nil {
		return nil, err
	}
	if m.modes, err = loadCodeMap(db, &models.EnrollmentMode{}); err != nil {
		return nil, err
	}

	var semesters []models.Semester
	if err := db.Find(&semesters).Error; err != nil {
		return nil, fmt.Errorf("failed to load semesters: %w", err)
	}
	for _, s := range semesters {
		m.semesterByNumber[s.Number] = s.ID
		m.semesterByCode[s.Code] = s.ID
	}

	if m.years, err = loadYearMap(db); err != nil {
		return nil, err
	}

	return m, nil
}

// resolveSemester resolves the normalized token against the global
// semester numbering, falling back to the level-qualified code when the
// token alone does not resolve.
func (m *enrollmentMaps) resolveSemester(token, levelCode string) string {
	if id, ok := m.semesterByNumber[token]; ok {
		return id
	}
	if levelCode != "" {
		return m.semesterByCode[levelCode+"_"+token]
	}
	return ""
}

// importEnrollments upserts enrollment facts in batches. Required foreign
// keys must all resolve before a row is written; a row failing inside a
// batch is rolled back to its savepoint and tallied without poisoning the
// rest of the batch.
func (imp *Importer) importEnrollments(rows []source.Row, report *StageReport) error {
	maps, err := loadEnrollmentMaps(imp.db)
	if err != nil {
		return err
	}

	now := time.Now()

	for offset := 0; offset < len(rows); offset += enrollmentBatchSize {
		end := offset + enrollmentBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[offset:end]
		batchOffset := offset

		err := imp.db.Transaction(func(tx *gorm.DB) error {
			for i, row := range batch {
				imp.importEnrollmentRow(tx, row, maps, batchOffset+i, now, report)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to commit enrollment batch at row %d: %w", batchOffset, err)
		}
	}

	return nil
}

func (imp *Importer) importEnrollmentRow(tx *gorm.DB, row source.Row, maps *enrollmentMaps, index int, now time.Time, report *StageReport) {
	code := row.String(colEnrollmentCode)
	studentID := row.String(colStudentID)
	if code == "" || studentID == "" {
		report.fail(ErrMissingField)
		imp.audit.Reject(report.Stage, code, ErrMissingField, index, "missing enrollment code or student id")
		return
	}

	programID := maps.programs[row.String(colProgramCode)]
	token := normalizeSemesterToken(row.String(colSemesterNumber))
	semesterID := maps.resolveSemester(token, row.String(colLevelCode))
	yearID := maps.years[row.String(colAcademicYear)]

	if programID == "" || semesterID == "" || yearID == "" {
		report.fail(ErrUnresolvedParent)
		imp.audit.Reject(report.Stage, code, ErrUnresolvedParent, index,
			fmt.Sprintf("program=%s semester=%s year=%s", row.String(colProgramCode), row.String(colSemesterNumber), row.String(colAcademicYear)))
		return
	}

	// Mode is never a reason to reject: unknown labels fall back.
	modeID := maps.modes[normalizeModeCode(row.String(colEnrollmentMode))]

	// The code is the primary key while the fact is unique on the
	// composite key, so the merge goes through an explicit lookup rather
	// than a single conflict target.
	tx.SavePoint("enrollment_row")

	var existing models.Enrollment
	err := tx.Where("student_id = ? AND academic_year_id = ? AND program_id = ? AND semester_id = ?",
		studentID, yearID, programID, semesterID).First(&existing).Error
	if err == nil {
		updates := map[string]any{
			"code":        code,
			"mode_id":     modeID,
			"enrolled_at": &now,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			tx.RollbackTo("enrollment_row")
			kind := classifyWriteError(err)
			report.fail(kind)
			imp.audit.Reject(report.Stage, code, kind, index, err.Error())
			return
		}
		report.Updated++
		return
	}
	if err != gorm.ErrRecordNotFound {
		tx.RollbackTo("enrollment_row")
		report.fail(ErrOther)
		imp.audit.Reject(report.Stage, code, ErrOther, index, err.Error())
		return
	}

	enrollment := models.Enrollment{
		Code:           code,
		StudentID:      studentID,
		AcademicYearID: yearID,
		ProgramID:      programID,
		SemesterID:     semesterID,
		ModeID:         modeID,
		EnrolledAt:     &now,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.RollbackTo("enrollment_row")
		kind := classifyWriteError(err)
		report.fail(kind)
		imp.audit.Reject(report.Stage, code, kind, index, err.Error())
		return
	}

	report.Inserted++
}
