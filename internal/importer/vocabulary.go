package importer

import (
	"fmt"

	"github.com/scolaris/scolaris-api/internal/idgen"
	"github.com/scolaris/scolaris-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The small closed enumerations every other stage resolves foreign keys
// into. Seeded in code, never from spreadsheets.

var cycleSeed = []struct {
	Code  string
	Label string
}{
	{"L", "Licence"},
	{"M", "Master"},
	{"D", "Doctorat"},
}

// Levels in academic order with their cycle and global semester numbers.
// Semester natural codes derive as <level>_<number>.
var levelSeed = []struct {
	Code      string
	Cycle     string
	Semesters []string
}{
	{"L1", "L", []string{"S01", "S02"}},
	{"L2", "L", []string{"S03", "S04"}},
	{"L3", "L", []string{"S05", "S06"}},
	{"M1", "M", []string{"S07", "S08"}},
	{"M2", "M", []string{"S09", "S10"}},
}

var modeSeed = []struct {
	Code  string
	Label string
}{
	{"CLAS", "Classique"},
	{"HYB", "Hybride"},
}

var sessionSeed = []struct {
	Code  string
	Label string
}{
	{"N", "Normale"},
	{"R", "Rattrapage"},
}

var programTypeSeed = []struct {
	Code        string
	Label       string
	Description string
}{
	{"FI", "Initial training", "Full-time classic curriculum"},
	{"FC", "Continuing education", "For working professionals"},
}

// fallbackModeCode is assigned when an enrollment row carries no
// recognizable mode.
const fallbackModeCode = "CLAS"

// defaultProgramTypeCode is assigned to programs whose extract row carries
// no type.
const defaultProgramTypeCode = "FI"

// seedVocabulary upserts every fixed vocabulary by business key. Ids are
// deterministic (seed order), so re-running is a no-op and an extended
// year range only appends.
func (imp *Importer) seedVocabulary(tx *gorm.DB, report *StageReport) error {
	cycleIDs := make(map[string]string, len(cycleSeed))
	for i, c := range cycleSeed {
		id, err := idgen.Generate("CYCL", i+1)
		if err != nil {
			return err
		}
		if err := upsertByCode(tx, &models.Cycle{ID: id, Code: c.Code, Label: c.Label}, "label"); err != nil {
			return fmt.Errorf("failed to seed cycle %s: %w", c.Code, err)
		}
		cycleIDs[c.Code] = id
		report.Inserted++
	}

	semesterIndex := 0
	for i, l := range levelSeed {
		levelID, err := idgen.Generate("NIVE", i+1)
		if err != nil {
			return err
		}
		level := models.Level{ID: levelID, Code: l.Code, Label: l.Code, CycleID: cycleIDs[l.Cycle]}
		if err := upsertByCode(tx, &level, "label", "cycle_id"); err != nil {
			return fmt.Errorf("failed to seed level %s: %w", l.Code, err)
		}
		report.Inserted++

		for _, number := range l.Semesters {
			semesterIndex++
			semID, err := idgen.Generate("SEME", semesterIndex)
			if err != nil {
				return err
			}
			sem := models.Semester{
				ID:      semID,
				Code:    l.Code + "_" + number,
				Number:  number,
				LevelID: levelID,
			}
			if err := upsertByCode(tx, &sem, "number", "level_id"); err != nil {
				return fmt.Errorf("failed to seed semester %s: %w", sem.Code, err)
			}
			report.Inserted++
		}
	}

	for i, m := range modeSeed {
		id, err := idgen.Generate("MODE", i+1)
		if err != nil {
			return err
		}
		if err := upsertByCode(tx, &models.EnrollmentMode{ID: id, Code: m.Code, Label: m.Label}, "label"); err != nil {
			return fmt.Errorf("failed to seed mode %s: %w", m.Code, err)
		}
		report.Inserted++
	}

	for i, s := range sessionSeed {
		id, err := idgen.Generate("SESS", i+1)
		if err != nil {
			return err
		}
		if err := upsertByCode(tx, &models.ExamSession{ID: id, Code: s.Code, Label: s.Label}, "label"); err != nil {
			return fmt.Errorf("failed to seed exam session %s: %w", s.Code, err)
		}
		report.Inserted++
	}

	for i, p := range programTypeSeed {
		id, err := idgen.Generate("TYPE", i+1)
		if err != nil {
			return err
		}
		pt := models.ProgramType{ID: id, Code: p.Code, Label: p.Label, Description: p.Description}
		if err := upsertByCode(tx, &pt, "label", "description"); err != nil {
			return fmt.Errorf("failed to seed program type %s: %w", p.Code, err)
		}
		report.Inserted++
	}

	if imp.YearEnd < imp.YearStart {
		return fmt.Errorf("invalid academic year range %d..%d", imp.YearStart, imp.YearEnd)
	}
	for i := 0; i <= imp.YearEnd-imp.YearStart; i++ {
		start := imp.YearStart + i
		id, err := idgen.Generate("ANNE", i+1)
		if err != nil {
			return err
		}
		year := models.AcademicYear{
			ID:          id,
			Year:        fmt.Sprintf("%d-%d", start, start+1),
			Ordinal:     i,
			Description: fmt.Sprintf("Academic year %d-%d", start, start+1),
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"ordinal", "description", "updated_at"}),
		}).Create(&year).Error
		if err != nil {
			return fmt.Errorf("failed to seed academic year %s: %w", year.Year, err)
		}
		report.Inserted++
	}

	return nil
}

// upsertByCode merges a vocabulary row on its unique code column, updating
// only the given mutable columns.
func upsertByCode(tx *gorm.DB, value any, updates ...string) error {
	updates = append(updates, "updated_at")
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(value).Error
}
