package importer

import (
	"fmt"
	"log"

	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/source"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UnknownLabel is stored when a snapshot's canonical record cannot supply
// a label. Snapshots are never left with an empty label.
const UnknownLabel = "UNKNOWN (not found)"

// historyTarget describes one historized entity type: where its natural
// code and optional label live in the enrollment extract, and how to
// persist a snapshot. The typed struct replaces the original's untyped
// per-entity configuration dictionaries.
type historyTarget struct {
	stage string

	// codeOf derives the natural code from an extract row ("" when the
	// row cannot identify the entity).
	codeOf func(source.Row) string

	// labelColumn is the extract column carrying the label as it appeared
	// that year; empty when the extract has no label for this entity.
	labelColumn string

	// ids and labels are the canonical mappings, natural code → generated
	// id / current label.
	ids    map[string]string
	labels map[string]string

	upsert func(tx *gorm.DB, entityID, yearID, label, code string) error
}

// importHistory builds the per-year label snapshots for every historized
// entity type, one committed transaction per type. Label priority: extract
// column, then the canonical record, then the unknown sentinel.
func (imp *Importer) importHistory(rows []source.Row, summary *RunSummary) error {
	years, err := loadYearMap(imp.db)
	if err != nil {
		return err
	}

	targets, err := imp.historyTargets()
	if err != nil {
		return err
	}

	for _, target := range targets {
		report := summary.stage(target.stage)
		if err := imp.db.Transaction(func(tx *gorm.DB) error {
			return imp.importHistoryTarget(tx, target, rows, years, report)
		}); err != nil {
			return fmt.Errorf("%s stage failed: %w", target.stage, err)
		}
	}

	return nil
}

func (imp *Importer) importHistoryTarget(tx *gorm.DB, target historyTarget, rows []source.Row, years map[string]string, report *StageReport) error {
	seen := make(map[string]bool)

	for i, row := range rows {
		code := target.codeOf(row)
		yearLabel := row.String(colAcademicYear)
		if code == "" || yearLabel == "" {
			continue
		}
		key := code + "\x00" + yearLabel
		if seen[key] {
			continue
		}
		seen[key] = true

		yearID, okYear := years[yearLabel]
		entityID, okEntity := target.ids[code]
		if !okYear || !okEntity {
			report.Skipped++
			imp.audit.Reject(report.Stage, code, ErrUnresolvedParent, i,
				fmt.Sprintf("year=%s resolvable=%t entity resolvable=%t", yearLabel, okYear, okEntity))
			continue
		}

		label := ""
		if target.labelColumn != "" {
			label = row.String(target.labelColumn)
		}
		if label == "" {
			if canonical, ok := target.labels[code]; ok && canonical != "" {
				label = canonical
			} else {
				log.Printf("Warning: no canonical label for %s %s, storing sentinel", report.Stage, code)
				label = UnknownLabel
			}
		}

		if err := target.upsert(tx, entityID, yearID, label, code); err != nil {
			return fmt.Errorf("failed to upsert %s snapshot for %s: %w", report.Stage, code, err)
		}
		report.Inserted++
	}

	return nil
}

// historyTargets loads the canonical mappings and wires the four
// historized entity types. The mention code is not carried directly by the
// enrollment extract; it derives from department code and mention
// abbreviation.
func (imp *Importer) historyTargets() ([]historyTarget, error) {
	instIDs, instLabels, err := loadHistoryMaps(imp.db, &models.Institution{}, "name")
	if err != nil {
		return nil, err
	}
	deptIDs, deptLabels, err := loadHistoryMaps(imp.db, &models.Department{}, "label")
	if err != nil {
		return nil, err
	}
	mentIDs, mentLabels, err := loadHistoryMaps(imp.db, &models.Mention{}, "label")
	if err != nil {
		return nil, err
	}
	progIDs, progLabels, err := loadHistoryMaps(imp.db, &models.Program{}, "label")
	if err != nil {
		return nil, err
	}

	columnCode := func(col string) func(source.Row) string {
		return func(r source.Row) string { return r.String(col) }
	}

	return []historyTarget{
		{
			stage:       "institution_history",
			codeOf:      columnCode(colInstitutionCode),
			labelColumn: colInstitutionName,
			ids:         instIDs,
			labels:      instLabels,
			upsert: func(tx *gorm.DB, entityID, yearID, label, code string) error {
				rec := models.InstitutionHistory{InstitutionID: entityID, AcademicYearID: yearID, Label: label, Code: code}
				return upsertSnapshot(tx, "institution_id", &rec)
			},
		},
		{
			stage:  "department_history",
			codeOf: columnCode(colDepartmentCode),
			ids:    deptIDs,
			labels: deptLabels,
			upsert: func(tx *gorm.DB, entityID, yearID, label, code string) error {
				rec := models.DepartmentHistory{DepartmentID: entityID, AcademicYearID: yearID, Label: label, Code: code}
				return upsertSnapshot(tx, "department_id", &rec)
			},
		},
		{
			stage: "mention_history",
			codeOf: func(r source.Row) string {
				dept := r.String(colDepartmentCode)
				abbr := r.String(colMentionAbbr)
				if dept == "" || abbr == "" {
					return ""
				}
				return dept + "_" + abbr
			},
			ids:    mentIDs,
			labels: mentLabels,
			upsert: func(tx *gorm.DB, entityID, yearID, label, code string) error {
				rec := models.MentionHistory{MentionID: entityID, AcademicYearID: yearID, Label: label, Code: code}
				return upsertSnapshot(tx, "mention_id", &rec)
			},
		},
		{
			stage:  "program_history",
			codeOf: columnCode(colProgramCode),
			ids:    progIDs,
			labels: progLabels,
			upsert: func(tx *gorm.DB, entityID, yearID, label, code string) error {
				rec := models.ProgramHistory{ProgramID: entityID, AcademicYearID: yearID, Label: label, Code: code}
				return upsertSnapshot(tx, "program_id", &rec)
			},
		},
	}, nil
}

// upsertSnapshot merges a history row on its (entity, year) composite key.
func upsertSnapshot(tx *gorm.DB, entityColumn string, rec any) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: entityColumn}, {Name: "academic_year_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "code", "updated_at"}),
	}).Create(rec).Error
}

// loadHistoryMaps builds the natural-code → id and natural-code → label
// mappings for one canonical table. Codes whose label is empty stay out of
// the label map so the sentinel path stays reachable.
func loadHistoryMaps(db *gorm.DB, model any, labelColumn string) (map[string]string, map[string]string, error) {
	var pairs []struct {
		Code  string
		ID    string
		Label string
	}
	err := db.Model(model).Select("code", "id", labelColumn+" AS label").Find(&pairs).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load history mappings: %w", err)
	}

	ids := make(map[string]string, len(pairs))
	labels := make(map[string]string, len(pairs))
	for _, p := range pairs {
		ids[p.Code] = p.ID
		if p.Label != "" {
			labels[p.Code] = p.Label
		}
	}
	return ids, labels, nil
}

func loadYearMap(db *gorm.DB) (map[string]string, error) {
	var years []models.AcademicYear
	if err := db.Find(&years).Error; err != nil {
		return nil, fmt.Errorf("failed to load academic years: %w", err)
	}
	out := make(map[string]string, len(years))
	for _, y := range years {
		out[y.Year] = y.ID
	}
	return out, nil
}
