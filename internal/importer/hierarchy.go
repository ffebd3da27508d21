package importer

import (
	"fmt"
	"log"

	"github.com/scolaris/scolaris-api/internal/idgen"
	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/source"
	"gorm.io/gorm"
)

// Extract column names for the institution and program-metadata sources.
const (
	colInstitutionCode = "institution_code"
	colInstitutionName = "institution_name"
	colInstitutionType = "institution_type"
	colInstitutionDesc = "institution_description"
	colInstitutionAbbr = "institution_abbreviation"

	colDepartmentCode = "department_code"
	colDepartmentLbl  = "department_label"
	colDepartmentAbbr = "department_abbreviation"

	colDomainCode = "domain_code"
	colDomainLbl  = "domain_label"

	colMentionCode = "mention_code"
	colMentionLbl  = "mention_label"
	colMentionAbbr = "mention_abbreviation"

	colProgramCode     = "program_code"
	colProgramLbl      = "program_label"
	colProgramAbbr     = "program_abbreviation"
	colProgramTypeCode = "program_type_code"
	colCreationDate    = "creation_date"
	colEndDate         = "end_date"
)

// importHierarchy runs the four dependent stages in order. Each stage
// commits before the next starts because the next stage's foreign keys
// resolve through the mapping the previous one persisted.
func (imp *Importer) importHierarchy(summary *RunSummary) error {
	instRows, err := imp.Institutions.Load()
	if err != nil {
		return fmt.Errorf("failed to load institution extract: %w", err)
	}
	metaRows, err := imp.Metadata.Load()
	if err != nil {
		return fmt.Errorf("failed to load program metadata extract: %w", err)
	}

	var instMap map[string]string
	if err := imp.db.Transaction(func(tx *gorm.DB) error {
		instMap, err = imp.importInstitutions(tx, instRows, summary.stage("institutions"))
		return err
	}); err != nil {
		return err
	}

	var deptMap map[string]string
	if err := imp.db.Transaction(func(tx *gorm.DB) error {
		deptMap, err = imp.importDepartments(tx, metaRows, instMap, summary.stage("departments"))
		return err
	}); err != nil {
		return err
	}

	var domainMap map[string]string
	if err := imp.db.Transaction(func(tx *gorm.DB) error {
		domainMap, err = imp.importDomains(tx, metaRows, summary.stage("domains"))
		return err
	}); err != nil {
		return err
	}

	var mentionMap map[string]string
	if err := imp.db.Transaction(func(tx *gorm.DB) error {
		mentionMap, err = imp.importMentions(tx, metaRows, deptMap, domainMap, summary.stage("mentions"))
		return err
	}); err != nil {
		return err
	}

	return imp.db.Transaction(func(tx *gorm.DB) error {
		_, err := imp.importPrograms(tx, metaRows, mentionMap, summary.stage("programs"))
		return err
	})
}

// indexedRow pairs a row with its index in the source extract, so audit
// lines point back at the original spreadsheet line.
type indexedRow struct {
	Index int
	Row   source.Row
}

// dedupeRows keeps the first row per key, where the key is built from the
// given columns; rows with any key column null are dropped and audited.
func (imp *Importer) dedupeRows(stage string, rows []source.Row, report *StageReport, keyCols ...string) []indexedRow {
	seen := make(map[string]bool)
	out := make([]indexedRow, 0, len(rows))

	for i, row := range rows {
		key := ""
		missing := false
		for _, col := range keyCols {
			v := row.String(col)
			if v == "" {
				missing = true
				break
			}
			key += v + "\x00"
		}
		if missing {
			report.fail(ErrMissingField)
			imp.audit.Reject(stage, "", ErrMissingField, i, fmt.Sprintf("null key column among %v", keyCols))
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, indexedRow{Index: i, Row: row})
	}

	return out
}

// newCounter seeds a per-run counter from the number of rows already
// persisted for the entity, so existing natural codes keep their ids and
// fresh codes never recycle a suffix.
func newCounter(tx *gorm.DB, prefix string, model any) (*idgen.Counter, error) {
	var n int64
	if err := tx.Model(model).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to count existing rows for %s: %w", prefix, err)
	}
	return idgen.NewCounter(prefix, int(n)), nil
}

func (imp *Importer) importInstitutions(tx *gorm.DB, rows []source.Row, report *StageReport) (map[string]string, error) {
	mapping := make(map[string]string)

	counter, err := newCounter(tx, "INST", &models.Institution{})
	if err != nil {
		return nil, err
	}

	for _, ir := range imp.dedupeRows(report.Stage, rows, report, colInstitutionCode) {
		row := ir.Row
		code := row.String(colInstitutionCode)

		logoPath := ""
		if imp.Logos != nil {
			logoPath = imp.Logos.Resolve(code)
		}

		var existing models.Institution
		err := tx.Where("code = ?", code).First(&existing).Error
		if err == nil {
			updates := map[string]any{
				"name":         row.String(colInstitutionName),
				"type":         row.String(colInstitutionType),
				"description":  row.String(colInstitutionDesc),
				"abbreviation": row.String(colInstitutionAbbr),
			}
			if logoPath != "" {
				updates["logo_path"] = logoPath
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update institution %s: %w", code, err)
			}
			mapping[code] = existing.ID
			report.Updated++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to look up institution %s: %w", code, err)
		}

		id, err := counter.Next()
		if err != nil {
			return nil, err
		}
		inst := models.Institution{
			ID:           id,
			Code:         code,
			Name:         row.String(colInstitutionName),
			Type:         row.String(colInstitutionType),
			Description:  row.String(colInstitutionDesc),
			Abbreviation: row.String(colInstitutionAbbr),
			LogoPath:     logoPath,
		}
		if err := tx.Create(&inst).Error; err != nil {
			return nil, fmt.Errorf("failed to create institution %s: %w", code, err)
		}
		mapping[code] = id
		report.Inserted++
	}

	return mapping, nil
}

func (imp *Importer) importDepartments(tx *gorm.DB, rows []source.Row, instMap map[string]string, report *StageReport) (map[string]string, error) {
	mapping := make(map[string]string)

	counter, err := newCounter(tx, "COMP", &models.Department{})
	if err != nil {
		return nil, err
	}

	for _, ir := range imp.dedupeRows(report.Stage, rows, report, colDepartmentCode) {
		row, i := ir.Row, ir.Index
		code := row.String(colDepartmentCode)

		instID, ok := instMap[row.String(colInstitutionCode)]
		if !ok {
			log.Printf("Warning: unknown institution %q for department %s", row.String(colInstitutionCode), code)
			report.fail(ErrUnresolvedParent)
			imp.audit.Reject(report.Stage, code, ErrUnresolvedParent, i, "institution code "+row.String(colInstitutionCode))
			continue
		}

		var existing models.Department
		err := tx.Where("code = ?", code).First(&existing).Error
		if err == nil {
			updates := map[string]any{
				"label":          row.String(colDepartmentLbl),
				"abbreviation":   row.String(colDepartmentAbbr),
				"institution_id": instID,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update department %s: %w", code, err)
			}
			mapping[code] = existing.ID
			report.Updated++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to look up department %s: %w", code, err)
		}

		id, err := counter.Next()
		if err != nil {
			return nil, err
		}
		dept := models.Department{
			ID:            id,
			Code:          code,
			Label:         row.String(colDepartmentLbl),
			Abbreviation:  row.String(colDepartmentAbbr),
			InstitutionID: instID,
		}
		if err := tx.Create(&dept).Error; err != nil {
			return nil, fmt.Errorf("failed to create department %s: %w", code, err)
		}
		mapping[code] = id
		report.Inserted++
	}

	return mapping, nil
}

func (imp *Importer) importDomains(tx *gorm.DB, rows []source.Row, report *StageReport) (map[string]string, error) {
	mapping := make(map[string]string)

	counter, err := newCounter(tx, "DOMA", &models.Domain{})
	if err != nil {
		return nil, err
	}

	for _, ir := range imp.dedupeRows(report.Stage, rows, report, colDomainCode) {
		row := ir.Row
		code := row.String(colDomainCode)

		var existing models.Domain
		err := tx.Where("code = ?", code).First(&existing).Error
		if err == nil {
			if err := tx.Model(&existing).Update("label", row.String(colDomainLbl)).Error; err != nil {
				return nil, fmt.Errorf("failed to update domain %s: %w", code, err)
			}
			mapping[code] = existing.ID
			report.Updated++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to look up domain %s: %w", code, err)
		}

		id, err := counter.Next()
		if err != nil {
			return nil, err
		}
		domain := models.Domain{ID: id, Code: code, Label: row.String(colDomainLbl)}
		if err := tx.Create(&domain).Error; err != nil {
			return nil, fmt.Errorf("failed to create domain %s: %w", code, err)
		}
		mapping[code] = id
		report.Inserted++
	}

	return mapping, nil
}

func (imp *Importer) importMentions(tx *gorm.DB, rows []source.Row, deptMap, domainMap map[string]string, report *StageReport) (map[string]string, error) {
	mapping := make(map[string]string)

	counter, err := newCounter(tx, "MENT", &models.Mention{})
	if err != nil {
		return nil, err
	}

	for _, ir := range imp.dedupeRows(report.Stage, rows, report, colMentionCode, colDepartmentCode) {
		row, i := ir.Row, ir.Index
		code := row.String(colMentionCode)

		deptID, okDept := deptMap[row.String(colDepartmentCode)]
		domainID, okDomain := domainMap[row.String(colDomainCode)]
		if !okDept || !okDomain {
			log.Printf("Warning: unknown department or domain for mention %s", code)
			report.fail(ErrUnresolvedParent)
			imp.audit.Reject(report.Stage, code, ErrUnresolvedParent, i,
				fmt.Sprintf("department=%s domain=%s", row.String(colDepartmentCode), row.String(colDomainCode)))
			continue
		}

		// Mention codes are only unique within their department.
		var existing models.Mention
		err := tx.Where("code = ? AND department_id = ?", code, deptID).First(&existing).Error
		if err == nil {
			updates := map[string]any{
				"label":        row.String(colMentionLbl),
				"abbreviation": row.String(colMentionAbbr),
				"domain_id":    domainID,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update mention %s: %w", code, err)
			}
			mapping[code] = existing.ID
			report.Updated++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to look up mention %s: %w", code, err)
		}

		id, err := counter.Next()
		if err != nil {
			return nil, err
		}
		mention := models.Mention{
			ID:           id,
			Code:         code,
			Label:        row.String(colMentionLbl),
			Abbreviation: row.String(colMentionAbbr),
			DepartmentID: deptID,
			DomainID:     domainID,
		}
		if err := tx.Create(&mention).Error; err != nil {
			return nil, fmt.Errorf("failed to create mention %s: %w", code, err)
		}
		mapping[code] = id
		report.Inserted++
	}

	return mapping, nil
}

func (imp *Importer) importPrograms(tx *gorm.DB, rows []source.Row, mentionMap map[string]string, report *StageReport) (map[string]string, error) {
	mapping := make(map[string]string)

	counter, err := newCounter(tx, "PARC", &models.Program{})
	if err != nil {
		return nil, err
	}

	typeMap, err := loadCodeMap(tx, &models.ProgramType{})
	if err != nil {
		return nil, err
	}

	for _, ir := range imp.dedupeRows(report.Stage, rows, report, colProgramCode, colMentionCode) {
		row, i := ir.Row, ir.Index
		code := row.String(colProgramCode)

		mentionID, ok := mentionMap[row.String(colMentionCode)]
		if !ok {
			log.Printf("Warning: unknown mention %q for program %s", row.String(colMentionCode), code)
			report.fail(ErrUnresolvedParent)
			imp.audit.Reject(report.Stage, code, ErrUnresolvedParent, i, "mention code "+row.String(colMentionCode))
			continue
		}

		// An absent type falls back to initial training; a present but
		// unrecognized code is logged and the FK left null.
		var typeID *string
		typeCode := row.String(colProgramTypeCode)
		if typeCode == "" {
			typeCode = defaultProgramTypeCode
		}
		if id, ok := typeMap[typeCode]; ok {
			typeID = &id
		} else {
			log.Printf("Warning: unknown program type %q for program %s", typeCode, code)
		}

		creation := row.Date(colCreationDate)
		end := row.Date(colEndDate)

		var existing models.Program
		err := tx.Where("code = ? AND mention_id = ?", code, mentionID).First(&existing).Error
		if err == nil {
			updates := map[string]any{
				"label":           row.String(colProgramLbl),
				"abbreviation":    row.String(colProgramAbbr),
				"program_type_id": typeID,
				"creation_date":   creation,
				"end_date":        end,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update program %s: %w", code, err)
			}
			mapping[code] = existing.ID
			report.Updated++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to look up program %s: %w", code, err)
		}

		id, err := counter.Next()
		if err != nil {
			return nil, err
		}
		program := models.Program{
			ID:            id,
			Code:          code,
			Label:         row.String(colProgramLbl),
			Abbreviation:  row.String(colProgramAbbr),
			MentionID:     mentionID,
			ProgramTypeID: typeID,
			CreationDate:  creation,
			EndDate:       end,
		}
		if err := tx.Create(&program).Error; err != nil {
			return nil, fmt.Errorf("failed to create program %s: %w", code, err)
		}
		mapping[code] = id
		report.Inserted++
	}

	return mapping, nil
}

// loadCodeMap builds a natural-code → generated-id map from a committed
// reference table.
func loadCodeMap(tx *gorm.DB, model any) (map[string]string, error) {
	var pairs []struct {
		Code string
		ID   string
	}
	if err := tx.Model(model).Select("code", "id").Find(&pairs).Error; err != nil {
		return nil, fmt.Errorf("failed to load code mapping: %w", err)
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.Code] = p.ID
	}
	return out, nil
}
