package importer

import (
	"fmt"
	"sort"

	"github.com/scolaris/scolaris-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Academic progression order used to rank the levels a program offers.
// Codes outside the table sort after every known one.
var levelOrder = map[string]int{
	"L1": 1, "L2": 2, "L3": 3,
	"M1": 4, "M2": 5,
	"D1": 6, "D2": 7, "D3": 8,
}

const levelOrderUnknown = 999

type levelFact struct {
	ProgramID string
	LevelID   string
	LevelCode string
}

// deduceProgramLevels derives the Program↔Level associations from the
// committed enrollments: a pair exists only when at least one enrollment
// evidences it. Ordinals follow academic order, not file order. Writes are
// merges on (program, level), so new enrollments only add or update.
func (imp *Importer) deduceProgramLevels(tx *gorm.DB, report *StageReport) error {
	var facts []levelFact
	err := tx.Model(&models.Enrollment{}).
		Select("enrollments.program_id AS program_id, levels.id AS level_id, levels.code AS level_code").
		Joins("JOIN semesters ON semesters.id = enrollments.semester_id").
		Joins("JOIN levels ON levels.id = semesters.level_id").
		Distinct().
		Scan(&facts).Error
	if err != nil {
		return fmt.Errorf("failed to query enrollment level facts: %w", err)
	}

	grouped := make(map[string][]levelFact)
	var programs []string
	for _, f := range facts {
		if _, ok := grouped[f.ProgramID]; !ok {
			programs = append(programs, f.ProgramID)
		}
		grouped[f.ProgramID] = append(grouped[f.ProgramID], f)
	}
	sort.Strings(programs)

	for _, programID := range programs {
		levels := grouped[programID]
		sort.SliceStable(levels, func(i, j int) bool {
			return levelRank(levels[i].LevelCode) < levelRank(levels[j].LevelCode)
		})

		for i, lvl := range levels {
			assoc := models.ProgramLevel{
				ID:        fmt.Sprintf("PL_%s_%s", programID, lvl.LevelID),
				ProgramID: programID,
				LevelID:   lvl.LevelID,
				Ordinal:   i + 1,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "program_id"}, {Name: "level_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"ordinal", "updated_at"}),
			}).Create(&assoc).Error
			if err != nil {
				return fmt.Errorf("failed to upsert program level %s: %w", assoc.ID, err)
			}
			report.Inserted++
		}
	}

	return nil
}

func levelRank(code string) int {
	if rank, ok := levelOrder[code]; ok {
		return rank
	}
	return levelOrderUnknown
}
