package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelSource reads the first sheet of an xlsx workbook. The header row
// supplies field names, normalized through NormalizeHeader; every cell goes
// through NormalizeValue so downstream stages see a single null marker.
type ExcelSource struct {
	Path string
}

func NewExcelSource(path string) *ExcelSource {
	return &ExcelSource{Path: path}
}

func (s *ExcelSource) Load() ([]Row, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.Path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", s.Path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
	}

	out := make([]Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = NormalizeValue(cells[i])
			} else {
				// GetRows drops trailing empty cells
				row[header] = nil
			}
		}
		out = append(out, row)
	}

	return out, nil
}
