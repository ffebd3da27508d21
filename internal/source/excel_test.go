package source

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	for i, cells := range rows {
		for j, val := range cells {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "extract.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestExcelSourceNormalizesHeadersAndNulls(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Institution Code", "Institution Nom", "Institution Type"},
		{"UF1", "University Foo", "public"},
		{"UF2", "nan", "None"},
		{"UF3", "", "private"},
	})

	rows, err := NewExcelSource(path).Load()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "UF1", rows[0].String("institution_code"))
	assert.Equal(t, "University Foo", rows[0].String("institution_nom"))

	// "nan" and "None" collapse to the null marker.
	assert.False(t, rows[1].Has("institution_nom"))
	assert.False(t, rows[1].Has("institution_type"))

	assert.False(t, rows[2].Has("institution_nom"))
	assert.Equal(t, "private", rows[2].String("institution_type"))
}

func TestExcelSourceShortRows(t *testing.T) {
	// Trailing empty cells are dropped by the reader; the adapter still
	// materializes the field as null.
	path := writeWorkbook(t, [][]any{
		{"code", "label", "abbreviation"},
		{"SCI"},
	})

	rows, err := NewExcelSource(path).Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "SCI", rows[0].String("code"))
	assert.False(t, rows[0].Has("label"))
	assert.False(t, rows[0].Has("abbreviation"))
}

func TestRowDate(t *testing.T) {
	row := Row{
		"iso":    "2019-09-15",
		"french": "15/09/2019",
		"bad":    "not a date",
		"empty":  nil,
	}

	d := row.Date("iso")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2019, 9, 15, 0, 0, 0, 0, time.UTC), *d)

	d = row.Date("french")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2019, 9, 15, 0, 0, 0, 0, time.UTC), *d)

	assert.Nil(t, row.Date("bad"))
	assert.Nil(t, row.Date("empty"))
	assert.Nil(t, row.Date("missing"))
}

func TestRowInt(t *testing.T) {
	row := Row{
		"plain": "2019",
		"float": "2019.0",
		"bad":   "abc",
	}

	n := row.Int("plain")
	require.NotNil(t, n)
	assert.Equal(t, 2019, *n)

	n = row.Int("float")
	require.NotNil(t, n)
	assert.Equal(t, 2019, *n)

	assert.Nil(t, row.Int("bad"))
	assert.Nil(t, row.Int("missing"))
}
