package format

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vvka-141/tabload/pkg/tabload"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, v))
			}
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadExcelDefaultSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"People": {
			{"name", "age"},
			{"alice", 30},
			{"bob", 25},
		},
	})

	data, err := readExcel(context.Background(), path, tabload.ReadOptions{})
	require.NoError(t, err)

	cols := data.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "name", cols[0].Name)
	assert.Equal(t, tabload.TypeText, cols[0].Type)
	assert.Equal(t, tabload.TypeInteger, cols[1].Type)
	assert.Equal(t, 2, data.NumRows())
	assert.Equal(t, int64(30), data.Value(0, 1))
}

func TestReadExcelNamedSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Summary": {
			{"ignored"},
			{"x"},
		},
	})

	// Add a second sheet and pick it explicitly.
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	_, err = f.NewSheet("BSA 12 2020")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("BSA 12 2020", "A1", "tank"))
	require.NoError(t, f.SetCellValue("BSA 12 2020", "A2", "T1"))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	data, err := readExcel(context.Background(), path, tabload.ReadOptions{Sheet: "BSA 12 2020"})
	require.NoError(t, err)
	assert.Equal(t, "tank", data.Columns()[0].Name)
	assert.Equal(t, "T1", data.Value(0, 0))
}

func TestReadExcelMissingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"People": {{"name"}, {"x"}},
	})

	_, err := readExcel(context.Background(), path, tabload.ReadOptions{Sheet: "Nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrParse))
}

func TestReadExcelEmptySheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Empty": nil,
	})

	_, err := readExcel(context.Background(), path, tabload.ReadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrParse))
}

func TestReadExcelCorruptFile(t *testing.T) {
	path := writeTemp(t, "broken.xlsx", []byte("this is not a zip archive"))

	_, err := readExcel(context.Background(), path, tabload.ReadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrParse))
}
