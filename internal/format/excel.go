package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vvka-141/tabload/pkg/tabload"
)

var errNoSheets = errors.New("workbook has no sheets")

func errEmptySheet(sheet string) error {
	return fmt.Errorf("sheet %q has no rows, expected a header row", sheet)
}

// readExcel decodes one worksheet of an .xlsx workbook. The sheet is chosen
// by name via opts.Sheet; when empty, the workbook's first sheet is used.
func readExcel(ctx context.Context, path string, opts tabload.ReadOptions) (*tabload.TabularData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &tabload.ParseError{Path: path, Err: errNoSheets}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &tabload.ParseError{Path: path, Err: errEmptySheet(sheet)}
	}

	// excelize returns formatted cell text; the shared inference turns it
	// back into typed values the same way delimited input is handled.
	data, err := buildTyped(rows[0], rows[1:])
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	return data, nil
}
