package format

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/LindsayBradford/go-dbf/godbf"

	"github.com/vvka-141/tabload/pkg/tabload"
)

// godbf wants its encoding names upper-cased without separators.
func dbfEncoding(encoding string) string {
	switch normalizeEncoding(encoding) {
	case encodingCP1252, "":
		// DBF files predate Unicode; Windows-1252 is the safe default and a
		// superset of ASCII, so pure-ASCII files decode identically.
		return "CP1252"
	case encodingUTF8:
		return "UTF8"
	default:
		return strings.ToUpper(encoding)
	}
}

// readDBF decodes a dBase table file. Field typing follows the DBF field
// descriptors rather than value sampling.
func readDBF(ctx context.Context, path string, opts tabload.ReadOptions) (*tabload.TabularData, error) {
	table, err := godbf.NewFromFile(path, dbfEncoding(opts.Encoding))
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}

	fields := table.Fields()
	columns := make([]tabload.Column, len(fields))
	for i, fd := range fields {
		columns[i] = tabload.Column{
			Name: fd.Name(),
			Type: dbfColumnType(byte(fd.FieldType()), fd.DecimalPlaces()),
		}
	}

	data := tabload.NewTabularData(columns)
	row := make([]any, len(columns))
	for r := 0; r < table.NumberOfRecords(); r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for c := range columns {
			row[c] = dbfValue(table.FieldValue(r, c), columns[c].Type)
		}
		if err := data.AppendRow(row); err != nil {
			return nil, &tabload.ParseError{Path: path, Err: err}
		}
	}
	return data, nil
}

// dbfColumnType maps a DBF field type byte to a column type. Numeric fields
// without decimal places are integers; with decimals they are floats.
func dbfColumnType(fieldType byte, decimals byte) tabload.ColumnType {
	switch fieldType {
	case 'N':
		if decimals > 0 {
			return tabload.TypeFloat
		}
		return tabload.TypeInteger
	case 'F':
		return tabload.TypeFloat
	case 'D':
		return tabload.TypeDate
	case 'L':
		return tabload.TypeBool
	default: // 'C' and anything exotic
		return tabload.TypeText
	}
}

// dbfValue converts godbf's string field value into the declared type.
// DBF pads character data with spaces and leaves numerics blank when unset.
//
// Content that does not parse as its field descriptor's type becomes NULL
// rather than failing the read: DBF writers routinely leave filler like
// "********" or garbage spaces in fixed-width numeric and date fields, and
// the descriptor-declared type is authoritative for the column either way.
// This tolerance applies to cell content only; a structurally invalid file
// still fails in godbf.NewFromFile with a ParseError.
func dbfValue(v string, t tabload.ColumnType) any {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	switch t {
	case tabload.TypeInteger:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil
		}
		return n
	case tabload.TypeFloat:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		return f
	case tabload.TypeDate:
		// DBF date fields store YYYYMMDD.
		ts, err := time.Parse("20060102", trimmed)
		if err != nil {
			return nil
		}
		return ts
	case tabload.TypeBool:
		switch trimmed {
		case "T", "t", "Y", "y":
			return true
		case "F", "f", "N", "n":
			return false
		default: // '?' means uninitialized
			return nil
		}
	default:
		return trimmed
	}
}
