package format

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	_ "github.com/alexbrainman/odbc" // registers the "odbc" driver

	"github.com/vvka-141/tabload/pkg/tabload"
)

// accessDriverName matches the driver the Microsoft Access redistributable
// installs. Reading .accdb/.mdb files requires it to be present on the host,
// the same prerequisite the ODBC route has always had.
const accessDriverName = "Microsoft Access Driver (*.mdb, *.accdb)"

// readAccess reads one table of an Access database through ODBC.
func readAccess(ctx context.Context, path string, opts tabload.ReadOptions) (*tabload.TabularData, error) {
	if opts.Table == "" {
		return nil, fmt.Errorf("access source %s requires a table name: %w", path, tabload.ErrInvalidConfig)
	}

	dsn := fmt.Sprintf("Driver={%s};DBQ=%s", accessDriverName, path)
	db, err := sql.Open("odbc", dsn)
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	defer db.Close()

	// Access quotes identifiers with brackets; strip any the caller added.
	table := strings.Trim(opts.Table, "[]")
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM [%s]", table))
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	columns := make([]tabload.Column, len(colTypes))
	for i, ct := range colTypes {
		columns[i] = tabload.Column{
			Name: ct.Name(),
			Type: odbcColumnType(ct.DatabaseTypeName()),
		}
	}

	data := tabload.NewTabularData(columns)
	scan := make([]any, len(columns))
	for i := range scan {
		scan[i] = new(any)
	}
	row := make([]any, len(columns))
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, &tabload.ParseError{Path: path, Err: err}
		}
		for i := range scan {
			row[i] = coerceODBCValue(*scan[i].(*any), columns[i].Type)
		}
		if err := data.AppendRow(row); err != nil {
			return nil, &tabload.ParseError{Path: path, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	return data, nil
}

func parseFloatOrNil(s string) any {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return f
}

// odbcColumnType maps ODBC/Access type names onto column types.
func odbcColumnType(dbType string) tabload.ColumnType {
	t := strings.ToUpper(dbType)
	switch {
	case strings.Contains(t, "BIT") || strings.Contains(t, "BOOL"):
		return tabload.TypeBool
	case strings.Contains(t, "INT") || strings.Contains(t, "COUNTER") || strings.Contains(t, "BYTE"):
		return tabload.TypeInteger
	case strings.Contains(t, "DOUBLE") || strings.Contains(t, "FLOAT") || strings.Contains(t, "REAL") ||
		strings.Contains(t, "DECIMAL") || strings.Contains(t, "NUMERIC") || strings.Contains(t, "CURRENCY"):
		return tabload.TypeFloat
	case strings.Contains(t, "DATE") || strings.Contains(t, "TIME"):
		return tabload.TypeDate
	default:
		return tabload.TypeText
	}
}

// coerceODBCValue converts whatever the ODBC driver scanned into the
// declared column type. Unconvertible values become NULL rather than failing
// the whole read.
func coerceODBCValue(v any, t tabload.ColumnType) any {
	if v == nil {
		return nil
	}
	switch t {
	case tabload.TypeInteger:
		switch n := v.(type) {
		case int64:
			return n
		case int32:
			return int64(n)
		case int:
			return int64(n)
		case float64:
			// Some ODBC builds surface integer columns as doubles. Only an
			// integral value converts; anything fractional would be silently
			// truncated, so it becomes NULL like other unconvertible values.
			if n == math.Trunc(n) {
				return int64(n)
			}
			return nil
		}
	case tabload.TypeFloat:
		switch f := v.(type) {
		case float64:
			return f
		case float32:
			return float64(f)
		case int64:
			return float64(f)
		case []byte:
			return parseFloatOrNil(string(f))
		case string:
			return parseFloatOrNil(f)
		}
	case tabload.TypeDate:
		if ts, ok := v.(time.Time); ok {
			return ts
		}
	case tabload.TypeBool:
		switch b := v.(type) {
		case bool:
			return b
		case int64:
			return b != 0
		}
	default:
		switch s := v.(type) {
		case string:
			return s
		case []byte:
			return string(s)
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return nil
}
