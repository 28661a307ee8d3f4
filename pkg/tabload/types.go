// Package tabload defines the public types, interfaces and error taxonomy for
// loading tabular data from files or memory into a relational database.
//
// The package itself contains no parsing and no SQL. File decoding lives behind
// the Reader interface (implemented per format in internal/format) and
// persistence lives behind the Sink interface (implemented per dialect in
// internal/sink). The two facades, DataLoader and FileLoader, only compose
// those collaborators.
package tabload

import (
	"fmt"
	"time"
)

// ColumnType declares the scalar type of a column. It drives both value
// binding and the CREATE TABLE type chosen for the target dialect.
type ColumnType int

const (
	// TypeText is a variable-length string column.
	TypeText ColumnType = iota

	// TypeInteger is a 64-bit signed integer column.
	TypeInteger

	// TypeFloat is a double-precision floating point column.
	TypeFloat

	// TypeDate is a date/timestamp column. Values are time.Time.
	TypeDate

	// TypeBool is a boolean column, mapped to the smallest type the target
	// dialect supports.
	TypeBool
)

// String returns the lower-case name of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeDate:
		return "date"
	case TypeBool:
		return "bool"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Column is a named, typed column of a TabularData value.
type Column struct {
	Name string
	Type ColumnType
}

// TabularData is a normalized in-memory table: an ordered list of typed
// columns plus column-major value storage. A nil value is a SQL NULL.
//
// Expected value types per ColumnType:
//
//	TypeText    string
//	TypeInteger int64
//	TypeFloat   float64
//	TypeDate    time.Time
//	TypeBool    bool
//
// TabularData is created once (by a Reader or directly by the caller),
// consumed once by a Sink and never mutated in between, except for the
// optional column-name normalization applied before persistence.
type TabularData struct {
	columns []Column
	values  [][]any // values[col][row]
}

// NewTabularData creates an empty table with the given column layout.
func NewTabularData(columns []Column) *TabularData {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &TabularData{
		columns: cols,
		values:  make([][]any, len(cols)),
	}
}

// Columns returns the ordered column layout.
func (d *TabularData) Columns() []Column {
	cols := make([]Column, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// NumColumns returns the number of columns.
func (d *TabularData) NumColumns() int { return len(d.columns) }

// NumRows returns the number of rows. It assumes the table is well formed;
// use Validate to check that all columns agree.
func (d *TabularData) NumRows() int {
	if len(d.values) == 0 {
		return 0
	}
	return len(d.values[0])
}

// AppendRow appends one row of values in column order.
func (d *TabularData) AppendRow(row []any) error {
	if len(row) != len(d.columns) {
		return fmt.Errorf("row has %d values, table has %d columns: %w",
			len(row), len(d.columns), ErrInvalidData)
	}
	for i, v := range row {
		d.values[i] = append(d.values[i], v)
	}
	return nil
}

// Row returns row i in column order. The returned slice is a copy.
func (d *TabularData) Row(i int) []any {
	row := make([]any, len(d.columns))
	for c := range d.columns {
		row[c] = d.values[c][i]
	}
	return row
}

// Value returns the value at (row, col).
func (d *TabularData) Value(row, col int) any {
	return d.values[col][row]
}

// RenameColumn replaces the name of column i. Used for column-name
// normalization before persistence.
func (d *TabularData) RenameColumn(i int, name string) {
	d.columns[i].Name = name
}

// Validate checks the structural invariants: at least one column, non-empty
// column names, every column holding the same number of values, and value
// types matching the declared column types. Returns an error wrapping
// ErrInvalidData on the first violation.
func (d *TabularData) Validate() error {
	if len(d.columns) == 0 {
		return fmt.Errorf("table has no columns: %w", ErrInvalidData)
	}
	n := len(d.values[0])
	for i, col := range d.columns {
		if col.Name == "" {
			return fmt.Errorf("column %d has an empty name: %w", i, ErrInvalidData)
		}
		if len(d.values[i]) != n {
			return fmt.Errorf("column %q has %d values, column %q has %d: %w",
				col.Name, len(d.values[i]), d.columns[0].Name, n, ErrInvalidData)
		}
	}
	for c, col := range d.columns {
		for r, v := range d.values[c] {
			if v == nil {
				continue
			}
			if !valueMatches(col.Type, v) {
				return fmt.Errorf("column %q row %d: value %T does not match declared type %s: %w",
					col.Name, r, v, col.Type, ErrInvalidData)
			}
		}
	}
	return nil
}

func valueMatches(t ColumnType, v any) bool {
	switch t {
	case TypeText:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		_, ok := v.(int64)
		return ok
	case TypeFloat:
		_, ok := v.(float64)
		return ok
	case TypeDate:
		_, ok := v.(time.Time)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}
