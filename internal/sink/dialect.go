// Package sink persists tabload.TabularData values into relational tables.
//
// All SQL goes through database/sql; per-dialect differences (driver name,
// DSN shape, placeholders, identifier quoting, column types, truncation) are
// declared in the dialect table below instead of being branched ad hoc at the
// call sites.
package sink

import (
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/tabload/pkg/tabload"
)

// dialect captures everything dialect-specific the sink needs.
type dialect struct {
	// driverName is the database/sql driver registration name.
	driverName string

	// placeholder renders the parameter marker for 1-based position n.
	placeholder func(n int) string

	// quote renders an identifier with the dialect's quoting characters.
	quote func(ident string) string

	// columnTypes maps declared tabular types to DDL type names.
	columnTypes map[tabload.ColumnType]string

	// truncateStmt renders the statement removing all rows from a table.
	truncateStmt func(quotedTable string) string

	// multiRowInsert is false for dialects without multi-row VALUES
	// support; rows are then bound one statement execution at a time
	// inside the batch transaction.
	multiRowInsert bool

	// maxParams caps the number of bind parameters per statement
	// (0 = unlimited). SQL Server rejects statements above 2100.
	maxParams int

	// maxRowsPerStmt caps rows per multi-row VALUES statement
	// (0 = unlimited). SQL Server allows at most 1000.
	maxRowsPerStmt int
}

func questionMark(int) string { return "?" }

func doubleQuote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func backtickQuote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func bracketQuote(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}

func plainTruncate(quotedTable string) string {
	return "TRUNCATE TABLE " + quotedTable
}

// dialects declares the supported targets. The column type choices mirror
// what each engine idiomatically uses for untyped bulk loads: generous text
// types, 64-bit integers and double-precision floats.
var dialects = map[tabload.Dialect]dialect{
	tabload.DialectPostgres: {
		driverName:  "pgx",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		quote:       doubleQuote,
		columnTypes: map[tabload.ColumnType]string{
			tabload.TypeText:    "TEXT",
			tabload.TypeInteger: "BIGINT",
			tabload.TypeFloat:   "DOUBLE PRECISION",
			tabload.TypeDate:    "TIMESTAMP",
			tabload.TypeBool:    "BOOLEAN",
		},
		truncateStmt:   plainTruncate,
		multiRowInsert: true,
	},
	tabload.DialectMySQL: {
		driverName:  "mysql",
		placeholder: questionMark,
		quote:       backtickQuote,
		columnTypes: map[tabload.ColumnType]string{
			tabload.TypeText:    "TEXT",
			tabload.TypeInteger: "BIGINT",
			tabload.TypeFloat:   "DOUBLE",
			tabload.TypeDate:    "DATETIME",
			tabload.TypeBool:    "TINYINT(1)",
		},
		truncateStmt:   plainTruncate,
		multiRowInsert: true,
	},
	tabload.DialectSQLite: {
		driverName:  "sqlite",
		placeholder: questionMark,
		quote:       doubleQuote,
		columnTypes: map[tabload.ColumnType]string{
			tabload.TypeText:    "TEXT",
			tabload.TypeInteger: "INTEGER",
			tabload.TypeFloat:   "REAL",
			tabload.TypeDate:    "TEXT", // ISO 8601, SQLite's own convention
			tabload.TypeBool:    "INTEGER",
		},
		// SQLite has no TRUNCATE; an unqualified DELETE hits its truncate
		// optimization and is the idiomatic equivalent.
		truncateStmt: func(quotedTable string) string {
			return "DELETE FROM " + quotedTable
		},
		multiRowInsert: true,
	},
	tabload.DialectSQLServer: {
		driverName:  "sqlserver",
		placeholder: func(n int) string { return fmt.Sprintf("@p%d", n) },
		quote:       bracketQuote,
		columnTypes: map[tabload.ColumnType]string{
			tabload.TypeText:    "NVARCHAR(MAX)",
			tabload.TypeInteger: "BIGINT",
			tabload.TypeFloat:   "FLOAT",
			tabload.TypeDate:    "DATETIME2",
			tabload.TypeBool:    "BIT",
		},
		truncateStmt:   plainTruncate,
		multiRowInsert: true,
		maxParams:      2100,
		maxRowsPerStmt: 1000,
	},
	tabload.DialectOracle: {
		driverName:  "oracle",
		placeholder: func(n int) string { return fmt.Sprintf(":%d", n) },
		quote:       doubleQuote,
		columnTypes: map[tabload.ColumnType]string{
			tabload.TypeText:    "VARCHAR2(4000)",
			tabload.TypeInteger: "NUMBER(19)",
			tabload.TypeFloat:   "BINARY_DOUBLE",
			tabload.TypeDate:    "TIMESTAMP",
			tabload.TypeBool:    "NUMBER(1)",
		},
		truncateStmt: plainTruncate,
		// Oracle's INSERT ... VALUES takes a single row; rows are bound
		// per-execution inside the batch transaction instead.
		multiRowInsert: false,
	},
}

// dialectFor resolves the dialect table entry for a descriptor.
func dialectFor(d tabload.Dialect) (dialect, error) {
	dl, ok := dialects[d]
	if !ok {
		return dialect{}, fmt.Errorf("unknown dialect %q: %w", d, tabload.ErrInvalidConfig)
	}
	return dl, nil
}

// createTableSQL renders the CREATE TABLE statement for the given columns.
func (d dialect) createTableSQL(table string, columns []tabload.Column) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = d.quote(col.Name) + " " + d.columnTypes[col.Type]
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.quote(table), strings.Join(defs, ", "))
}

// insertSQL renders a multi-row INSERT for rowCount rows of the given
// columns, numbering placeholders row-major.
func (d dialect) insertSQL(table string, columns []tabload.Column, rowCount int) string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = d.quote(col.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", d.quote(table), strings.Join(names, ", "))
	n := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.placeholder(n))
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

// rowsPerStatement bounds how many rows one INSERT statement may carry,
// honoring the dialect's parameter and row limits.
func (d dialect) rowsPerStatement(batchSize, columnCount int) int {
	rows := batchSize
	if !d.multiRowInsert {
		return 1
	}
	if d.maxRowsPerStmt > 0 && rows > d.maxRowsPerStmt {
		rows = d.maxRowsPerStmt
	}
	if d.maxParams > 0 && columnCount > 0 {
		if byParams := d.maxParams / columnCount; byParams < rows {
			rows = byParams
		}
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// bindValue adapts a typed value to what the dialect's driver and column
// type expect. The conversion rules are the explicit counterpart of the
// declared column types above.
func (d dialect) bindValue(v any, dialectName tabload.Dialect) any {
	if v == nil {
		return nil
	}
	switch dialectName {
	case tabload.DialectSQLite:
		switch t := v.(type) {
		case bool:
			if t {
				return int64(1)
			}
			return int64(0)
		case time.Time:
			// Dates live in TEXT columns as ISO 8601.
			return t.Format("2006-01-02 15:04:05")
		}
	case tabload.DialectOracle:
		if b, ok := v.(bool); ok {
			if b {
				return int64(1)
			}
			return int64(0)
		}
	}
	return v
}
