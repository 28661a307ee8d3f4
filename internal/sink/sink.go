package sink

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vvka-141/tabload/internal/identifier"
	"github.com/vvka-141/tabload/pkg/tabload"
)

// TableSink writes TabularData values into relational tables through
// database/sql. It implements tabload.Sink.
//
// Every Write opens its own connection, scoped to the call and closed on all
// exit paths. Batches commit independently; nothing already committed is
// rolled back when a later batch fails.
type TableSink struct {
	log tabload.Logger
}

// New creates a TableSink. A nil logger defaults to NopLogger.
func New(log tabload.Logger) *TableSink {
	if log == nil {
		log = tabload.NopLogger{}
	}
	return &TableSink{log: log}
}

// Write persists data into dest and returns the number of rows written.
func (s *TableSink) Write(ctx context.Context, data *tabload.TabularData, dest tabload.Destination, opts tabload.WriteOptions) (int64, error) {
	if err := opts.Normalize(); err != nil {
		return 0, err
	}
	dl, err := dialectFor(dest.Connection.Dialect)
	if err != nil {
		return 0, err
	}

	table := identifier.CleanTable(dest.Table)
	if opts.NormalizeNames {
		for i, col := range data.Columns() {
			data.RenameColumn(i, identifier.Clean(col.Name))
		}
	}

	dsn, err := buildDSN(dest.Connection)
	if err != nil {
		return 0, err
	}
	db, err := sql.Open(dl.driverName, dsn)
	if err != nil {
		return 0, fmt.Errorf("opening %s connection: %v: %w", dest.Connection.Dialect, err, tabload.ErrConnection)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("connecting to %s: %v: %w", dest.Connection.Dialect, err, tabload.ErrConnection)
	}

	if err := s.prepareTable(ctx, db, dl, table, data, opts); err != nil {
		return 0, err
	}

	return s.insertAll(ctx, db, dl, dest.Connection.Dialect, table, data, opts.BatchSize)
}

// prepareTable brings the destination table into the state the flags ask
// for: created, replaced, verified against the data, and truncated.
func (s *TableSink) prepareTable(ctx context.Context, db *sql.DB, dl dialect, table string, data *tabload.TabularData, opts tabload.WriteOptions) error {
	existing, exists, err := s.tableColumns(ctx, db, dl, table)
	if err != nil {
		return err
	}

	if exists && opts.Replace {
		s.log.Verbose("dropping table %q", table)
		if _, err := db.ExecContext(ctx, "DROP TABLE "+dl.quote(table)); err != nil {
			return fmt.Errorf("dropping table %q: %w", table, err)
		}
		exists = false
	}

	if !exists {
		if !opts.CreateIfMissing && !opts.Replace {
			return &tabload.SchemaMismatchError{
				Table:  table,
				Detail: "table does not exist and create-if-missing is off",
			}
		}
		ddl := dl.createTableSQL(table, data.Columns())
		s.log.Verbose("creating table: %s", ddl)
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating table %q: %w", table, err)
		}
		return nil
	}

	if len(existing) != data.NumColumns() {
		return &tabload.SchemaMismatchError{
			Table: table,
			Detail: fmt.Sprintf("table has %d columns, data has %d",
				len(existing), data.NumColumns()),
		}
	}

	if opts.TruncateFirst {
		stmt := dl.truncateStmt(dl.quote(table))
		s.log.Verbose("truncating: %s", stmt)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("truncating table %q: %w", table, err)
		}
	}
	return nil
}

// tableColumns probes the table with a zero-row select. Returns the existing
// column names and whether the table exists at all.
func (s *TableSink) tableColumns(ctx context.Context, db *sql.DB, dl dialect, table string) ([]string, bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+dl.quote(table)+" WHERE 1=0")
	if err != nil {
		if isMissingTable(err) {
			return nil, false, nil
		}
		if isConnectionFailure(err) {
			return nil, false, fmt.Errorf("probing table %q: %v: %w", table, err, tabload.ErrConnection)
		}
		return nil, false, fmt.Errorf("probing table %q: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, false, fmt.Errorf("probing table %q: %w", table, err)
	}
	return cols, true, nil
}

// insertAll writes every row in batches. Each batch is one transaction; a
// failure after committed batches surfaces as a PartialWriteError carrying
// the committed row count.
func (s *TableSink) insertAll(ctx context.Context, db *sql.DB, dl dialect, dialectName tabload.Dialect, table string, data *tabload.TabularData, batchSize int) (int64, error) {
	total := data.NumRows()
	var committed int64

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		if err := s.insertBatch(ctx, db, dl, dialectName, table, data, start, end); err != nil {
			if committed > 0 {
				return committed, &tabload.PartialWriteError{Table: table, RowsCommitted: committed, Err: err}
			}
			return 0, err
		}
		committed += int64(end - start)
		s.log.Verbose("committed rows %d-%d of %d into %q", start+1, end, total, table)
	}

	return committed, nil
}

// insertBatch writes rows [start, end) inside one transaction.
func (s *TableSink) insertBatch(ctx context.Context, db *sql.DB, dl dialect, dialectName tabload.Dialect, table string, data *tabload.TabularData, start, end int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting batch transaction: %v: %w", err, tabload.ErrConnection)
	}
	// Rollback is a no-op after a successful commit.
	defer tx.Rollback()

	columns := data.Columns()
	if dl.multiRowInsert {
		err = s.execMultiRow(ctx, tx, dl, dialectName, table, data, columns, start, end)
	} else {
		err = s.execPerRow(ctx, tx, dl, dialectName, table, data, columns, start, end)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rows %d-%d: %w", start+1, end, err)
	}
	return nil
}

// execMultiRow sends the batch as multi-row VALUES statements, splitting
// where the dialect caps parameters or rows per statement. The offending row
// index is not determinable from a multi-row failure, so IntegrityError
// carries -1.
func (s *TableSink) execMultiRow(ctx context.Context, tx *sql.Tx, dl dialect, dialectName tabload.Dialect, table string, data *tabload.TabularData, columns []tabload.Column, start, end int) error {
	chunk := dl.rowsPerStatement(end-start, len(columns))
	for lo := start; lo < end; lo += chunk {
		hi := lo + chunk
		if hi > end {
			hi = end
		}
		stmt := dl.insertSQL(table, columns, hi-lo)
		args := make([]any, 0, (hi-lo)*len(columns))
		for r := lo; r < hi; r++ {
			for c := range columns {
				args = append(args, dl.bindValue(data.Value(r, c), dialectName))
			}
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return classifyInsertError(table, -1, err)
		}
	}
	return nil
}

// execPerRow binds one row per statement execution; used where multi-row
// VALUES is unavailable. The failing row index is exact here.
func (s *TableSink) execPerRow(ctx context.Context, tx *sql.Tx, dl dialect, dialectName tabload.Dialect, table string, data *tabload.TabularData, columns []tabload.Column, start, end int) error {
	stmt, err := tx.PrepareContext(ctx, dl.insertSQL(table, columns, 1))
	if err != nil {
		return fmt.Errorf("preparing insert for %q: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for r := start; r < end; r++ {
		for c := range columns {
			args[c] = dl.bindValue(data.Value(r, c), dialectName)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return classifyInsertError(table, r, err)
		}
	}
	return nil
}

// classifyInsertError maps a driver error onto the sink taxonomy.
func classifyInsertError(table string, row int, err error) error {
	switch {
	case isIntegrityViolation(err):
		return &tabload.IntegrityError{Table: table, Row: row, Err: err}
	case isConnectionFailure(err):
		return fmt.Errorf("inserting into %q: %v: %w", table, err, tabload.ErrConnection)
	default:
		return fmt.Errorf("inserting into %q: %w", table, err)
	}
}

var _ tabload.Sink = (*TableSink)(nil)
