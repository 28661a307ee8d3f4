package tabload

import (
	"context"
	"fmt"
)

// WriteOptions carries the behavior flags of a single load.
type WriteOptions struct {
	// CreateIfMissing creates the destination table when it does not exist,
	// with column types inferred from the TabularData column types.
	CreateIfMissing bool

	// TruncateFirst removes all existing rows before inserting.
	TruncateFirst bool

	// Replace drops and recreates the destination table. Implies
	// CreateIfMissing.
	Replace bool

	// NormalizeNames rewrites the destination column names into safe SQL
	// identifiers before persistence. Readers may already have done this;
	// the transformation is idempotent.
	NormalizeNames bool

	// BatchSize bounds the number of rows sent per round trip.
	// Defaults to DefaultBatchSize.
	BatchSize int
}

// Normalize applies defaults and checks for nonsensical values.
func (o *WriteOptions) Normalize() error {
	if o.BatchSize < 0 {
		return fmt.Errorf("batch size cannot be negative: %w", ErrInvalidConfig)
	}
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Replace && o.TruncateFirst {
		return fmt.Errorf("replace and truncate-first are mutually exclusive: %w", ErrInvalidConfig)
	}
	return nil
}

// Sink persists a TabularData value into a database table and reports the
// number of rows written.
//
// Each call opens its own connection, scoped to the call and closed on every
// exit path. Batches commit independently: a failure after k committed
// batches surfaces as a PartialWriteError carrying the committed row count,
// and nothing already committed is rolled back.
type Sink interface {
	Write(ctx context.Context, data *TabularData, dest Destination, opts WriteOptions) (int64, error)
}
