package tabload

import (
	"context"
	"fmt"
)

// DataLoader persists an already-in-memory TabularData value. It adds
// parameter defaulting and structural validation on top of the Sink and
// nothing else.
type DataLoader struct {
	sink Sink
	log  Logger
}

// NewDataLoader creates a DataLoader writing through the given sink.
// A nil logger defaults to NopLogger.
func NewDataLoader(sink Sink, log Logger) *DataLoader {
	if log == nil {
		log = NopLogger{}
	}
	return &DataLoader{sink: sink, log: log}
}

// Load writes data into the destination table and returns the number of rows
// written. The data is validated (consistent column lengths, declared types)
// before any connection is opened.
func (l *DataLoader) Load(ctx context.Context, data *TabularData, dest Destination, opts WriteOptions) (int64, error) {
	if data == nil {
		return 0, fmt.Errorf("no data supplied: %w", ErrInvalidData)
	}
	if err := data.Validate(); err != nil {
		return 0, err
	}
	if err := dest.Validate(); err != nil {
		return 0, err
	}
	if err := opts.Normalize(); err != nil {
		return 0, err
	}

	l.log.Verbose("loading %d rows x %d columns into %q (%s)",
		data.NumRows(), data.NumColumns(), dest.Table, dest.Connection.Dialect)
	n, err := l.sink.Write(ctx, data, dest, opts)
	if err != nil {
		return n, err
	}
	l.log.Info("loaded %d rows into %q", n, dest.Table)
	return n, nil
}

// FileLoader reads a file into a TabularData value and persists it.
// It composes a Reader and a Sink; whichever stage fails first decides the
// error, and a write is never attempted after a failed read.
type FileLoader struct {
	reader Reader
	sink   Sink
	log    Logger
}

// NewFileLoader creates a FileLoader composing the given reader and sink.
// A nil logger defaults to NopLogger.
func NewFileLoader(reader Reader, sink Sink, log Logger) *FileLoader {
	if log == nil {
		log = NopLogger{}
	}
	return &FileLoader{reader: reader, sink: sink, log: log}
}

// Load reads the file at path and writes its rows into the destination
// table, returning the number of rows written.
func (l *FileLoader) Load(ctx context.Context, path string, ropts ReadOptions, dest Destination, wopts WriteOptions) (int64, error) {
	if err := dest.Validate(); err != nil {
		return 0, err
	}
	if err := wopts.Normalize(); err != nil {
		return 0, err
	}

	l.log.Verbose("reading %s", path)
	data, err := l.reader.Read(ctx, path, ropts)
	if err != nil {
		return 0, err
	}
	if err := data.Validate(); err != nil {
		return 0, err
	}

	l.log.Verbose("loading %d rows x %d columns into %q (%s)",
		data.NumRows(), data.NumColumns(), dest.Table, dest.Connection.Dialect)
	n, err := l.sink.Write(ctx, data, dest, wopts)
	if err != nil {
		return n, err
	}
	l.log.Info("loaded %d rows from %s into %q", n, path, dest.Table)
	return n, nil
}
