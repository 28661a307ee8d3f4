package tabload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure taxonomy.
// These enable callers to distinguish error kinds using errors.Is().
//
// Example usage:
//
//	_, err := loader.Load(ctx, path, opts, dest, writeOpts)
//	if errors.Is(err, tabload.ErrUnsupportedFormat) {
//	    // Tell the user which extensions are supported
//	}
var (
	// ErrUnsupportedFormat indicates the file extension maps to no known reader.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNotFound indicates the source file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrAccessDenied indicates the source file could not be opened for reading.
	ErrAccessDenied = errors.New("access denied")

	// ErrParse indicates the source file content could not be decoded.
	ErrParse = errors.New("parse failed")

	// ErrConnection indicates the target database could not be reached.
	ErrConnection = errors.New("connection failed")

	// ErrSchemaMismatch indicates the destination table exists but is
	// incompatible with the data being loaded.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrIntegrity indicates a constraint violation during insert.
	ErrIntegrity = errors.New("integrity violation")

	// ErrPartialWrite indicates some batches committed before a later batch
	// failed. Committed batches are not rolled back.
	ErrPartialWrite = errors.New("partial write")

	// ErrInvalidData indicates a malformed TabularData value.
	ErrInvalidData = errors.New("invalid tabular data")

	// ErrInvalidConfig indicates invalid connection or load parameters.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ParseError reports a decoding failure with the source path and the
// underlying library's diagnostic.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

// Unwrap makes errors.Is(err, ErrParse) match.
func (e *ParseError) Unwrap() error { return ErrParse }

// SchemaMismatchError reports an incompatibility between the data being
// loaded and an existing destination table.
type SchemaMismatchError struct {
	Table  string
	Detail string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("table %q: %s", e.Table, e.Detail)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// IntegrityError reports a constraint violation during insert. Row is the
// zero-based index of the offending row when the driver makes it
// determinable, and -1 otherwise.
type IntegrityError struct {
	Table string
	Row   int
	Err   error
}

func (e *IntegrityError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("inserting into %q (row %d): %v", e.Table, e.Row, e.Err)
	}
	return fmt.Sprintf("inserting into %q: %v", e.Table, e.Err)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

// PartialWriteError reports that RowsCommitted rows were durably written
// before Err stopped the load. The sink does not roll back committed batches;
// callers needing all-or-nothing semantics must wrap the load in their own
// transaction boundary.
type PartialWriteError struct {
	Table         string
	RowsCommitted int64
	Err           error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("load into %q stopped after %d committed rows: %v",
		e.Table, e.RowsCommitted, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return ErrPartialWrite }

// ExitCodeForError returns the CLI exit code for an error. Returns
// ExitSuccess (0) for nil, semantic codes for known error kinds and
// ExitGeneralError (1) for anything unclassified.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedFormat):
		return ExitUnsupportedFormat
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrParse):
		return ExitReadFailed
	case errors.Is(err, ErrConnection):
		return ExitConnectionError
	case errors.Is(err, ErrSchemaMismatch):
		return ExitSchemaMismatch
	case errors.Is(err, ErrPartialWrite):
		return ExitPartialWrite
	case errors.Is(err, ErrIntegrity):
		return ExitWriteFailed
	case errors.Is(err, ErrInvalidData):
		return ExitConfigError
	}

	// Driver errors that escaped classification but are clearly
	// connection-level.
	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "failed to connect") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
