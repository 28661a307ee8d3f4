package tabload

import "context"

// ReadOptions carries the format-specific knobs a Reader may honor.
// Zero values mean "use the format's default".
type ReadOptions struct {
	// Delimiter is the field separator for delimited text files.
	// Defaults to DefaultDelimiter.
	Delimiter rune

	// Qualified indicates delimited fields may be quoted with '"'.
	Qualified bool

	// Encoding forces the text encoding of delimited and DBF sources
	// ("utf8" or "cp1252"). When empty the reader probes the file: UTF-8
	// first, Windows-1252 as the fallback.
	Encoding string

	// Sheet selects the worksheet of an Excel workbook. When empty the
	// workbook's first sheet is read.
	Sheet string

	// Table selects the table of an Access database. Required for
	// .accdb/.mdb sources.
	Table string

	// NormalizeNames rewrites column names into safe SQL identifiers
	// (lower-cased, ASCII-transliterated, non-alphanumerics collapsed).
	// Without it, column names are taken from the source verbatim.
	NormalizeNames bool
}

// Reader turns a file on disk into a TabularData value.
//
// Implementations open the file read-only and close it on every exit path.
// Failure modes: ErrNotFound, ErrAccessDenied, ErrUnsupportedFormat and
// ParseError (wrapping the decoding library's diagnostic).
type Reader interface {
	Read(ctx context.Context, path string, opts ReadOptions) (*TabularData, error)
}
