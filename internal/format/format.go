// Package format turns files on disk into tabload.TabularData values.
//
// Dispatch is driven by the file extension through an explicit Format enum,
// one reader per format: delimited text via encoding/csv, DBF via godbf,
// Excel workbooks via excelize and Access databases via ODBC. All byte-level
// parsing is delegated to those libraries; this package only normalizes their
// output into the shared tabular shape.
package format

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/tabload/internal/identifier"
	"github.com/vvka-141/tabload/pkg/tabload"
)

// Format enumerates the supported source file formats.
type Format int

const (
	// FormatDelimited is delimited text with a header row (.csv, .txt, .tsv, .tab).
	FormatDelimited Format = iota

	// FormatDBF is the dBase fixed-record binary format (.dbf).
	FormatDBF

	// FormatExcel is an Office Open XML workbook (.xlsx).
	FormatExcel

	// FormatAccess is a Microsoft Access database (.accdb, .mdb).
	FormatAccess
)

// String returns a short display name for the format.
func (f Format) String() string {
	switch f {
	case FormatDelimited:
		return "delimited"
	case FormatDBF:
		return "dbf"
	case FormatExcel:
		return "excel"
	case FormatAccess:
		return "access"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// formatForExt maps lower-case file extensions to formats.
var formatForExt = map[string]Format{
	".csv":   FormatDelimited,
	".txt":   FormatDelimited,
	".tsv":   FormatDelimited,
	".tab":   FormatDelimited,
	".dbf":   FormatDBF,
	".xlsx":  FormatExcel,
	".accdb": FormatAccess,
	".mdb":   FormatAccess,
}

// Extensions returns the supported extensions in sorted display order.
func Extensions() []string {
	return []string{".accdb", ".csv", ".dbf", ".mdb", ".tab", ".tsv", ".txt", ".xlsx"}
}

// Detect maps the extension of path (case-insensitive) to a Format.
// Unknown extensions fail with tabload.ErrUnsupportedFormat.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formatForExt[ext]
	if !ok {
		return 0, fmt.Errorf("extension %q of %s (supported: %s): %w",
			ext, path, strings.Join(Extensions(), " "), tabload.ErrUnsupportedFormat)
	}
	return f, nil
}

// reader dispatches to the per-format decoders. It implements tabload.Reader.
type reader struct{}

// NewReader returns the extension-dispatching Reader.
func NewReader() tabload.Reader {
	return reader{}
}

// Read decodes the file at path into a TabularData value. The format is
// chosen from the extension before the file is touched, and the source is
// never opened when the extension is unsupported.
func (reader) Read(ctx context.Context, path string, opts tabload.ReadOptions) (*tabload.TabularData, error) {
	if path == "" {
		return nil, fmt.Errorf("source path is empty: %w", tabload.ErrInvalidConfig)
	}
	f, err := Detect(path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, statError(abs, err)
	}

	var data *tabload.TabularData
	switch f {
	case FormatDelimited:
		data, err = readDelimited(ctx, abs, opts)
	case FormatDBF:
		data, err = readDBF(ctx, abs, opts)
	case FormatExcel:
		data, err = readExcel(ctx, abs, opts)
	case FormatAccess:
		data, err = readAccess(ctx, abs, opts)
	default:
		// Detect only returns values of the enum above.
		return nil, fmt.Errorf("format %v has no reader: %w", f, tabload.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	if opts.NormalizeNames {
		for i, col := range data.Columns() {
			data.RenameColumn(i, identifier.Clean(col.Name))
		}
	}
	return data, nil
}

// statError maps filesystem errors onto the reader error taxonomy.
func statError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%s: %w", path, tabload.ErrNotFound)
	case os.IsPermission(err):
		return fmt.Errorf("%s: %w", path, tabload.ErrAccessDenied)
	default:
		return fmt.Errorf("%s: %v: %w", path, err, tabload.ErrAccessDenied)
	}
}

var _ tabload.Reader = reader{}
