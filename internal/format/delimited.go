package format

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/tabload/pkg/tabload"
)

// readDelimited decodes a delimited text file with a header row.
// The whole file is read once so encoding can be probed before parsing.
func readDelimited(ctx context.Context, path string, opts tabload.ReadOptions) (*tabload.TabularData, error) {
	content, err := readTextFile(path, opts.Encoding)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = tabload.DefaultDelimiter
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = delim
	// Unqualified data may contain stray quote characters mid-field; only
	// enforce strict quoting when the caller declares the data qualified.
	r.LazyQuotes = !opts.Qualified

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &tabload.ParseError{Path: path, Err: fmt.Errorf("file is empty, expected a header row")}
		}
		return nil, &tabload.ParseError{Path: path, Err: err}
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}

	data, err := buildTyped(header, records)
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	return data, nil
}
