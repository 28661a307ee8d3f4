package format

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/vvka-141/tabload/pkg/tabload"
)

// Text encodings accepted for delimited and DBF sources. UTF-8 is probed
// first; Windows-1252 is the fallback because every byte sequence decodes
// under it, which matches how these files show up in practice.
const (
	encodingUTF8   = "utf8"
	encodingCP1252 = "cp1252"
)

// readTextFile reads the whole file and returns its content as UTF-8,
// honoring a forced encoding or probing when none is given.
func readTextFile(path, encoding string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, statError(path, err)
	}

	switch normalizeEncoding(encoding) {
	case encodingUTF8:
		if !utf8.Valid(raw) {
			return nil, &tabload.ParseError{
				Path: path,
				Err:  fmt.Errorf("content is not valid UTF-8 (pass encoding %q to force Windows-1252)", encodingCP1252),
			}
		}
		return raw, nil
	case encodingCP1252:
		return decodeCP1252(path, raw)
	case "":
		if utf8.Valid(raw) {
			return raw, nil
		}
		return decodeCP1252(path, raw)
	default:
		return nil, fmt.Errorf("unknown encoding %q (supported: %s, %s): %w",
			encoding, encodingUTF8, encodingCP1252, tabload.ErrInvalidConfig)
	}
}

func decodeCP1252(path string, raw []byte) ([]byte, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, &tabload.ParseError{Path: path, Err: err}
	}
	return out, nil
}

func normalizeEncoding(encoding string) string {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(encoding), "-", "")) {
	case "utf8":
		return encodingUTF8
	case "cp1252", "windows1252":
		return encodingCP1252
	case "":
		return ""
	default:
		return encoding
	}
}
