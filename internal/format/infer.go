package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/tabload/pkg/tabload"
)

// buildTyped assembles a TabularData from a header and string records,
// inferring a column type from the values. A column whose non-empty values
// all parse as integers becomes TypeInteger, then TypeFloat, then TypeBool,
// then TypeDate (ISO dates only); anything else stays TypeText. Empty fields
// become NULL.
//
// The rules are deliberately conservative: a candidate type is taken only
// when every non-empty value in the column parses as it, so no value is ever
// lost to a failed conversion.
func buildTyped(header []string, records [][]string) (*tabload.TabularData, error) {
	types := make([]tabload.ColumnType, len(header))
	for col := range header {
		types[col] = inferColumnType(records, col)
	}

	columns := make([]tabload.Column, len(header))
	for i, name := range header {
		columns[i] = tabload.Column{Name: name, Type: types[i]}
	}

	data := tabload.NewTabularData(columns)
	row := make([]any, len(header))
	for _, rec := range records {
		for col := range header {
			row[col] = convertCell(cellAt(rec, col), types[col])
		}
		if err := data.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// cellAt tolerates ragged records (Excel trims trailing empty cells).
func cellAt(rec []string, col int) string {
	if col < len(rec) {
		return rec[col]
	}
	return ""
}

// candidateTypes is the order candidate types are tried in. The order only
// matters for columns admitted by more than one type (every integer column is
// also a float column); disjoint types like bool and date never compete.
var candidateTypes = []tabload.ColumnType{
	tabload.TypeInteger,
	tabload.TypeFloat,
	tabload.TypeBool,
	tabload.TypeDate,
}

// inferColumnType picks the first candidate type that admits every non-empty
// value in the column. The check covers all values, not just the ones seen so
// far: the candidates are not supersets of each other, so a column like
// ["1", "true"] must land on text, never on bool.
func inferColumnType(records [][]string, col int) tabload.ColumnType {
	values := make([]string, 0, len(records))
	for _, rec := range records {
		if v := strings.TrimSpace(cellAt(rec, col)); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return tabload.TypeText
	}

	for _, t := range candidateTypes {
		if admitsAll(t, values) {
			return t
		}
	}
	return tabload.TypeText
}

func admitsAll(t tabload.ColumnType, values []string) bool {
	for _, v := range values {
		if !admits(t, v) {
			return false
		}
	}
	return true
}

func admits(t tabload.ColumnType, v string) bool {
	switch t {
	case tabload.TypeInteger:
		_, err := strconv.ParseInt(v, 10, 64)
		return err == nil
	case tabload.TypeFloat:
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	case tabload.TypeBool:
		_, ok := parseBool(v)
		return ok
	case tabload.TypeDate:
		_, ok := parseDate(v)
		return ok
	default:
		return true
	}
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "true", "t", "yes", "y":
		return true, true
	case "false", "f", "no", "n":
		return false, true
	default:
		return false, false
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// convertCell turns a raw string cell into the typed value the column
// declares. Inference guarantees the parse succeeds; a blank cell is NULL.
// Text cells are kept verbatim, whitespace included.
func convertCell(v string, t tabload.ColumnType) any {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	switch t {
	case tabload.TypeInteger:
		n, _ := strconv.ParseInt(trimmed, 10, 64)
		return n
	case tabload.TypeFloat:
		f, _ := strconv.ParseFloat(trimmed, 64)
		return f
	case tabload.TypeBool:
		b, _ := parseBool(trimmed)
		return b
	case tabload.TypeDate:
		ts, _ := parseDate(trimmed)
		return ts
	default:
		return v
	}
}
