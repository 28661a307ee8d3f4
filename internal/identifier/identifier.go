// Package identifier rewrites arbitrary column and table names into strings
// that are safe to use as SQL identifiers on every supported dialect.
//
// The transformation is deterministic and total: it never fails, whatever the
// input. Unmappable characters are dropped and an empty result falls back to
// a placeholder.
package identifier

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and strips the combining marks,
// leaving the closest ASCII base letter (é -> e, ñ -> n).
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	underscore = regexp.MustCompile(`_{2,}`)
)

// reserved lists SQL keywords that collide with identifiers on at least one
// supported dialect. A cleaned name matching one gets an underscore suffix.
var reserved = map[string]bool{
	"all": true, "and": true, "as": true, "asc": true, "between": true,
	"by": true, "case": true, "check": true, "column": true, "create": true,
	"default": true, "delete": true, "desc": true, "distinct": true,
	"drop": true, "else": true, "end": true, "exists": true, "from": true,
	"group": true, "having": true, "in": true, "index": true, "insert": true,
	"into": true, "is": true, "join": true, "key": true, "like": true,
	"limit": true, "not": true, "null": true, "on": true, "or": true,
	"order": true, "primary": true, "select": true, "set": true, "table": true,
	"then": true, "to": true, "union": true, "update": true, "user": true,
	"values": true, "when": true, "where": true,
}

// Clean rewrites name into a safe SQL identifier: ASCII-transliterated,
// trimmed, lower-cased, '#' spelled out as "no", non-alphanumeric runs
// collapsed to single underscores, leading digits prefixed and reserved
// words suffixed. The empty result falls back to "col".
func Clean(name string) string {
	s, _, err := transform.String(asciiFold, name)
	if err != nil {
		// NFD decomposition cannot fail on valid UTF-8; invalid bytes are
		// handled by dropping them below.
		s = name
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "#", "no")
	s = nonAlnum.ReplaceAllString(s, "_")
	s = underscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "col"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "a" + s
	}
	if reserved[s] {
		s += "_"
	}
	return s
}

// CleanTable rewrites a table name with the same rules as Clean. Kept as a
// separate entry point so table naming can diverge from column naming
// without touching call sites.
func CleanTable(name string) string {
	return Clean(name)
}
