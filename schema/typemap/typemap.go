// Package typemap implements cross-dialect column type mapping: classifying
// raw vendor type strings into a small canonical type vocabulary, converting
// type tokens between dialects, and deriving column lengths.
//
// All lookups share one discipline: a case-insensitive prefix walk over an
// ordered table, first match wins. The tables are ordered lists rather than
// maps because the patterns overlap ("tinyint(1)" is a prefix-sibling of
// "tinyint", "varchar(255)" of "varchar"); a more specific pattern must be
// declared, and therefore tested, before the general one. That ordering is
// an invariant of table construction, not of the lookup function.
package typemap

import (
	"strings"

	"github.com/syssam/schemagen"
	"github.com/syssam/schemagen/dialect"
)

// Canonical is the dialect-neutral type vocabulary used as the generator's
// internal currency.
type Canonical string

const (
	Int      Canonical = "int"
	Float    Canonical = "float"
	Bool     Canonical = "bool"
	String   Canonical = "string"
	Array    Canonical = "array"
	Resource Canonical = "resource"
)

// Entry is one (pattern, target) pair of a mapping table.
type Entry struct {
	// Pattern is matched as a case-insensitive prefix of the raw type.
	Pattern string
	// Target is the mapped type token.
	Target string
}

// Table is an ordered mapping table. Order is significant: entries whose
// pattern is a textual extension of another entry's pattern must precede it.
type Table []Entry

// Lookup walks the table in declared order and returns the target of the
// first entry whose pattern is a case-insensitive prefix of raw.
func (t Table) Lookup(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, e := range t {
		if strings.HasPrefix(s, e.Pattern) {
			return e.Target, true
		}
	}
	return "", false
}

// Classify maps a raw dialect type string to its canonical type using the
// given table. It is total: unrecognized types classify as String.
func Classify(raw string, t Table) Canonical {
	if target, ok := t.Lookup(raw); ok {
		return Canonical(target)
	}
	return String
}

// Normalize maps a raw dialect type string to the normalized column token
// used in generated @Column annotations. Unrecognized types normalize to
// "text", the most general column type.
func Normalize(raw string, t Table) string {
	if target, ok := t.Lookup(raw); ok {
		return target
	}
	return "text"
}

// Convert renders a source type token in the target dialect's syntax.
// Unknown tokens fall back to the dialect's most general text-like type;
// an unsupported dialect is reported to the caller, which degrades to an
// empty result.
func Convert(raw string, target dialect.Dialect) (string, error) {
	t, ok := Dialects[target.String()]
	if !ok {
		return "", schemagen.NewUnsupportedDialectError(target.String())
	}
	if s, ok := t.Lookup(raw); ok {
		return s, nil
	}
	return "text", nil
}

// DeriveLength computes the length or precision of a column from its raw
// type string. Temporal types do not encode length the way sized types do,
// so they are special-cased ahead of the generic digit extraction:
//
//   - datetime/timestamp with precision (3) renders as 23 characters,
//     any other or absent precision as 26 (microsecond precision);
//   - date renders as 10 characters, time as 8;
//   - otherwise the digits of the raw type are the declared size
//     ("varchar(255)" is 255), and a type with no digits has no length.
func DeriveLength(raw string) int {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "datetime"), strings.HasPrefix(s, "timestamp"):
		if n, ok := precision(s); ok && n == 3 {
			return 23
		}
		return 26
	case strings.HasPrefix(s, "date"):
		return 10
	case strings.HasPrefix(s, "time"):
		return 8
	}
	return digits(s)
}

// precision extracts an explicit parenthetical precision, e.g. 3 from
// "datetime(3)".
func precision(s string) (int, bool) {
	open := strings.IndexByte(s, '(')
	close := strings.IndexByte(s, ')')
	if open < 0 || close <= open+1 {
		return 0, false
	}
	n := 0
	for _, r := range s[open+1 : close] {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// digits strips all non-digit characters and parses the remainder.
func digits(s string) int {
	n, any := 0, false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			any = true
		}
	}
	if !any {
		return 0
	}
	return n
}
