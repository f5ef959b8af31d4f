package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

// titleWord title-cases one word. A cases.Caser is stateful and not safe
// for concurrent use, so each call takes a fresh one; generation runs
// properties through here from parallel workers.
func titleWord(w string) string {
	return cases.Title(language.Und).String(w)
}

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"API", "ASCII", "CSS", "DNS", "GUID", "HTML", "HTTP", "HTTPS", "ID",
		"IP", "JSON", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI", "UID",
		"URI", "URL", "UTF8", "UUID", "XML",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// pascal converts a column or table name to PascalCase for Go identifiers.
// Known acronyms keep their upper form ("user_id" becomes "UserID").
func pascal(s string) string {
	words := fields(s)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
			continue
		}
		words[i] = rules.Capitalize(w)
	}
	return strings.Join(words, "")
}

// camel converts a column name to the camelCase property name used in
// generated annotations and accessor maps. Unlike pascal, acronyms are not
// applied: "user_id" becomes "userId", matching the annotation surface.
func camel(s string) string {
	words := fields(s)
	for i, w := range words {
		if i == 0 {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = titleWord(strings.ToLower(w))
	}
	return strings.Join(words, "")
}

// snake converts an identifier back to snake_case for storage keys.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(rune(s[i-1])) || (i+1 < len(s) && unicode.IsLower(rune(s[i+1])))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// label builds the human-readable label from a column name: segments split
// on underscores and title-cased. With prettify set, a segment spelling an
// address-like acronym is rewritten to its upper form ("id" becomes "ID",
// "ip" becomes "IP").
func label(s string, prettify bool) string {
	words := fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if prettify && (lower == "id" || lower == "ip") {
			words[i] = strings.ToUpper(lower)
			continue
		}
		words[i] = titleWord(lower)
	}
	return strings.Join(words, " ")
}

// fields splits an identifier on the usual separators.
func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
}
