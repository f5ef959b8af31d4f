package gen

import (
	"fmt"
	"strings"
)

// Annotation is one structured documentation annotation, rendered as a
// single line in a generated class docblock. Keeping annotations as values
// until the final render step lets tests assert on structure instead of
// substring-matching generated text, and keeps the rendered form
// byte-stable across runs.
type Annotation struct {
	// Tag is the annotation name without the leading "@".
	Tag string
	// Attributes is the ordered attribute list. An annotation with no
	// attributes and no value renders bare ("@Id").
	Attributes []Attribute
	// Value is a bare trailing value for tags that take one instead of an
	// attribute list ("@var int", "@Label(...)" does not use it).
	Value string
}

// Attribute is a single key=value pair inside an annotation.
type Attribute struct {
	Key   string
	Value string
	// Quote reports whether the value renders in double quotes. Numbers,
	// booleans and enum references render bare.
	Quote bool
}

// String renders the attribute in its annotation form.
func (a Attribute) String() string {
	if a.Quote {
		return fmt.Sprintf("%s=%q", a.Key, a.Value)
	}
	return a.Key + "=" + a.Value
}

// Render returns the single-line form of the annotation.
func (a Annotation) Render() string {
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(a.Tag)
	switch {
	case len(a.Attributes) > 0:
		b.WriteByte('(')
		for i, attr := range a.Attributes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(attr.String())
		}
		b.WriteByte(')')
	case a.Value != "":
		b.WriteByte(' ')
		b.WriteString(a.Value)
	}
	return b.String()
}

// quoted is a shorthand for a quoted attribute.
func quoted(key, value string) Attribute {
	return Attribute{Key: key, Value: value, Quote: true}
}

// bare is a shorthand for an unquoted attribute.
func bare(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}
