// Package schema defines the normalized input model consumed by the
// generator: column metadata as produced by the dialect adapters under
// compiler/inspect, and externally supplied validation rule definitions.
//
// Values in this package are plain data. They are built once by an adapter
// (or by hand in tests) and never mutated afterwards.
package schema

// Column is the normalized description of one database column. It is the
// common currency between the metadata adapters and the generator.
type Column struct {
	// Name is the column name as declared in the database.
	Name string
	// RawType is the vendor type string, including any parenthetical
	// size or precision (e.g. "varchar(255)", "tinyint(1)", "datetime(3)").
	RawType string
	// PrimaryKey reports whether the column is part of the primary key.
	PrimaryKey bool
	// Nullable reports whether the column accepts NULL.
	Nullable bool
	// Default is the column's default value expression. HasDefault
	// distinguishes an absent default from an empty one.
	Default    string
	HasDefault bool
	// Extra carries vendor flags such as "auto_increment".
	Extra string
	// Comment is the column comment, if the dialect exposes one.
	Comment string
	// Position is the 1-based ordinal position within the table.
	Position int
}

// AutoIncrement reports whether the column value is assigned by the
// database on insert.
func (c Column) AutoIncrement() bool {
	return c.Extra == "auto_increment"
}

// Table is a named, ordered set of columns.
type Table struct {
	Name    string
	Columns []Column
}

// PrimaryKey returns the first primary-key column and whether one exists.
func (t Table) PrimaryKey() (Column, bool) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}

// Rule is one validation rule attached to a field. Attributes are kept as
// an ordered list so rendered annotations are byte-stable across runs.
type Rule struct {
	// Type is the rule name (e.g. "Required", "Size", "Pattern").
	Type string
	// Attributes holds the rule's declared attributes in declaration order,
	// excluding nothing; routing attributes are filtered at render time.
	Attributes []RuleAttribute
	// ApplyInsert and ApplyUpdate route the rule to the insert and/or
	// update validator class.
	ApplyInsert bool
	ApplyUpdate bool
}

// RuleAttribute is a single key/value attribute of a validation rule.
type RuleAttribute struct {
	Key   string
	Value string
	// Quote reports whether the value renders as a quoted string rather
	// than a bare literal (number, true/false, enum reference).
	Quote bool
}

// FieldValidation is the set of rules declared for one field, together with
// the field's dialect type used to resolve its data type through the same
// mapping pipeline as entities.
type FieldValidation struct {
	// Name is the field (column) name.
	Name string
	// Type is the declared dialect column type (e.g. "varchar(100)").
	Type string
	// Rules is the ordered rule list.
	Rules []Rule
}
