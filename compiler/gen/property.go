package gen

import (
	"strconv"

	"github.com/syssam/schemagen/schema"
	"github.com/syssam/schemagen/schema/typemap"
)

// GeneratedValue strategies emitted for primary-key columns.
const (
	strategyIdentity = "GenerationType.IDENTITY"
	strategyUUID     = "GenerationType.UUID"
)

// Property is one synthesized class property: a column joined with its
// derived canonical type, length and annotation block, ready for assembly.
type Property struct {
	// Name is the camelCase property name declared in annotations.
	Name string
	// StructField is the Go struct field identifier.
	StructField string
	// Column is the source column metadata.
	Column schema.Column
	// Label is the human-readable label.
	Label string
	// Canonical is the dialect-neutral type.
	Canonical typemap.Canonical
	// ColumnType is the normalized token recorded in the @Column annotation.
	ColumnType string
	// Length is the derived length or precision; zero means none.
	Length int
	// Annotations is the ordered docblock, one line per entry.
	Annotations []Annotation
	// NonUpdatable mirrors the updatable=false attribute.
	NonUpdatable bool
}

// AutoIncrement reports whether the database assigns the property's value.
func (p Property) AutoIncrement() bool { return p.Column.AutoIncrement() }

// synthesizeProperty turns one column into a property. The raw dialect type
// is first normalized through the column map, then classified canonically;
// both tables are passed in so tests can substitute variants. Annotation
// order is fixed: @Id, @GeneratedValue, @NotNull, @Column, @DefaultColumn,
// @Label, @var.
func synthesizeProperty(col schema.Column, canonical, columns typemap.Table, nonUpdatable map[string]struct{}, prettifyLabels bool) Property {
	p := Property{
		Name:        camel(col.Name),
		StructField: pascal(col.Name),
		Column:      col,
		Label:       label(col.Name, prettifyLabels),
		ColumnType:  typemap.Normalize(col.RawType, columns),
		Length:      typemap.DeriveLength(col.RawType),
	}
	p.Canonical = typemap.Classify(p.ColumnType, canonical)
	_, p.NonUpdatable = nonUpdatable[col.Name]

	if col.PrimaryKey {
		p.Annotations = append(p.Annotations, Annotation{Tag: "Id"})
		strategy := strategyUUID
		if col.AutoIncrement() {
			strategy = strategyIdentity
		}
		p.Annotations = append(p.Annotations, Annotation{
			Tag:        "GeneratedValue",
			Attributes: []Attribute{bare("strategy", strategy)},
		})
	}
	if !col.Nullable {
		p.Annotations = append(p.Annotations, Annotation{Tag: "NotNull"})
	}
	p.Annotations = append(p.Annotations, p.columnAnnotation())
	if col.HasDefault {
		p.Annotations = append(p.Annotations, Annotation{
			Tag:        "DefaultColumn",
			Attributes: []Attribute{quoted("value", col.Default)},
		})
	}
	p.Annotations = append(p.Annotations,
		Annotation{Tag: "Label", Attributes: []Attribute{quoted("content", p.Label)}},
		Annotation{Tag: "var", Value: string(p.Canonical)},
	)
	return p
}

// columnAnnotation builds the @Column line. Attribute order is significant
// and omission carries meaning: a column without updatable=false is
// updatable, and length appears only when one was derived.
func (p Property) columnAnnotation() Annotation {
	attrs := []Attribute{
		quoted("name", p.Column.Name),
		quoted("type", p.ColumnType),
	}
	if p.Length > 0 {
		attrs = append(attrs, bare("length", strconv.Itoa(p.Length)))
	}
	if p.Column.HasDefault {
		attrs = append(attrs, quoted("default_value", p.Column.Default))
	}
	attrs = append(attrs, bare("nullable", strconv.FormatBool(p.Column.Nullable)))
	if p.NonUpdatable {
		attrs = append(attrs, bare("updatable", "false"))
	}
	if p.Column.Extra != "" {
		attrs = append(attrs, quoted("extra", p.Column.Extra))
	}
	return Annotation{Tag: "Column", Attributes: attrs}
}
