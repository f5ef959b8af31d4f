package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/schemagen/schema"
	"github.com/syssam/schemagen/schema/typemap"
)

func synth(col schema.Column, nonUpdatable map[string]struct{}, prettifyLabels bool) Property {
	return synthesizeProperty(col, typemap.CanonicalTable, typemap.ColumnMap, nonUpdatable, prettifyLabels)
}

// annotation returns the first annotation with the given tag, if any.
func annotation(p Property, tag string) (Annotation, bool) {
	for _, a := range p.Annotations {
		if a.Tag == tag {
			return a, true
		}
	}
	return Annotation{}, false
}

func attr(a Annotation, key string) (Attribute, bool) {
	for _, at := range a.Attributes {
		if at.Key == key {
			return at, true
		}
	}
	return Attribute{}, false
}

// TestAutoIncrementPrimaryKey covers the auto-increment integer key row
// end to end at the property level.
func TestAutoIncrementPrimaryKey(t *testing.T) {
	t.Parallel()

	p := synth(schema.Column{
		Name:       "user_id",
		RawType:    "int(11)",
		PrimaryKey: true,
		Extra:      "auto_increment",
	}, nil, true)

	assert.Equal(t, "userId", p.Name)
	assert.Equal(t, "UserID", p.StructField)
	assert.Equal(t, "User ID", p.Label)
	assert.Equal(t, typemap.Int, p.Canonical)
	assert.Equal(t, "int", p.ColumnType)
	assert.Equal(t, 11, p.Length)

	tags := make([]string, 0, len(p.Annotations))
	for _, a := range p.Annotations {
		tags = append(tags, a.Tag)
	}
	assert.Equal(t, []string{"Id", "GeneratedValue", "NotNull", "Column", "Label", "var"}, tags)

	gv, ok := annotation(p, "GeneratedValue")
	require.True(t, ok)
	assert.Equal(t, "@GeneratedValue(strategy=GenerationType.IDENTITY)", gv.Render())

	col, ok := annotation(p, "Column")
	require.True(t, ok)
	for key, want := range map[string]string{
		"name":     "user_id",
		"type":     "int",
		"length":   "11",
		"nullable": "false",
		"extra":    "auto_increment",
	} {
		a, ok := attr(col, key)
		require.True(t, ok, key)
		assert.Equal(t, want, a.Value, key)
	}
	_, ok = attr(col, "updatable")
	assert.False(t, ok, "updatable is omitted, not set to true")

	v, ok := annotation(p, "var")
	require.True(t, ok)
	assert.Equal(t, "@var int", v.Render())

	lbl, ok := annotation(p, "Label")
	require.True(t, ok)
	assert.Equal(t, `@Label(content="User ID")`, lbl.Render())
}

// TestBooleanColumn covers the tinyint(1) row: the property classifies as
// bool, never int.
func TestBooleanColumn(t *testing.T) {
	t.Parallel()

	p := synth(schema.Column{
		Name:    "is_active",
		RawType: "tinyint(1)",
	}, nil, false)

	assert.Equal(t, typemap.Bool, p.Canonical)
	assert.Equal(t, "bool", p.ColumnType)
	v, ok := annotation(p, "var")
	require.True(t, ok)
	assert.Equal(t, "@var bool", v.Render())

	// Without primary key there is no @Id and no @GeneratedValue.
	_, ok = annotation(p, "Id")
	assert.False(t, ok)
	_, ok = annotation(p, "GeneratedValue")
	assert.False(t, ok)
}

func TestUUIDStrategy(t *testing.T) {
	t.Parallel()

	// A primary key without auto-increment is generated with the UUID
	// strategy.
	p := synth(schema.Column{
		Name:       "order_id",
		RawType:    "varchar(40)",
		PrimaryKey: true,
	}, nil, false)

	gv, ok := annotation(p, "GeneratedValue")
	require.True(t, ok)
	assert.Equal(t, "@GeneratedValue(strategy=GenerationType.UUID)", gv.Render())
}

func TestNonUpdatable(t *testing.T) {
	t.Parallel()

	nonUpdatable := map[string]struct{}{"created_at": {}}

	p := synth(schema.Column{Name: "created_at", RawType: "timestamp", Nullable: true}, nonUpdatable, false)
	col, ok := annotation(p, "Column")
	require.True(t, ok)
	a, ok := attr(col, "updatable")
	require.True(t, ok)
	assert.Equal(t, "false", a.Value)
	assert.True(t, p.NonUpdatable)

	p = synth(schema.Column{Name: "updated_at", RawType: "timestamp", Nullable: true}, nonUpdatable, false)
	col, ok = annotation(p, "Column")
	require.True(t, ok)
	_, ok = attr(col, "updatable")
	assert.False(t, ok)
}

func TestDefaultValue(t *testing.T) {
	t.Parallel()

	p := synth(schema.Column{
		Name:       "status",
		RawType:    "varchar(20)",
		Default:    "pending",
		HasDefault: true,
	}, nil, false)

	dc, ok := annotation(p, "DefaultColumn")
	require.True(t, ok)
	assert.Equal(t, `@DefaultColumn(value="pending")`, dc.Render())

	col, ok := annotation(p, "Column")
	require.True(t, ok)
	a, ok := attr(col, "default_value")
	require.True(t, ok)
	assert.Equal(t, "pending", a.Value)
}

func TestTemporalLengths(t *testing.T) {
	t.Parallel()

	p := synth(schema.Column{Name: "created_at", RawType: "datetime(3)", Nullable: true}, nil, false)
	assert.Equal(t, 23, p.Length)
	p = synth(schema.Column{Name: "created_at", RawType: "datetime", Nullable: true}, nil, false)
	assert.Equal(t, 26, p.Length)
	p = synth(schema.Column{Name: "birth_date", RawType: "date", Nullable: true}, nil, false)
	assert.Equal(t, 10, p.Length)
}
