package gen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/schemagen/schema"
	"github.com/syssam/schemagen/schema/typemap"
)

func testConfig(opts ...Option) *Config {
	base := []Option{
		WithPackage("example.com/app/model"),
		WithPrettifyLabels(true),
	}
	return NewConfig(append(base, opts...)...)
}

func userTable() schema.Table {
	return schema.Table{
		Name: "user",
		Columns: []schema.Column{
			{Name: "user_id", RawType: "int(11)", PrimaryKey: true, Extra: "auto_increment"},
			{Name: "name", RawType: "varchar(100)"},
			{Name: "is_active", RawType: "tinyint(1)"},
			{Name: "created_at", RawType: "timestamp", Nullable: true},
		},
	}
}

func TestAssembleEntity(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(testConfig(WithNonUpdatable("created_at")))
	require.NoError(t, err)

	src, err := Assemble(g.EntitySpec(userTable()))
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "Code generated by schemagen. DO NOT EDIT.")
	assert.Contains(t, out, "package model")
	assert.Contains(t, out, `User is the generated entity class for table "user".`)
	assert.Contains(t, out, "@Entity")
	assert.Contains(t, out, `@Table(name="user")`)
	assert.Contains(t, out, "@JSON(propertyNamingStrategy=SNAKE_CASE, prettify=false)")
	assert.Contains(t, out, "schemagen.Entity")
	assert.Contains(t, out, "// @Id")
	assert.Contains(t, out, "// @GeneratedValue(strategy=GenerationType.IDENTITY)")
	assert.Contains(t, out, "// @NotNull")
	assert.Contains(t, out, `// @Column(name="user_id", type="int", length=11, nullable=false, extra="auto_increment")`)
	assert.Contains(t, out, `// @Label(content="User ID")`)
	assert.Contains(t, out, "// @var int")
	assert.Contains(t, out, "// @var bool")
	assert.Contains(t, out, `// @Column(name="created_at", type="timestamp", length=26, nullable=true, updatable=false)`)
	assert.Contains(t, out, "func (u *User) TableName() string")
	assert.Contains(t, out, "func (u *User) GetUserID() int64")
	assert.Contains(t, out, "func (u *User) SetIsActive(v bool)")
	assert.Contains(t, out, "func (u *User) Accessors() schemagen.AccessorMap")
	assert.Contains(t, out, `"userId"`)

	// Nullable scalar columns map to pointers.
	assert.Contains(t, out, "CreatedAt *string")
}

func TestAssembleDto(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(testConfig())
	require.NoError(t, err)

	src, err := Assemble(g.DtoSpec(userTable()))
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, `UserDto is the generated data-transfer object for table "user".`)
	assert.Contains(t, out, "@Dto")
	assert.Contains(t, out, "schemagen.Plain")
	assert.NotContains(t, out, "TableName", "DTOs carry no persistence metadata")

	// The copy factory is a 1:1 getter to setter field copy.
	assert.Contains(t, out, "func NewUserDtoFromUser(src *User) *UserDto")
	for _, line := range []string{
		"d.SetUserID(src.GetUserID())",
		"d.SetName(src.GetName())",
		"d.SetIsActive(src.GetIsActive())",
		"d.SetCreatedAt(src.GetCreatedAt())",
	} {
		assert.Contains(t, out, line)
	}
}

// TestRoundTripStability generates the same table twice with identical
// configuration and requires byte-identical output.
func TestRoundTripStability(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(testConfig(WithNonUpdatable("created_at")))
	require.NoError(t, err)

	first, err := g.Generate(context.Background(), []schema.Table{userTable()})
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), []schema.Table{userTable()})
	require.NoError(t, err)

	require.Len(t, second.Files, len(first.Files))
	assert.Equal(t, first.Bytes, second.Bytes)
	for i := range first.Files {
		assert.Equal(t, first.Files[i].Name, second.Files[i].Name)
		assert.Equal(t, string(first.Files[i].Source), string(second.Files[i].Source))
	}
}

// TestVarConsistencyAcrossFlavors requires entity, DTO and validator
// generation to agree on a boolean column's @var declaration.
func TestVarConsistencyAcrossFlavors(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	entity, err := Assemble(g.EntitySpec(userTable()))
	require.NoError(t, err)
	dto, err := Assemble(g.DtoSpec(userTable()))
	require.NoError(t, err)

	validator, err := CompileValidators([]schema.FieldValidation{
		{
			Name: "is_active",
			Type: "tinyint(1)",
			Rules: []schema.Rule{
				{Type: "Required", ApplyInsert: true},
			},
		},
	}, ApplyInsert, cfg, "user", typemap.CanonicalTable, typemap.ColumnMap)
	require.NoError(t, err)
	validatorSrc, err := Assemble(validator)
	require.NoError(t, err)

	for _, src := range [][]byte{entity, dto, validatorSrc} {
		assert.Contains(t, string(src), "// @var bool")
		assert.NotContains(t, string(src), "// @var int\n\tIsActive")
	}
}

func TestReceiver(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "u", receiver("User"))
	assert.Equal(t, "o", receiver("OrderItemDto"))
	assert.Equal(t, "x", receiver(""))
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user.go", (&ClassSpec{Kind: KindEntity, Table: "user"}).FileName())
	assert.Equal(t, "user_dto.go", (&ClassSpec{Kind: KindDto, Table: "user"}).FileName())
	assert.Equal(t, "user_insert_validator.go",
		(&ClassSpec{Kind: KindValidator, Table: "user", ApplyKey: "insert"}).FileName())
}

func TestAssembleMissingPackage(t *testing.T) {
	t.Parallel()

	_, err := Assemble(&ClassSpec{Name: "User", Table: "user"})
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))
	assert.True(t, strings.Contains(err.Error(), "missing generated package"))
}
