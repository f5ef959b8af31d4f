package gen

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/schemagen"
	"github.com/syssam/schemagen/dialect"
	"github.com/syssam/schemagen/schema"
	"github.com/syssam/schemagen/schema/typemap"
)

// File is one generated source unit. Persistence is owned by the caller;
// Name is relative to the configured target directory.
type File struct {
	Name   string
	Source []byte
}

// Result aggregates one generation run: the generated files and the count
// of bytes that would be written.
type Result struct {
	Files []File
	Bytes int64
}

// Generator turns inspected tables into generated class source. It is
// stateless between runs aside from its configuration; the mapping tables
// it reads are immutable, so one Generator may serve concurrent runs.
type Generator struct {
	cfg       *Config
	canonical typemap.Table
	columns   typemap.Table
	log       *logrus.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the orchestration logger. The mapping core itself never
// logs.
func WithLogger(l *logrus.Logger) GeneratorOption {
	return func(g *Generator) { g.log = l }
}

// WithTables substitutes the classification and column-normalization
// tables, primarily for tests running table variants in parallel.
func WithTables(canonical, columns typemap.Table) GeneratorOption {
	return func(g *Generator) {
		g.canonical = canonical
		g.columns = columns
	}
}

// NewGenerator returns a Generator for the given config.
func NewGenerator(cfg *Config, opts ...GeneratorOption) (*Generator, error) {
	if cfg == nil {
		return nil, NewConfigError("Config", nil, "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:       cfg,
		canonical: typemap.CanonicalTable,
		columns:   typemap.ColumnMap,
		log:       logrus.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// EntitySpec builds the entity class spec for one table.
func (g *Generator) EntitySpec(t schema.Table) *ClassSpec {
	name := g.cfg.ClassName
	if name == "" {
		name = pascal(t.Name)
	}
	return &ClassSpec{
		Kind:           KindEntity,
		Package:        g.cfg.Package,
		Name:           name,
		Table:          t.Name,
		Properties:     g.properties(t),
		NamingStrategy: g.cfg.NamingStrategy,
		Prettify:       g.cfg.PrettifyOutput,
	}
}

// DtoSpec builds the DTO class spec for one table. The DTO shares the
// entity's property pipeline and carries the entity name for its
// copy-from-entity factory.
func (g *Generator) DtoSpec(t schema.Table) *ClassSpec {
	entity := g.EntitySpec(t)
	name := g.cfg.DtoName
	if name == "" {
		name = entity.Name + "Dto"
	}
	return &ClassSpec{
		Kind:           KindDto,
		Package:        g.cfg.Package,
		Name:           name,
		Table:          t.Name,
		Entity:         entity.Name,
		Properties:     entity.Properties,
		NamingStrategy: g.cfg.NamingStrategy,
		Prettify:       g.cfg.PrettifyOutput,
	}
}

// properties synthesizes the property list for a table.
func (g *Generator) properties(t schema.Table) []Property {
	nonUpdatable := g.cfg.nonUpdatable()
	props := make([]Property, 0, len(t.Columns))
	for _, col := range t.Columns {
		props = append(props, synthesizeProperty(col, g.canonical, g.columns, nonUpdatable, g.cfg.PrettifyLabels))
	}
	return props
}

// Generate renders entity and DTO classes for every table, one class file
// per worker. Output order is stable regardless of scheduling: files are
// sorted by name, so repeated runs on an unchanged schema are
// byte-identical.
func (g *Generator) Generate(ctx context.Context, tables []schema.Table) (*Result, error) {
	specs := make([]*ClassSpec, 0, len(tables)*2)
	for _, t := range tables {
		for _, c := range t.Columns {
			if c.Name == "" || c.RawType == "" {
				return nil, NewMetadataError(t.Name, c.Name, "column missing name or raw type", nil)
			}
		}
		specs = append(specs, g.EntitySpec(t), g.DtoSpec(t))
	}
	return g.render(ctx, specs)
}

// GenerateValidators renders one validator class per apply key from the
// supplied field definitions.
func (g *Generator) GenerateValidators(ctx context.Context, name string, defs []schema.FieldValidation, applyKeys ...string) (*Result, error) {
	specs := make([]*ClassSpec, 0, len(applyKeys))
	for _, key := range applyKeys {
		spec, err := CompileValidators(defs, key, g.cfg, name, g.canonical, g.columns)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return g.render(ctx, specs)
}

// render assembles the given specs in parallel and aggregates the result.
func (g *Generator) render(ctx context.Context, specs []*ClassSpec) (*Result, error) {
	var (
		mu     sync.Mutex
		result Result
	)
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.cfg.Workers)
	for _, spec := range specs {
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			src, err := g.assemble(spec)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Files = append(result.Files, File{Name: spec.FileName(), Source: src})
			result.Bytes += int64(len(src))
			mu.Unlock()
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Name < result.Files[j].Name })
	g.log.WithFields(logrus.Fields{
		"files": len(result.Files),
		"bytes": result.Bytes,
	}).Debug("generation complete")
	return &result, nil
}

// ConvertTable renders every column type of a table in the target
// dialect's syntax, for migration and compatibility listings. An
// unsupported target degrades to an empty result rather than failing the
// run; unknown tokens fall back inside the conversion table itself.
func (g *Generator) ConvertTable(t schema.Table, target dialect.Dialect) ([]ColumnType, error) {
	out := make([]ColumnType, 0, len(t.Columns))
	for _, c := range t.Columns {
		converted, err := typemap.Convert(c.RawType, target)
		if err != nil {
			if schemagen.IsUnsupportedDialect(err) {
				g.log.WithError(err).Warn("skipping conversion for unsupported dialect")
				return nil, nil
			}
			return nil, err
		}
		out = append(out, ColumnType{Name: c.Name, Type: converted})
	}
	return out, nil
}

// ColumnType is one column's rendered type in a target dialect.
type ColumnType struct {
	Name string
	Type string
}

// assemble renders one spec, formatting the output when prettify is on.
func (g *Generator) assemble(spec *ClassSpec) ([]byte, error) {
	src, err := Assemble(spec)
	if err != nil {
		return nil, err
	}
	if !g.cfg.PrettifyOutput {
		return src, nil
	}
	path := filepath.Join(g.cfg.Target, spec.FileName())
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		return nil, NewGenerationError(spec.Name, spec.Table, "format", err)
	}
	return formatted, nil
}
