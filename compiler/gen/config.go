package gen

import (
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/schemagen/dialect"
)

// Naming strategies for the generated serialization annotation.
const (
	SnakeCase = "SNAKE_CASE"
	CamelCase = "CAMEL_CASE"
)

// Config holds one generation request's settings. The zero value is not
// usable; construct with NewConfig or LoadConfig and apply options.
type Config struct {
	// Package is the import path of the generated package (the namespace of
	// the generated classes).
	Package string `yaml:"package"`
	// Target is the base output directory. Callers own persistence; Target
	// is recorded in generated file names only.
	Target string `yaml:"target"`
	// Dialect selects the metadata adapter and conversion table.
	Dialect string `yaml:"dialect"`
	// ClassName overrides the entity class name derived from the table name.
	ClassName string `yaml:"class_name"`
	// DtoName overrides the DTO class name ("{ClassName}Dto" by default).
	DtoName string `yaml:"dto_name"`
	// PrettifyOutput formats generated source and marks the serialization
	// annotation with prettify=true.
	PrettifyOutput bool `yaml:"prettify_output"`
	// PrettifyLabels rewrites "id" and "ip" label segments to their upper
	// forms.
	PrettifyLabels bool `yaml:"prettify_labels"`
	// NonUpdatable lists column names that receive updatable=false in their
	// @Column annotation. Columns not listed omit the attribute entirely.
	NonUpdatable []string `yaml:"non_updatable"`
	// NamingStrategy is the serialization strategy recorded in the class
	// docblock. Defaults to SNAKE_CASE.
	NamingStrategy string `yaml:"naming_strategy"`
	// Workers bounds the number of class files generated concurrently.
	Workers int `yaml:"workers"`
}

// Option configures a Config.
type Option func(*Config)

// WithPackage sets the generated package import path.
func WithPackage(pkg string) Option {
	return func(c *Config) { c.Package = pkg }
}

// WithDialect sets the source dialect.
func WithDialect(d dialect.Dialect) Option {
	return func(c *Config) { c.Dialect = d.String() }
}

// WithClassName sets an explicit entity class name.
func WithClassName(name string) Option {
	return func(c *Config) { c.ClassName = name }
}

// WithNonUpdatable sets the non-updatable column names.
func WithNonUpdatable(names ...string) Option {
	return func(c *Config) { c.NonUpdatable = names }
}

// WithPrettifyOutput toggles formatted output.
func WithPrettifyOutput(v bool) Option {
	return func(c *Config) { c.PrettifyOutput = v }
}

// WithPrettifyLabels toggles label acronym rewriting.
func WithPrettifyLabels(v bool) Option {
	return func(c *Config) { c.PrettifyLabels = v }
}

// WithWorkers bounds generation concurrency.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// NewConfig returns a Config with defaults applied.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		NamingStrategy: SnakeCase,
		Workers:        runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadConfig reads a YAML config file and applies defaults and options on
// top of it.
func LoadConfig(path string, opts ...Option) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError("Path", path, err.Error())
	}
	c := NewConfig()
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, NewConfigError("Path", path, "invalid YAML: "+err.Error())
	}
	if c.NamingStrategy == "" {
		c.NamingStrategy = SnakeCase
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Validate reports configuration errors a generation run cannot proceed
// without.
func (c *Config) Validate() error {
	if c.Package == "" {
		return NewConfigError("Package", nil, "missing generated package import path")
	}
	if c.Dialect != "" {
		if _, ok := dialect.FromString(c.Dialect); !ok {
			return NewConfigError("Dialect", c.Dialect, "unknown dialect")
		}
	}
	return nil
}

// PackageName returns the generated package's short name.
func (c *Config) PackageName() string {
	if i := strings.LastIndexByte(c.Package, '/'); i >= 0 {
		return c.Package[i+1:]
	}
	return c.Package
}

// nonUpdatable returns the non-updatable column set.
func (c *Config) nonUpdatable() map[string]struct{} {
	set := make(map[string]struct{}, len(c.NonUpdatable))
	for _, name := range c.NonUpdatable {
		set[name] = struct{}{}
	}
	return set
}
