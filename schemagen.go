// Package schemagen provides the runtime support types referenced by
// generated entity, DTO and validator classes.
//
// The code generator itself lives under compiler/gen; this package contains
// only what generated source needs at runtime: the base types generated
// classes embed, and the explicit accessor registry that replaces
// reflection-based property dispatch.
package schemagen

import (
	"github.com/google/uuid"
)

// Entity is the base type embedded by generated entity and validator classes.
// It carries no column data; per-class metadata (table name, accessors) is
// emitted as methods on the generated type.
type Entity struct{}

// Plain is the base type embedded by generated DTO classes. DTOs are plain
// value carriers with no persistence metadata.
type Plain struct{}

// Accessor is a getter/setter pair for a single property. Generated classes
// build one Accessor per column instead of resolving property names through
// reflection at runtime.
type Accessor struct {
	// Get returns the current property value.
	Get func() any
	// Set assigns the property value. The value must have the property's
	// declared Go type; generated setters perform the type assertion.
	Set func(any)
}

// AccessorMap maps a property name (camelCase, as declared in the generated
// class annotations) to its accessor pair. It is built once per instance by
// the generated Accessors method.
type AccessorMap map[string]Accessor

// Get returns the value of the named property and whether it exists.
func (m AccessorMap) Get(name string) (any, bool) {
	a, ok := m[name]
	if !ok || a.Get == nil {
		return nil, false
	}
	return a.Get(), true
}

// Set assigns the named property. It reports whether the property exists
// and has a setter.
func (m AccessorMap) Set(name string, value any) bool {
	a, ok := m[name]
	if !ok || a.Set == nil {
		return false
	}
	a.Set(value)
	return true
}

// Names returns the property names registered in the map.
func (m AccessorMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// NewKey returns a new random key for primary keys generated with the UUID
// strategy. Generated Insert paths call this when the class declares
// @GeneratedValue(strategy=GenerationType.UUID).
func NewKey() string {
	return uuid.NewString()
}
