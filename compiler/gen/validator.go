package gen

import (
	"strings"

	"github.com/syssam/schemagen/schema"
	"github.com/syssam/schemagen/schema/typemap"
)

// Apply keys routing validation rules to a validator class.
const (
	ApplyInsert = "insert"
	ApplyUpdate = "update"
)

// routing attributes are consumed by rule filtering and never rendered.
var routingAttrs = map[string]struct{}{
	"type":        {},
	"applyInsert": {},
	"applyUpdate": {},
}

// CompileValidators groups externally supplied per-field rule definitions
// into one validator class spec for the requested apply key. Property data
// types resolve through the same classification and normalization tables
// used for entities, so entity, DTO and validator generation agree on
// every column's type.
func CompileValidators(defs []schema.FieldValidation, applyKey string, cfg *Config, name string, canonical, columns typemap.Table) (*ClassSpec, error) {
	if applyKey != ApplyInsert && applyKey != ApplyUpdate {
		return nil, NewConfigError("ApplyKey", applyKey, "must be insert or update")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	spec := &ClassSpec{
		Kind:           KindValidator,
		Package:        cfg.Package,
		Name:           pascal(name) + pascal(applyKey) + "Validator",
		Table:          name,
		NamingStrategy: cfg.NamingStrategy,
		Prettify:       cfg.PrettifyOutput,
		ApplyKey:       applyKey,
	}
	for _, def := range defs {
		var (
			anns       []Annotation
			signatures []string
			seen       = map[string]struct{}{}
		)
		for _, rule := range def.Rules {
			if !appliesTo(rule, applyKey) {
				continue
			}
			a := ruleAnnotation(rule)
			anns = append(anns, a)
			if sig := a.Render(); sig != "" {
				if _, ok := seen[sig]; !ok {
					seen[sig] = struct{}{}
					signatures = append(signatures, strings.TrimPrefix(sig, "@"))
				}
			}
		}
		if len(anns) == 0 {
			continue
		}
		p := synthesizeValidatedProperty(def, anns, cfg, canonical, columns)
		spec.Properties = append(spec.Properties, p)
		spec.RuleDoc = append(spec.RuleDoc, p.Name+": "+strings.Join(signatures, ", "))
	}
	return spec, nil
}

// appliesTo reports whether a rule routes to the given apply key.
func appliesTo(r schema.Rule, applyKey string) bool {
	switch applyKey {
	case ApplyInsert:
		return r.ApplyInsert
	case ApplyUpdate:
		return r.ApplyUpdate
	}
	return false
}

// ruleAnnotation renders one rule as an annotation, excluding the routing
// attributes that selected it.
func ruleAnnotation(r schema.Rule) Annotation {
	a := Annotation{Tag: r.Type}
	for _, attr := range r.Attributes {
		if _, ok := routingAttrs[attr.Key]; ok {
			continue
		}
		a.Attributes = append(a.Attributes, Attribute{
			Key:   attr.Key,
			Value: attr.Value,
			Quote: attr.Quote,
		})
	}
	return a
}

// synthesizeValidatedProperty builds the property for one validated field:
// its rule annotations followed by the @var line resolved through the
// given mapping tables.
func synthesizeValidatedProperty(def schema.FieldValidation, anns []Annotation, cfg *Config, canonical, columns typemap.Table) Property {
	p := Property{
		Name:        camel(def.Name),
		StructField: pascal(def.Name),
		Column:      schema.Column{Name: def.Name, RawType: def.Type},
		Label:       label(def.Name, cfg.PrettifyLabels),
		ColumnType:  typemap.Normalize(def.Type, columns),
		Length:      typemap.DeriveLength(def.Type),
	}
	p.Canonical = typemap.Classify(p.ColumnType, canonical)
	p.Annotations = append(anns, Annotation{Tag: "var", Value: string(p.Canonical)})
	return p
}
