package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zclconf/go-cty/cty"
)

// AttributeSpec is one attribute constraint of a schema definition. When
// Value is non-nil the attribute is pinned: a provided value must equal it
// exactly.
type AttributeSpec struct {
	Type     string
	Required bool
	Value    *cty.Value
}

// Definition is a user-defined named type narrowing a base type.
type Definition struct {
	Name        string
	BaseType    BaseType
	Description string
	Attributes  map[string]AttributeSpec
}

// AttributeError describes one attribute constraint violation. Violations
// are collected, never short-circuited, so a single validation pass reports
// every problem at once.
type AttributeError struct {
	Attribute string
	Reason    string
}

func (e AttributeError) Error() string {
	return fmt.Sprintf("attribute %q: %s", e.Attribute, e.Reason)
}

// Registry maps type names to their definitions. Safe for concurrent use:
// readers take the read lock, schema imports take the write lock.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition. Registering a name twice, or a name that
// shadows a base type, is an error: schema documents are user input, so this
// is reported rather than panicking.
func (r *Registry) Register(def *Definition) error {
	if def.Name == "" {
		return fmt.Errorf("schema definition has no name")
	}
	if IsBaseType(def.Name) {
		return fmt.Errorf("schema %q shadows a base type", def.Name)
	}
	if !IsBaseType(string(def.BaseType)) {
		return fmt.Errorf("schema %q narrows unknown base type %q", def.Name, def.BaseType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("schema %q already registered", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Resolve looks a custom type up by name. Base types resolve to false here;
// use IsKnownType for the combined check.
func (r *Registry) Resolve(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for n := range r.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsKnownType reports whether name is a base type or a registered schema.
func (r *Registry) IsKnownType(name string) bool {
	if IsBaseType(name) {
		return true
	}
	_, ok := r.Resolve(name)
	return ok
}

// BaseTypeOf reduces a type name to its underlying base type.
func (r *Registry) BaseTypeOf(name string) (BaseType, bool) {
	if IsBaseType(name) {
		return BaseType(name), true
	}
	if def, ok := r.Resolve(name); ok {
		return def.BaseType, true
	}
	return "", false
}

// IsCompatible reports whether a producer of producerType may feed a
// consumer expecting consumerType. Both names may be base types or custom
// schemas; compatibility is decided purely on the underlying base types.
// Unknown names are never compatible.
func (r *Registry) IsCompatible(producerType, consumerType string) bool {
	p, ok := r.BaseTypeOf(producerType)
	if !ok {
		return false
	}
	c, ok := r.BaseTypeOf(consumerType)
	if !ok {
		return false
	}
	return baseCompatible(p, c)
}

// ValidateAttributes checks a provided attribute mapping against the named
// type's constraints and returns one AttributeError per violation. A base
// type or unknown type has no constraints and yields nil.
func (r *Registry) ValidateAttributes(typeName string, provided map[string]cty.Value) []AttributeError {
	def, ok := r.Resolve(typeName)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(def.Attributes))
	for n := range def.Attributes {
		names = append(names, n)
	}
	sort.Strings(names)

	var errs []AttributeError
	for _, name := range names {
		spec := def.Attributes[name]
		val, present := provided[name]

		if !present {
			if spec.Required {
				errs = append(errs, AttributeError{
					Attribute: name,
					Reason:    fmt.Sprintf("required by schema %q but not provided", def.Name),
				})
			}
			continue
		}

		if !attributeTypeMatches(spec.Type, val) {
			errs = append(errs, AttributeError{
				Attribute: name,
				Reason:    fmt.Sprintf("must be of type %s, got %s", spec.Type, val.Type().FriendlyName()),
			})
			continue
		}

		if spec.Value != nil && !val.RawEquals(*spec.Value) {
			errs = append(errs, AttributeError{
				Attribute: name,
				Reason:    fmt.Sprintf("pinned to %s by schema %q", formatCty(*spec.Value), def.Name),
			})
		}
	}
	return errs
}

// attributeTypeMatches checks a scalar value against a declared attribute
// type keyword.
func attributeTypeMatches(typeName string, val cty.Value) bool {
	if val.IsNull() {
		return false
	}
	switch typeName {
	case "string":
		return val.Type() == cty.String
	case "number":
		return val.Type() == cty.Number
	case "bool", "boolean":
		return val.Type() == cty.Bool
	case "", "any":
		return true
	}
	return false
}

func formatCty(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case v.Type() == cty.String:
		return fmt.Sprintf("%q", v.AsString())
	case v.Type() == cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('g', -1)
	default:
		return v.GoString()
	}
}
