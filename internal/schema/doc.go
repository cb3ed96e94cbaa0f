// Package schema holds the data-type registry used by contract validation:
// the fixed base-type compatibility graph plus user-defined named types that
// narrow a base type with attribute constraints.
//
// A Registry is an explicit handle constructed per process (or per test),
// never package-level mutable state, so concurrent validations over
// different documents cannot interfere. Reads are lock-protected against
// writers because an `import_schemas` resolution may register new types
// while other validations are in flight.
package schema
