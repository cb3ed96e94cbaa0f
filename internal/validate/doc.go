// Package validate implements the semantic validator: a fixed four-pass
// pipeline over a parsed workflow document.
//
//  1. Structural pass: required fields and value shapes per block kind,
//     plus ${...} template markers against declared search spaces.
//  2. Symbol pass: entity definitions into the symbol table, then
//     resolution of every symbolic reference.
//  3. Contract pass: per-edge I/O type and attribute compatibility between
//     producer outputs and consumer inputs.
//  4. Capability pass: feature support warnings for the target engine.
//
// The order is load-bearing: later passes assume earlier-pass invariants
// (the contract pass assumes contracts are well-shaped). All four passes
// always run; problems accumulate in the Result and validation never aborts
// early. Only a parse-level syntax error prevents validation entirely,
// because then there is no AST to validate.
package validate
