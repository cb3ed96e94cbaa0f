// Package ast defines the typed representation of a parsed GFL workflow
// document.
//
// Why a typed block tree instead of a generic map?
//
// A workflow document is a small, closed vocabulary of block kinds, and the
// validator needs to ask precise questions of each one: does this design
// block have an entity field, what shape is it, where exactly was it written.
// Representing every block as an explicit Block with an ordered field list
// and an hcl.Range per node makes all of those questions cheap, keeps
// diagnostics pointing at real source locations, and lets re-serialization
// reproduce the document deterministically.
//
// All types in this package are immutable after a parse completes. A fresh
// parse produces a fresh tree; nothing in the validator mutates it.
package ast
