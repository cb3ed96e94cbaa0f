// Package parser turns GFL workflow source text into the typed AST defined
// in the ast package.
//
// The concrete syntax is HCL: blocks are dispatched on their leading keyword,
// values are translated from hclsyntax expressions into the closed value
// grammar (scalar, list, mapping, template, symbolic reference, variable
// reference) without ever being evaluated against a scope. Unknown top-level
// keywords are recorded on the document and reported later as structural
// warnings so a single unrecognized block cannot abort a whole file.
//
// The parser is deliberately ignorant of the schema and capability
// registries; it produces structure and source spans, nothing more.
package parser
