// Package capability models which GFL language features a target execution
// engine supports. The feature table is static and append-only; an engine
// capability set is derived from an engine tier by forward-closing feature
// dependencies, so a higher tier is always a superset of a lower one.
//
// Capability mismatches are a deployment concern, not a correctness concern:
// the validator turns them into warnings, never errors.
package capability
