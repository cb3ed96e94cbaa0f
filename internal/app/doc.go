// Package app wires the front end together: it discovers workflow files,
// parses them, resolves their schema imports, runs the semantic validator
// and renders the result. It owns the application's logger and the registry
// handles so that every run (and every test) gets isolated state.
package app
