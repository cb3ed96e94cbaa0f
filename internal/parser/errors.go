package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// SyntaxError is the fatal failure mode of a parse. Unlike every
// validator-level problem, a syntax error means no usable AST exists, so it
// is returned as an error rather than collected into a ValidationResult.
type SyntaxError struct {
	Location hcl.Range
	Expected string
	Found    string
	Diags    hcl.Diagnostics
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s; %s", e.Location, e.Found, e.Expected)
}

// newSyntaxError builds a SyntaxError from parse diagnostics. The first
// error-severity diagnostic supplies the location and wording.
func newSyntaxError(diags hcl.Diagnostics) *SyntaxError {
	e := &SyntaxError{Diags: diags}
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if d.Subject != nil {
			e.Location = *d.Subject
		}
		e.Found = d.Summary
		e.Expected = d.Detail
		break
	}
	return e
}

func errDiag(subject hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  &subject,
	}
}
