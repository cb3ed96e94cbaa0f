package validate

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/geneforge/gfl/internal/capability"
)

// Severity classifies an Issue.
type Severity int

const (
	SevError Severity = iota
	SevWarning
	SevInfo
)

// Machine-readable issue codes.
const (
	CodeStructural        = "SEMANTIC_STRUCTURAL"
	CodeUnknownBlock      = "SEMANTIC_UNKNOWN_BLOCK"
	CodeTemplate          = "SEMANTIC_TEMPLATE_UNDECLARED"
	CodeUnresolvedRef     = "SEMANTIC_REF_UNRESOLVED"
	CodeDuplicateEntity   = "SEMANTIC_REF_DUPLICATE"
	CodeSchemaNotFound    = "SEMANTIC_SCHEMA_NOT_FOUND"
	CodeContractMismatch  = "SEMANTIC_CONTRACT_INCOMPATIBLE"
	CodeContractAttribute = "SEMANTIC_CONTRACT_ATTRIBUTE"
	CodeSchemaImport      = "SEMANTIC_SCHEMA_IMPORT_FAILED"
	CodeCapability        = "CAPABILITY_UNSUPPORTED"
	CodeCapabilityDep     = "CAPABILITY_DEPENDENCY_MISSING"
	CodeExperimental      = "CAPABILITY_EXPERIMENTAL"
)

// Issue is one reported problem or notice. Subject is nil only for
// document-level issues with no single source location.
type Issue struct {
	Severity     Severity
	Code         string
	Message      string
	Subject      *hcl.Range
	Feature      capability.FeatureID
	SuggestedFix string
}

// Result collects every issue found by one validation call, partitioned by
// severity and ordered by discovery. A result with a non-empty error
// sequence is never considered valid.
type Result struct {
	Errors   []Issue
	Warnings []Issue
	Info     []Issue
}

// Valid reports whether the document may be handed to an execution engine.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) add(issue Issue) {
	switch issue.Severity {
	case SevError:
		r.Errors = append(r.Errors, issue)
	case SevWarning:
		r.Warnings = append(r.Warnings, issue)
	default:
		r.Info = append(r.Info, issue)
	}
}

func (r *Result) errorf(subject hcl.Range, code, fix, format string, args ...any) {
	r.add(Issue{
		Severity:     SevError,
		Code:         code,
		Message:      fmt.Sprintf(format, args...),
		Subject:      &subject,
		SuggestedFix: fix,
	})
}

// Diagnostics renders the result as hcl diagnostics for terminal output,
// errors first, then warnings, then info.
func (r *Result) Diagnostics() hcl.Diagnostics {
	var diags hcl.Diagnostics
	emit := func(issues []Issue, sev hcl.DiagnosticSeverity) {
		for _, issue := range issues {
			detail := issue.Message
			if issue.SuggestedFix != "" {
				detail += " " + issue.SuggestedFix
			}
			diags = append(diags, &hcl.Diagnostic{
				Severity: sev,
				Summary:  issue.Code,
				Detail:   detail,
				Subject:  issue.Subject,
			})
		}
	}
	emit(r.Errors, hcl.DiagError)
	emit(r.Warnings, hcl.DiagWarning)
	emit(r.Info, hcl.DiagWarning)
	return diags
}
