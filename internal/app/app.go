package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/hcl/v2"

	"github.com/geneforge/gfl/internal/capability"
	"github.com/geneforge/gfl/internal/ctxlog"
	"github.com/geneforge/gfl/internal/fsutil"
	"github.com/geneforge/gfl/internal/parser"
	"github.com/geneforge/gfl/internal/schema"
	"github.com/geneforge/gfl/internal/validate"
)

// Config holds everything an App needs to run one validation.
type Config struct {
	WorkflowPath string
	SchemaPaths  []string
	Engine       capability.EngineType
	Strict       bool
	LogFormat    string
	LogLevel     string
}

// App encapsulates the front end's dependencies for one invocation: its own
// logger, parser, and registry handles.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	caps    *capability.Registry
	schemas *schema.Registry
}

// NewApp constructs a fully initialized App with isolated registries.
func NewApp(outW io.Writer, config *Config) *App {
	return &App{
		outW:    outW,
		logger:  newLogger(config.LogLevel, config.LogFormat, outW),
		config:  config,
		caps:    capability.Default(),
		schemas: schema.NewRegistry(),
	}
}

// Run parses and validates every workflow file under the configured path.
// It returns an error when any document has validation errors (or, in
// strict mode, warnings), so the process exits non-zero.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	for _, p := range a.config.SchemaPaths {
		if err := a.schemas.LoadFile(ctx, p); err != nil {
			return fmt.Errorf("failed to load schema document: %w", err)
		}
	}

	files, err := fsutil.FindFilesByExtension(a.config.WorkflowPath, ".gfl")
	if err != nil {
		return fmt.Errorf("failed to find workflow files in %s: %w", a.config.WorkflowPath, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No .gfl workflow files found in path.", "path", a.config.WorkflowPath)
		return nil
	}

	p := parser.New()
	var errorCount, warningCount int

	for _, file := range files {
		errs, warns := a.validateFile(ctx, p, file)
		errorCount += errs
		warningCount += warns
	}

	a.logger.Info("Validation complete.", "files", len(files), "errors", errorCount, "warnings", warningCount)

	if errorCount > 0 {
		return fmt.Errorf("validation failed with %d error(s)", errorCount)
	}
	if a.config.Strict && warningCount > 0 {
		return fmt.Errorf("validation produced %d warning(s) in strict mode", warningCount)
	}
	return nil
}

// validateFile runs one document through parse, schema import and the four
// validation passes, then renders its diagnostics.
func (a *App) validateFile(ctx context.Context, p *parser.Parser, file string) (errs, warns int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Validating workflow file.", "file", file)

	writer := hcl.NewDiagnosticTextWriter(a.outW, p.Files(), 100, false)

	doc, err := p.ParseFile(file)
	if err != nil {
		// A syntax error is fatal for this document: there is no AST to
		// run the validation passes over.
		if synErr, ok := err.(*parser.SyntaxError); ok {
			writer.WriteDiagnostics(synErr.Diags)
			return len(synErr.Diags.Errs()), 0
		}
		fmt.Fprintln(a.outW, err)
		return 1, 0
	}

	// Schema imports must complete before the contract pass consults the
	// registry. A failed load becomes a validation error, not a retry.
	impErr := a.schemas.ImportAll(ctx, doc)

	res := validate.Validate(doc, a.caps, a.config.Engine, a.schemas)
	if impErr != nil {
		res.Errors = append([]validate.Issue{{
			Severity: validate.SevError,
			Code:     validate.CodeSchemaImport,
			Message:  impErr.Error(),
			Subject:  doc.ImportsRange,
		}}, res.Errors...)
	}

	writer.WriteDiagnostics(res.Diagnostics())
	return len(res.Errors), len(res.Warnings)
}
