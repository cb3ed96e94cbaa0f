package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/geneforge/gfl/internal/app"
	"github.com/geneforge/gfl/internal/capability"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gflc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gflc - parser and semantic validator for GFL workflow documents.

Usage:
  gflc [options] [WORKFLOW_PATH]

Arguments:
  WORKFLOW_PATH
    Path to a single .gfl file or a directory containing .gfl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	workflowFlag := flagSet.String("workflow", "", "Path to the workflow file or directory.")
	wFlag := flagSet.String("w", "", "Path to the workflow file or directory (shorthand).")
	engineFlag := flagSet.String("engine", "standard", "Target engine type. Options: 'basic', 'standard', 'advanced', 'experimental'.")
	schemasFlag := flagSet.String("schemas", "", "Comma-separated schema documents to pre-register before validation.")
	strictFlag := flagSet.Bool("strict", false, "Treat warnings as failures.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *workflowFlag != "" {
		path = *workflowFlag
	} else if *wFlag != "" {
		path = *wFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		slog.Debug("No workflow path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if _, err := capability.ParseEngineType(*engineFlag); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var schemaPaths []string
	if *schemasFlag != "" {
		for _, p := range strings.Split(*schemasFlag, ",") {
			if p = strings.TrimSpace(p); p != "" {
				schemaPaths = append(schemaPaths, p)
			}
		}
	}

	config := &app.Config{
		WorkflowPath: path,
		SchemaPaths:  schemaPaths,
		Engine:       capability.EngineType(*engineFlag),
		Strict:       *strictFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	}
	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
