package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geneforge/gfl/internal/app"
	"github.com/geneforge/gfl/internal/capability"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runApp(t *testing.T, config *app.Config) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := app.NewApp(&out, config).Run(context.Background())
	return out.String(), err
}

func TestRunValidWorkflow(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "edit.gfl", `
experiment {
  tool = "CRISPR_cas9"
  type = "gene_editing"
  params = {
    target_gene = "TP53"
  }
}
`)

	out, err := runApp(t, &app.Config{WorkflowPath: dir, Engine: capability.EngineBasic})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunReportsValidationErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.gfl", `
design {
  model = "ProteinGeneratorV2"
  count = 10
  output = "candidates"
}
`)

	out, err := runApp(t, &app.Config{WorkflowPath: dir, Engine: capability.EngineStandard})
	require.ErrorContains(t, err, "validation failed with 1 error(s)")
	assert.Contains(t, out, "SEMANTIC_STRUCTURAL")
	assert.Contains(t, out, `missing required field "entity"`)
}

func TestRunReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.gfl", "experiment {\n  tool = \"x\"\n")

	out, err := runApp(t, &app.Config{WorkflowPath: dir, Engine: capability.EngineBasic})
	require.ErrorContains(t, err, "validation failed")
	assert.NotEmpty(t, out)
}

func TestRunStrictMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "advanced.gfl", `
loci "TP53" {
  chromosome = "chr17"
  start = 7668402
  end = 7687550
}
`)

	t.Run("warnings pass by default", func(t *testing.T) {
		_, err := runApp(t, &app.Config{WorkflowPath: dir, Engine: capability.EngineBasic})
		assert.NoError(t, err)
	})

	t.Run("warnings fail in strict mode", func(t *testing.T) {
		_, err := runApp(t, &app.Config{
			WorkflowPath: dir,
			Engine:       capability.EngineBasic,
			Strict:       true,
		})
		assert.ErrorContains(t, err, "warning(s) in strict mode")
	})

	t.Run("a capable engine clears the warnings", func(t *testing.T) {
		_, err := runApp(t, &app.Config{
			WorkflowPath: dir,
			Engine:       capability.EngineAdvanced,
			Strict:       true,
		})
		assert.NoError(t, err)
	})
}

func TestRunSchemaImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "types.yml", `
schemas:
  ClinicalFASTQ:
    type: FASTQ
`)
	writeFile(t, dir, "pipeline.gfl", `
import_schemas = ["types.yml"]

experiment {
  tool = "sequencer"
  type = "sequencing"
  output = "reads"

  contract {
    outputs {
      reads {
        type = "ClinicalFASTQ"
      }
    }
  }
}
`)

	_, err := runApp(t, &app.Config{WorkflowPath: dir, Engine: capability.EngineAdvanced})
	assert.NoError(t, err)
}

func TestRunFailedSchemaImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pipeline.gfl", `
import_schemas = ["absent.yml"]

experiment {
  tool = "x"
  type = "y"
}
`)

	out, err := runApp(t, &app.Config{WorkflowPath: dir, Engine: capability.EngineAdvanced})
	require.ErrorContains(t, err, "validation failed")
	assert.Contains(t, out, "SEMANTIC_SCHEMA_IMPORT_FAILED")
	assert.Contains(t, out, "absent.yml")
}

func TestRunPreloadedSchemas(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "types.yml", `
schemas:
  ClinicalFASTQ:
    type: FASTQ
`)
	writeFile(t, dir, "pipeline.gfl", `
experiment {
  tool = "sequencer"
  type = "sequencing"
  output = "reads"

  contract {
    outputs {
      reads {
        type = "ClinicalFASTQ"
      }
    }
  }
}
`)

	_, err := runApp(t, &app.Config{
		WorkflowPath: dir,
		SchemaPaths:  []string{schemaPath},
		Engine:       capability.EngineAdvanced,
	})
	assert.NoError(t, err)
}

func TestRunMissingSchemaPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pipeline.gfl", "experiment {\n  tool = \"x\"\n  type = \"y\"\n}\n")

	_, err := runApp(t, &app.Config{
		WorkflowPath: dir,
		SchemaPaths:  []string{filepath.Join(dir, "absent.yml")},
		Engine:       capability.EngineBasic,
	})
	assert.ErrorContains(t, err, "failed to load schema document")
}

func TestRunSingleFilePath(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "edit.gfl", "experiment {\n  tool = \"x\"\n  type = \"y\"\n}\n")

	_, err := runApp(t, &app.Config{WorkflowPath: file, Engine: capability.EngineBasic})
	assert.NoError(t, err)
}

func TestRunNoWorkflowFiles(t *testing.T) {
	_, err := runApp(t, &app.Config{WorkflowPath: t.TempDir(), Engine: capability.EngineBasic})
	assert.NoError(t, err)
}
