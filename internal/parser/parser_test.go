package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, err := parser.Parse([]byte(src), "test.gfl")
	require.NoError(t, err)
	return doc
}

func TestParse_DesignBlockFieldsInOrder(t *testing.T) {
	doc := mustParse(t, `
design {
  entity = "protein"
  model  = "ProteinGeneratorV2"
  count  = 10
  output = "designed_candidates"
}
`)
	require.Len(t, doc.Blocks, 1)

	b := doc.Blocks[0]
	assert.Equal(t, ast.KindDesign, b.Kind)
	assert.Empty(t, b.Label)

	var names []string
	for _, f := range b.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"entity", "model", "count", "output"}, names)

	entity, ok := b.StringField("entity")
	require.True(t, ok)
	assert.Equal(t, "protein", entity)

	count, ok := b.Field("count")
	require.True(t, ok)
	assert.Equal(t, ast.ScalarVal, count.Kind)
	assert.True(t, count.Scalar.RawEquals(cty.NumberIntVal(10)))

	assert.Equal(t, 2, b.DefRange.Start.Line)
}

func TestParse_LabeledEntityBlocks(t *testing.T) {
	doc := mustParse(t, `
loci "TP53_promoter" {
  chromosome = "chr17"
  start      = 7687490
  end        = 7668402
  elements   = ["promoter", "enhancer"]
}
`)
	require.Len(t, doc.Blocks, 1)
	b := doc.Blocks[0]
	assert.Equal(t, ast.KindLoci, b.Kind)
	assert.Equal(t, "TP53_promoter", b.Label)

	elements, ok := b.Field("elements")
	require.True(t, ok)
	require.Equal(t, ast.ListVal, elements.Kind)
	require.Len(t, elements.Items, 2)
	first, _ := elements.Items[0].AsString()
	assert.Equal(t, "promoter", first)
}

func TestParse_SymbolicReferences(t *testing.T) {
	t.Run("bare identifier argument", func(t *testing.T) {
		doc := mustParse(t, `
rules {
  rule "activate" {
    if   = pathway(Apoptosis)
    then = { action = "upregulate" }
  }
}
`)
		rules := doc.Blocks[0]
		require.Len(t, rules.Blocks, 1)
		rule := rules.Blocks[0]
		assert.Equal(t, ast.KindRule, rule.Kind)
		assert.Equal(t, "activate", rule.Label)

		cond, ok := rule.Field("if")
		require.True(t, ok)
		require.Equal(t, ast.SymbolVal, cond.Kind)
		assert.Equal(t, "pathway", cond.Symbol.Kind)
		assert.Equal(t, "Apoptosis", cond.Symbol.ID)
	})

	t.Run("quoted argument", func(t *testing.T) {
		doc := mustParse(t, `
branch {
  if   = locus("TP53")
  then = { goto = "edit" }
}
`)
		cond, ok := doc.Blocks[0].Field("if")
		require.True(t, ok)
		require.Equal(t, ast.SymbolVal, cond.Kind)
		assert.Equal(t, "TP53", cond.Symbol.ID)
	})

	t.Run("unknown call keyword is a syntax error", func(t *testing.T) {
		_, err := parser.Parse([]byte(`branch { if = widget(X) }`), "test.gfl")
		require.Error(t, err)
		synErr, ok := err.(*parser.SyntaxError)
		require.True(t, ok)
		assert.Contains(t, synErr.Found, "Unknown reference keyword")
	})
}

func TestParse_TemplatesRecordVariables(t *testing.T) {
	doc := mustParse(t, `
experiment {
  tool = "CRISPR_cas9"
  type = "gene_editing"
  params = {
    temp = "${temperature}"
    note = "run at ${temperature} for ${duration}"
  }
}
`)
	params, ok := doc.Blocks[0].Field("params")
	require.True(t, ok)
	require.Equal(t, ast.MappingVal, params.Kind)

	temp, ok := params.Entry("temp")
	require.True(t, ok)
	require.Equal(t, ast.TemplateVal, temp.Kind)
	assert.Equal(t, "${temperature}", temp.Template)
	assert.Equal(t, []string{"temperature"}, temp.TemplateVars)

	note, ok := params.Entry("note")
	require.True(t, ok)
	assert.Equal(t, "run at ${temperature} for ${duration}", note.Template)
	assert.Equal(t, []string{"temperature", "duration"}, note.TemplateVars)
}

func TestParse_VariableReference(t *testing.T) {
	doc := mustParse(t, `
analyze {
  strategy = "differential"
  data     = designed_candidates
}
`)
	data, ok := doc.Blocks[0].Field("data")
	require.True(t, ok)
	require.Equal(t, ast.VarVal, data.Kind)
	assert.Equal(t, "designed_candidates", data.Var)
}

func TestParse_Contract(t *testing.T) {
	doc := mustParse(t, `
design {
  entity = "protein"
  model  = "ProtGen"
  count  = 5
  output = "candidates"

  contract {
    outputs {
      candidates {
        type       = "FASTA"
        attributes = { validated = true }
      }
    }
  }
}
`)
	b := doc.Blocks[0]
	require.NotNil(t, b.Contract)
	require.Len(t, b.Contract.Outputs, 1)

	port, ok := b.Contract.Output("candidates")
	require.True(t, ok)
	assert.Equal(t, "FASTA", port.DataType)
	require.Len(t, port.Attributes, 1)
	assert.Equal(t, "validated", port.Attributes[0].Name)
	assert.True(t, port.Attributes[0].Value.RawEquals(cty.True))
}

func TestParse_ImportSchemas(t *testing.T) {
	doc := mustParse(t, `
import_schemas = ["schemas/clinical.yml", "schemas/extra.yml"]

experiment {
  tool = "sequencer"
  type = "sequencing"
}
`)
	assert.Equal(t, []string{"schemas/clinical.yml", "schemas/extra.yml"}, doc.SchemaImports)
	require.NotNil(t, doc.ImportsRange)
	assert.Equal(t, 2, doc.ImportsRange.Start.Line)
}

func TestParse_UnknownTopLevelKeywordIsRecorded(t *testing.T) {
	doc := mustParse(t, `
metadata {
  author = "someone"
}

experiment {
  tool = "sequencer"
  type = "sequencing"
}
`)
	require.Len(t, doc.Blocks, 1)
	require.Len(t, doc.Unknown, 1)
	assert.Equal(t, "metadata", doc.Unknown[0].Type)
	assert.Equal(t, 2, doc.Unknown[0].DefRange.Start.Line)
}

func TestParse_SyntaxErrors(t *testing.T) {
	t.Run("missing closing brace", func(t *testing.T) {
		_, err := parser.Parse([]byte(`design { entity = "x"`), "test.gfl")
		require.Error(t, err)
		_, ok := err.(*parser.SyntaxError)
		assert.True(t, ok)
	})

	t.Run("duplicate attribute", func(t *testing.T) {
		_, err := parser.Parse([]byte("design {\n  entity = \"a\"\n  entity = \"b\"\n}"), "test.gfl")
		require.Error(t, err)
	})

	t.Run("duplicate mapping key", func(t *testing.T) {
		_, err := parser.Parse([]byte(`experiment { params = { a = 1, a = 2 } }`), "test.gfl")
		require.Error(t, err)
		synErr, ok := err.(*parser.SyntaxError)
		require.True(t, ok)
		assert.Contains(t, synErr.Found, "Duplicate mapping key")
	})
}

func TestParse_EmptySourceYieldsEmptyDocument(t *testing.T) {
	doc := mustParse(t, "")
	assert.Empty(t, doc.Blocks)
	assert.Empty(t, doc.Unknown)
}

func TestParse_NestedRunBlocks(t *testing.T) {
	doc := mustParse(t, `
optimize {
  search_space = { temperature = "range(25, 42)" }
  strategy     = { name = "bayesian" }
  objective    = { maximize = "yield" }
  budget       = { max_experiments = 50 }

  run {
    experiment {
      tool   = "CRISPR_cas9"
      type   = "gene_editing"
      params = { temp = "${temperature}" }
    }
  }
}
`)
	opt := doc.Blocks[0]
	runs := opt.BlocksOfKind(ast.KindRun)
	require.Len(t, runs, 1)
	exps := runs[0].BlocksOfKind(ast.KindExperiment)
	require.Len(t, exps, 1)
	tool, _ := exps[0].StringField("tool")
	assert.Equal(t, "CRISPR_cas9", tool)
}
