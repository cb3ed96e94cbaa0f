package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/parser"
)

// structuralOpts compares documents by structure, ignoring source spans,
// which necessarily shift between a source file and its re-rendering.
var structuralOpts = cmp.Options{
	cmpopts.IgnoreTypes(hcl.Range{}),
	cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) }),
}

func roundTrip(t *testing.T, src string) {
	t.Helper()

	first, err := parser.Parse([]byte(src), "workflow.gfl")
	require.NoError(t, err)

	rendered := ast.Serialize(first)
	second, err := parser.Parse(rendered, "workflow.gfl")
	require.NoError(t, err, "re-rendered source failed to parse:\n%s", rendered)

	if diff := cmp.Diff(first, second, structuralOpts); diff != "" {
		t.Fatalf("document changed across serialize/parse (-first +second):\n%s\nrendered:\n%s", diff, rendered)
	}
}

func TestSerialize_RoundTripIdempotence(t *testing.T) {
	t.Run("scalars lists and mappings", func(t *testing.T) {
		roundTrip(t, `
design {
  entity      = "protein"
  model       = "ProteinGeneratorV2"
  count       = 10
  output      = "candidates"
  constraints = ["stable", "soluble"]
  objective   = { maximize = "binding_affinity" }
}
`)
	})

	t.Run("templates and symbolic references", func(t *testing.T) {
		roundTrip(t, `
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

rules {
  rule "activate" {
    if   = pathway(Apoptosis)
    then = { action = "upregulate" }
  }
}
`)
	})

	t.Run("contracts and imports", func(t *testing.T) {
		roundTrip(t, `
import_schemas = ["schemas/clinical.yml"]

design {
  entity = "protein"
  model  = "ProtGen"
  count  = 5
  output = "candidates"

  contract {
    outputs {
      candidates {
        type       = "FASTA"
        attributes = { validated = true, quality_score = 40 }
      }
    }
  }
}

analyze {
  strategy = "differential"
  data     = candidates

  contract {
    inputs {
      candidates {
        type = "FASTA"
      }
    }
  }
}
`)
	})

	t.Run("labeled entity blocks", func(t *testing.T) {
		roundTrip(t, `
loci "TP53_promoter" {
  chromosome = "chr17"
  start      = 7687490
  end        = 7668402
}

pathways "Apoptosis" {
  description = "programmed cell death"
  genes       = ["TP53", "BAX", "CASP9"]
}
`)
	})
}

func TestSerialize_IsDeterministic(t *testing.T) {
	src := `
hypothesis "H1" {
  description = "knockout reduces proliferation"
  if          = locus(TP53)
  then        = { expect = "reduced_growth" }
}
`
	doc, err := parser.Parse([]byte(src), "workflow.gfl")
	require.NoError(t, err)

	a := ast.Serialize(doc)
	b := ast.Serialize(doc)
	require.Equal(t, string(a), string(b))
}
