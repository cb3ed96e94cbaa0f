package symbols_test

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geneforge/gfl/internal/ast"
	"github.com/geneforge/gfl/internal/symbols"
)

func defBlock(kind ast.BlockKind, label string, line int) *ast.Block {
	return &ast.Block{
		Kind:  kind,
		Label: label,
		DefRange: hcl.Range{
			Filename: "workflow.gfl",
			Start:    hcl.Pos{Line: line, Column: 1, Byte: 0},
			End:      hcl.Pos{Line: line, Column: 10, Byte: 9},
		},
	}
}

func TestDefineAndResolve(t *testing.T) {
	tbl := symbols.NewTable()
	tp53 := defBlock(ast.KindLoci, "TP53", 1)
	gly := defBlock(ast.KindPathways, "Glycolysis", 5)

	require.NoError(t, tbl.Define("TP53", tp53))
	require.NoError(t, tbl.Define("Glycolysis", gly))
	assert.Equal(t, 2, tbl.Len())

	got, ok := tbl.Resolve("TP53")
	require.True(t, ok)
	assert.Same(t, tp53, got)

	_, ok = tbl.Resolve("BRCA1")
	assert.False(t, ok)
}

func TestResolveKind(t *testing.T) {
	tbl := symbols.NewTable()
	require.NoError(t, tbl.Define("TP53", defBlock(ast.KindLoci, "TP53", 1)))

	t.Run("matching kind resolves", func(t *testing.T) {
		_, ok := tbl.ResolveKind("TP53", ast.KindLoci)
		assert.True(t, ok)
	})

	t.Run("kind mismatch does not resolve", func(t *testing.T) {
		_, ok := tbl.ResolveKind("TP53", ast.KindPathways)
		assert.False(t, ok)
	})

	t.Run("unknown identifier does not resolve", func(t *testing.T) {
		_, ok := tbl.ResolveKind("BRCA1", ast.KindLoci)
		assert.False(t, ok)
	})
}

func TestDefineDuplicate(t *testing.T) {
	tbl := symbols.NewTable()
	require.NoError(t, tbl.Define("TP53", defBlock(ast.KindLoci, "TP53", 1)))

	err := tbl.Define("TP53", defBlock(ast.KindPathways, "TP53", 9))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `entity "TP53" already defined`)
	assert.Contains(t, err.Error(), "workflow.gfl:1,1", "error names the original definition")
}

func TestDefiningKind(t *testing.T) {
	cases := map[string]ast.BlockKind{
		"locus":      ast.KindLoci,
		"pathway":    ast.KindPathways,
		"complex":    ast.KindComplexes,
		"hypothesis": ast.KindHypothesis,
	}
	for keyword, want := range cases {
		got, ok := symbols.DefiningKind(keyword)
		require.True(t, ok, keyword)
		assert.Equal(t, want, got)
	}

	_, ok := symbols.DefiningKind("gene")
	assert.False(t, ok)
}
