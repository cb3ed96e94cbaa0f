package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_KindsAndSpans(t *testing.T) {
	src := []byte(`design { count = 10 }`)
	toks, diags := Lex(src, "test.gfl")
	require.False(t, diags.HasErrors())

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{Identifier, Punct, Identifier, Punct, Literal, Punct, EOF}, kinds)

	first := toks[0]
	assert.Equal(t, "design", first.Text)
	assert.Equal(t, "test.gfl", first.Range.Filename)
	assert.Equal(t, 1, first.Range.Start.Line)
	assert.Equal(t, 1, first.Range.Start.Column)
	assert.Equal(t, 7, first.Range.End.Column)
}

func TestLex_StringLiteralsAndTemplates(t *testing.T) {
	src := []byte(`tool = "CRISPR_${version}"`)
	toks, diags := Lex(src, "test.gfl")
	require.False(t, diags.HasErrors())

	var literals, identifiers []string
	for _, tok := range toks {
		switch tok.Kind {
		case Literal:
			literals = append(literals, tok.Text)
		case Identifier:
			identifiers = append(identifiers, tok.Text)
		}
	}
	assert.Contains(t, literals, "CRISPR_")
	assert.Contains(t, identifiers, "version")
}

func TestLex_Heredoc(t *testing.T) {
	src := []byte("description = <<EOT\nmulti-line\ntext\nEOT\n")
	toks, diags := Lex(src, "test.gfl")
	require.False(t, diags.HasErrors())

	var literals []string
	for _, tok := range toks {
		if tok.Kind == Literal {
			literals = append(literals, tok.Text)
		}
	}
	require.NotEmpty(t, literals)
	assert.Equal(t, "<<EOT\n", literals[0], "opening marker is a literal")
	assert.Contains(t, literals, "multi-line\n", "body lines are literals")
	assert.True(t, strings.HasPrefix(literals[len(literals)-1], "EOT"), "closing marker is a literal")
}

func TestLex_InvalidByteProducesDiagnostics(t *testing.T) {
	_, diags := Lex([]byte("design ~ {}"), "test.gfl")
	assert.True(t, diags.HasErrors())
}

func TestLex_EmptySource(t *testing.T) {
	toks, diags := Lex(nil, "test.gfl")
	require.False(t, diags.HasErrors())
	require.Len(t, toks, 1)
	assert.Equal(t, EOF, toks[0].Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "identifier", Identifier.String())
	assert.Equal(t, "literal", Literal.String())
	assert.Equal(t, "punctuation", Punct.String())
	assert.Equal(t, "eof", EOF.String())
}
