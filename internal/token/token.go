// Package token exposes the lexical layer of the GFL front end. It wraps the
// hclsyntax scanner and reduces its fine-grained token types to the three
// coarse kinds the rest of the pipeline cares about, while preserving the
// exact source range of every token for diagnostics.
package token

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Kind classifies a token.
type Kind int

const (
	// EOF marks the end of the token stream.
	EOF Kind = iota
	// Identifier covers bare names: block keywords, attribute names,
	// variable references and symbolic-reference call targets.
	Identifier
	// Literal covers quoted strings, heredocs and numbers.
	Literal
	// Punct covers all structural punctuation and operators.
	Punct
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case Identifier:
		return "identifier"
	case Literal:
		return "literal"
	default:
		return "punctuation"
	}
}

// Token is a single lexical unit. Tokens are immutable once produced.
type Token struct {
	Kind  Kind
	Text  string
	Range hcl.Range
}

// Tokens is an ordered token stream for one source file.
type Tokens []Token

// Lex scans src and returns its token stream. Scanning is total: even
// malformed input produces a stream, with invalid bytes surfaced through the
// returned diagnostics while the tokens around them are still reported.
func Lex(src []byte, filename string) (Tokens, hcl.Diagnostics) {
	raw, diags := hclsyntax.LexConfig(src, filename, hcl.Pos{Line: 1, Column: 1})

	out := make(Tokens, 0, len(raw))
	for _, t := range raw {
		out = append(out, Token{
			Kind:  kindOf(t.Type),
			Text:  string(t.Bytes),
			Range: t.Range,
		})
		if t.Type == hclsyntax.TokenEOF {
			break
		}
	}
	return out, diags
}

func kindOf(t hclsyntax.TokenType) Kind {
	switch t {
	case hclsyntax.TokenEOF:
		return EOF
	case hclsyntax.TokenIdent:
		return Identifier
	case hclsyntax.TokenQuotedLit, hclsyntax.TokenStringLit, hclsyntax.TokenNumberLit,
		hclsyntax.TokenOHeredoc, hclsyntax.TokenCHeredoc:
		return Literal
	default:
		return Punct
	}
}
