// Package token defines the token kinds of the riptide surface language
// and the Token value the lexer produces.
package token

import "riptide/internal/source"

// Token is one lexeme with its source span. Text is materialized only
// for kinds that carry a payload (Ident, Int).
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }
