package token

// Kind enumerates token kinds of the riptide surface language.
type Kind uint8

const (
	// EOF terminates every token stream.
	EOF Kind = iota
	// Error marks a token the lexer could not classify; the diagnostic
	// carries the detail, the parser skips it.
	Error

	// Ident is an identifier: [A-Za-z_][A-Za-z0-9_]*.
	Ident
	// Int is a decimal integer literal.
	Int

	// Keywords.
	KwInt
	KwReturn
	KwIf
	KwElse
	KwTrue
	KwFalse

	// DirShowGraph is the '#showGraph' debug directive.
	DirShowGraph

	// Operators and punctuation.
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // handled as an error for now, reserved
	Amp      // &
	Pipe     // |
	Caret    // ^
	Bang     // !
	Assign   // =
	EqEq     // ==
	Lt       // <
	Le       // <=
	Semi     // ;
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
)

var kindNames = [...]string{
	EOF:          "EOF",
	Error:        "Error",
	Ident:        "Ident",
	Int:          "Int",
	KwInt:        "int",
	KwReturn:     "return",
	KwIf:         "if",
	KwElse:       "else",
	KwTrue:       "true",
	KwFalse:      "false",
	DirShowGraph: "#showGraph",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Amp:          "&",
	Pipe:         "|",
	Caret:        "^",
	Bang:         "!",
	Assign:       "=",
	EqEq:         "==",
	Lt:           "<",
	Le:           "<=",
	Semi:         ";",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind?"
}

var keywords = map[string]Kind{
	"int":    KwInt,
	"return": KwReturn,
	"if":     KwIf,
	"else":   KwElse,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword classifies an identifier spelling, returning Ident when
// it is not a keyword.
func LookupKeyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}
