// Package lexer turns normalized source bytes into a token stream.
// Malformed input never stops the scan: the lexer reports a diagnostic,
// emits an Error token and keeps going so the parser can resynchronize.
package lexer

import (
	"fmt"

	"riptide/internal/diag"
	"riptide/internal/source"
	"riptide/internal/token"
)

type Lexer struct {
	cur Cursor
	bag *diag.Bag
}

func New(f *source.File, bag *diag.Bag) *Lexer {
	return &Lexer{cur: NewCursor(f), bag: bag}
}

// Tokenize scans the whole file. The returned slice always ends with an
// EOF token.
func Tokenize(f *source.File, bag *diag.Bag) []token.Token {
	l := New(f, bag)
	toks := make([]token.Token, 0, len(f.Content)/4+1)
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()
	start := l.cur.Off
	if l.cur.EOF() {
		return l.make(token.EOF, start)
	}

	b := l.cur.Peek()
	switch {
	case isIDStart(b):
		return l.scanIdent(start)
	case isDigit(b):
		return l.scanNumber(start)
	case b == '#':
		return l.scanDirective(start)
	}

	l.cur.Bump()
	switch b {
	case '+':
		return l.make(token.Plus, start)
	case '-':
		return l.make(token.Minus, start)
	case '*':
		return l.make(token.Star, start)
	case '/':
		return l.make(token.Slash, start)
	case '&':
		return l.make(token.Amp, start)
	case '|':
		return l.make(token.Pipe, start)
	case '^':
		return l.make(token.Caret, start)
	case '!':
		return l.make(token.Bang, start)
	case '=':
		if l.cur.Peek() == '=' {
			l.cur.Bump()
			return l.make(token.EqEq, start)
		}
		return l.make(token.Assign, start)
	case '<':
		if l.cur.Peek() == '=' {
			l.cur.Bump()
			return l.make(token.Le, start)
		}
		return l.make(token.Lt, start)
	case ';':
		return l.make(token.Semi, start)
	case '(':
		return l.make(token.LParen, start)
	case ')':
		return l.make(token.RParen, start)
	case '{':
		return l.make(token.LBrace, start)
	case '}':
		return l.make(token.RBrace, start)
	}

	l.report(diag.LexUnknownChar, start, fmt.Sprintf("unknown character %q", rune(b)))
	return l.make(token.Error, start)
}

// skipTrivia пропускает пробелы и строчные комментарии //...
func (l *Lexer) skipTrivia() {
	for !l.cur.EOF() {
		b := l.cur.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			l.cur.Bump()
		case b == '/' && l.cur.PeekAt(1) == '/':
			for !l.cur.EOF() && l.cur.Peek() != '\n' {
				l.cur.Bump()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanIdent(start uint32) token.Token {
	for !l.cur.EOF() && isIDLetter(l.cur.Peek()) {
		l.cur.Bump()
	}
	text := string(l.cur.Slice(start))
	kind := token.LookupKeyword(text)
	t := l.make(kind, start)
	if kind == token.Ident {
		t.Text = text
	}
	return t
}

func (l *Lexer) scanNumber(start uint32) token.Token {
	for !l.cur.EOF() && isDigit(l.cur.Peek()) {
		l.cur.Bump()
	}
	text := string(l.cur.Slice(start))
	if len(text) > 1 && text[0] == '0' {
		l.report(diag.LexBadNumber, start, "numbers cannot start with 0")
		return l.make(token.Error, start)
	}
	t := l.make(token.Int, start)
	t.Text = text
	return t
}

func (l *Lexer) scanDirective(start uint32) token.Token {
	l.cur.Bump() // '#'
	for !l.cur.EOF() && isIDLetter(l.cur.Peek()) {
		l.cur.Bump()
	}
	name := string(l.cur.Slice(start))
	if name == "#showGraph" {
		return l.make(token.DirShowGraph, start)
	}
	l.report(diag.LexBadDirective, start, fmt.Sprintf("unknown directive %q", name))
	return l.make(token.Error, start)
}

func (l *Lexer) make(k token.Kind, start uint32) token.Token {
	return token.Token{
		Kind: k,
		Span: source.Span{File: l.cur.File.ID, Start: start, End: l.cur.Off},
	}
}

func (l *Lexer) report(code diag.Code, start uint32, msg string) {
	span := source.Span{File: l.cur.File.ID, Start: start, End: l.cur.Off}
	l.bag.Add(diag.New(diag.SevError, code, span, msg))
}

func isIDStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIDLetter(b byte) bool { return isIDStart(b) || isDigit(b) }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
