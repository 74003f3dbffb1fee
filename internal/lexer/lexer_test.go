package lexer

import (
	"testing"

	"riptide/internal/diag"
	"riptide/internal/source"
	"riptide/internal/token"
)

func lex(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f, err := fs.AddVirtual("test.rt", []byte(src))
	if err != nil {
		t.Fatalf("AddVirtual: %v", err)
	}
	bag := diag.NewBag(16)
	return Tokenize(f, bag), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestTokenize_Statement(t *testing.T) {
	toks, bag := lex(t, "int a = 1 + 2;")
	want := []token.Kind{
		token.KwInt, token.Ident, token.Assign, token.Int,
		token.Plus, token.Int, token.Semi, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if toks[1].Text != "a" || toks[3].Text != "1" {
		t.Errorf("payload texts wrong: %q %q", toks[1].Text, toks[3].Text)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestTokenize_OperatorsAndDirective(t *testing.T) {
	toks, bag := lex(t, "a == b <= c < d; #showGraph;")
	want := []token.Kind{
		token.Ident, token.EqEq, token.Ident, token.Le, token.Ident,
		token.Lt, token.Ident, token.Semi, token.DirShowGraph, token.Semi, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestTokenize_CommentsAndKeywords(t *testing.T) {
	toks, bag := lex(t, "// header\nif (true) { return 0; } else x = false;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.KwIf {
		t.Errorf("comment not skipped, first token %v", toks[0].Kind)
	}
	sawElse := false
	for _, tk := range toks {
		if tk.Kind == token.KwElse {
			sawElse = true
		}
	}
	if !sawElse {
		t.Errorf("else keyword not recognized")
	}
}

func TestTokenize_LeadingZeroRejected(t *testing.T) {
	toks, bag := lex(t, "int a = 01;")
	if !bag.HasErrors() {
		t.Fatalf("leading zero accepted")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexBadNumber {
			found = true
		}
	}
	if !found {
		t.Errorf("wrong code: %v", bag.Items())
	}
	if toks[3].Kind != token.Error {
		t.Errorf("bad number should become an Error token, got %v", toks[3].Kind)
	}
}

func TestTokenize_ZeroAloneAccepted(t *testing.T) {
	toks, bag := lex(t, "return 0;")
	if bag.HasErrors() {
		t.Fatalf("plain 0 rejected: %v", bag.Items())
	}
	if toks[1].Kind != token.Int || toks[1].Text != "0" {
		t.Errorf("token = %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestTokenize_UnknownCharReported(t *testing.T) {
	_, bag := lex(t, "int a = 1 @ 2;")
	if !bag.HasErrors() {
		t.Fatalf("unknown char accepted")
	}
}

func TestTokenize_SpansPointAtSource(t *testing.T) {
	toks, _ := lex(t, "int abc = 5;")
	id := toks[1]
	if id.Span.Start != 4 || id.Span.End != 7 {
		t.Errorf("ident span = %v, want 4-7", id.Span)
	}
}
