package diag

import (
	"strings"
	"testing"

	"riptide/internal/source"
)

func TestBag_LimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if b.HasErrors() {
		t.Fatalf("empty bag reports errors")
	}
	ok := b.Add(New(SevWarning, UnknownCode, source.Span{}, "w"))
	if !ok || b.HasErrors() {
		t.Fatalf("warning should not count as error")
	}
	b.Add(New(SevError, SynUnexpectedToken, source.Span{}, "e"))
	if !b.HasErrors() {
		t.Fatalf("error not reported")
	}
	if b.Add(New(SevError, SynUnexpectedToken, source.Span{}, "over")) {
		t.Fatalf("limit not enforced")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBag_MergeAndSort(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevError, SynUnexpectedToken, source.Span{File: 1, Start: 10, End: 11}, "later"))
	o := NewBag(1)
	o.Add(New(SevError, LexUnknownChar, source.Span{File: 1, Start: 2, End: 3}, "earlier"))
	a.Merge(o)
	if a.Len() != 2 {
		t.Fatalf("Merge dropped items: %d", a.Len())
	}
	a.SortStable()
	if a.Items()[0].Message != "earlier" {
		t.Errorf("sort order wrong: %q first", a.Items()[0].Message)
	}
}

func TestRender_CaretUnderSpan(t *testing.T) {
	fs := source.NewFileSet()
	f, err := fs.AddVirtual("t.rt", []byte("int a = 01;\n"))
	if err != nil {
		t.Fatalf("AddVirtual: %v", err)
	}
	d := New(SevError, LexBadNumber, source.Span{File: f.ID, Start: 8, End: 10}, "numbers cannot start with 0")

	var sb strings.Builder
	Render(&sb, fs, d, false)
	out := sb.String()
	if !strings.Contains(out, "ERROR[RT1002] t.rt:1:9: numbers cannot start with 0") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "int a = 01;") {
		t.Errorf("source line missing:\n%s", out)
	}
	if !strings.Contains(out, "^^") {
		t.Errorf("caret run missing:\n%s", out)
	}
}
