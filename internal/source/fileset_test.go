package source

import (
	"bytes"
	"testing"
)

func TestFileSet_AddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	f, err := fs.AddVirtual("test.rt", []byte("\xEF\xBB\xBFint a = 1;\r\nreturn a;\r\n"))
	if err != nil {
		t.Fatalf("AddVirtual: %v", err)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Errorf("BOM flag not set")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("CRLF flag not set")
	}
	if bytes.Contains(f.Content, []byte("\r")) {
		t.Errorf("CR survived normalization: %q", f.Content)
	}
	if got := fs.Get(f.ID); got != f {
		t.Errorf("Get(%d) returned a different file", f.ID)
	}
	if fs.Get(NoFile) != nil {
		t.Errorf("Get(NoFile) must return nil")
	}
}

func TestFile_LineCol(t *testing.T) {
	fs := NewFileSet()
	f, err := fs.AddVirtual("test.rt", []byte("ab\ncde\n\nf"))
	if err != nil {
		t.Fatalf("AddVirtual: %v", err)
	}
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // the newline itself
		{3, LineCol{2, 1}},
		{5, LineCol{2, 3}},
		{7, LineCol{3, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tc := range cases {
		if got := f.LineCol(tc.off); got != tc.want {
			t.Errorf("LineCol(%d) = %v, want %v", tc.off, got, tc.want)
		}
	}
	if got := string(f.Line(2)); got != "cde" {
		t.Errorf("Line(2) = %q, want %q", got, "cde")
	}
	if got := string(f.Line(3)); got != "" {
		t.Errorf("Line(3) = %q, want empty", got)
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 1, End: 5}
	got := a.Cover(b)
	if got.Start != 1 || got.End != 6 {
		t.Errorf("Cover = %v, want 1-6", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files must be a no-op")
	}
}
