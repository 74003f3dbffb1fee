package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"int", KwInt},
		{"return", KwReturn},
		{"if", KwIf},
		{"else", KwElse},
		{"true", KwTrue},
		{"false", KwFalse},
		{"integer", Ident},
		{"_x123", Ident},
		{"", Ident},
	}
	for _, tc := range cases {
		if got := LookupKeyword(tc.in); got != tc.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	if got := Le.String(); got != "<=" {
		t.Errorf("Le.String() = %q", got)
	}
	if got := Kind(250).String(); got != "Kind?" {
		t.Errorf("unknown kind String() = %q", got)
	}
}
