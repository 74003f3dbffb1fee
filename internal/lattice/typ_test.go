package lattice

import (
	"math"
	"testing"
)

func samples() []Typ {
	return []Typ{
		Top(),
		Bot(),
		Ctrl(),
		IntConst(0),
		IntConst(1),
		IntConst(-7),
		IntConst(math.MaxInt64),
		IntRange(0, 1),
		IntRange(-3, 12),
		IntBot(),
		TupleOf(Ctrl(), Top()),
		TupleOf(Ctrl(), Ctrl()),
	}
}

func TestMeet_Commutative(t *testing.T) {
	for _, a := range samples() {
		for _, b := range samples() {
			ab, ba := a.Meet(b), b.Meet(a)
			if !ab.Equal(ba) {
				t.Errorf("Meet(%v,%v)=%v but Meet(%v,%v)=%v", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestMeet_Associative(t *testing.T) {
	for _, a := range samples() {
		for _, b := range samples() {
			for _, c := range samples() {
				l := a.Meet(b.Meet(c))
				r := a.Meet(b).Meet(c)
				if !l.Equal(r) {
					t.Errorf("Meet not associative for %v,%v,%v: %v != %v", a, b, c, l, r)
				}
			}
		}
	}
}

func TestMeet_Idempotent(t *testing.T) {
	for _, a := range samples() {
		if !a.Meet(a).Equal(a) {
			t.Errorf("Meet(%v,%v) != %v", a, a, a)
		}
	}
}

func TestMeet_Bounds(t *testing.T) {
	for _, a := range samples() {
		if got := a.Meet(Top()); !got.Equal(a) {
			t.Errorf("Meet(%v,Top) = %v, want %v", a, got, a)
		}
		if got := a.Meet(Bot()); !got.Equal(Bot()) {
			t.Errorf("Meet(%v,Bot) = %v, want Bot", a, got)
		}
		if got := a.Join(Top()); !got.Equal(Top()) {
			t.Errorf("Join(%v,Top) = %v, want Top", a, got)
		}
		if got := a.Join(Bot()); !got.Equal(a) {
			t.Errorf("Join(%v,Bot) = %v, want %v", a, got, a)
		}
	}
}

func TestMeet_Ranges(t *testing.T) {
	cases := []struct {
		a, b, want Typ
	}{
		{IntConst(3), IntConst(3), IntConst(3)},
		{IntConst(3), IntConst(4), Bot()},
		{IntConst(3), IntRange(0, 5), IntConst(3)},
		{IntConst(7), IntRange(0, 5), Bot()},
		{IntRange(0, 5), IntRange(3, 8), IntRange(3, 5)},
		{IntRange(0, 2), IntRange(5, 8), Bot()},
		{IntRange(0, 5), Ctrl(), Bot()},
	}
	for _, tc := range cases {
		if got := tc.a.Meet(tc.b); !got.Equal(tc.want) {
			t.Errorf("Meet(%v,%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestJoin_Ranges(t *testing.T) {
	if got := IntConst(1).Join(IntConst(2)); !got.Equal(IntRange(1, 2)) {
		t.Errorf("Join(1,2) = %v, want [1..2]", got)
	}
	if got := IntRange(0, 3).Join(IntRange(5, 9)); !got.Equal(IntRange(0, 9)) {
		t.Errorf("Join = %v, want [0..9]", got)
	}
	if got := IntConst(1).Join(Ctrl()); !got.Equal(Top()) {
		t.Errorf("Join of unrelated kinds = %v, want Top", got)
	}
}

func TestIsSubtype(t *testing.T) {
	if !IntConst(3).IsSubtype(IntRange(0, 5)) {
		t.Error("constant must be a subtype of a range containing it")
	}
	if IntConst(7).IsSubtype(IntRange(0, 5)) {
		t.Error("constant outside a range is not its subtype")
	}
	for _, a := range samples() {
		if !Bot().IsSubtype(a) {
			t.Errorf("Bot must be a subtype of %v", a)
		}
		if !a.IsSubtype(Top()) {
			t.Errorf("%v must be a subtype of Top", a)
		}
	}
}

func TestTransitionAllowed(t *testing.T) {
	if !Top().TransitionAllowed(IntConst(5)) {
		t.Error("Top -> constant must be allowed")
	}
	if !IntRange(0, 9).TransitionAllowed(IntConst(5)) {
		t.Error("range -> contained constant must be allowed")
	}
	if !IntConst(5).TransitionAllowed(Bot()) {
		t.Error("anything -> Bot must be allowed")
	}
	if IntConst(5).TransitionAllowed(IntConst(6)) {
		t.Error("constant -> different constant must be rejected")
	}
	if IntConst(5).TransitionAllowed(Top()) {
		t.Error("moving back toward Top must be rejected")
	}
}

func TestFold_Arithmetic(t *testing.T) {
	cases := []struct {
		name string
		got  Typ
		want Typ
	}{
		{"add", Add(IntConst(1), IntConst(2)), IntConst(3)},
		{"add ranges", Add(IntRange(0, 1), IntRange(10, 20)), IntRange(10, 21)},
		{"add top", Add(Top(), IntConst(2)), Top()},
		{"sub", Sub(IntConst(5), IntConst(3)), IntConst(2)},
		{"mul", Mul(IntConst(6), IntConst(7)), IntConst(42)},
		{"div", Div(IntConst(9), IntConst(3)), IntConst(3)},
		{"div by zero", Div(IntConst(9), IntConst(0)), IntBot()},
		{"neg", Neg(IntConst(5)), IntConst(-5)},
		{"not zero", Not(IntConst(0)), IntConst(1)},
		{"not nonzero range", Not(IntRange(3, 9)), IntConst(0)},
		{"and", And(IntConst(6), IntConst(3)), IntConst(2)},
		{"or", Or(IntConst(6), IntConst(3)), IntConst(7)},
		{"xor", Xor(IntConst(6), IntConst(3)), IntConst(5)},
		{"eq true", Eq(IntConst(4), IntConst(4)), IntConst(1)},
		{"eq disjoint", Eq(IntRange(0, 3), IntRange(5, 9)), IntConst(0)},
		{"lt", Lt(IntConst(1), IntConst(2)), IntConst(1)},
		{"lt unknown", Lt(IntRange(0, 5), IntRange(3, 9)), IntRange(0, 1)},
		{"le", Le(IntConst(2), IntConst(2)), IntConst(1)},
	}
	for _, tc := range cases {
		if !tc.got.Equal(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestFold_OverflowWidens(t *testing.T) {
	if got := Add(IntConst(math.MaxInt64), IntConst(1)); !got.Equal(IntBot()) {
		t.Errorf("overflowing add = %v, want Int", got)
	}
	if got := Neg(IntConst(math.MinInt64)); !got.Equal(IntBot()) {
		t.Errorf("overflowing neg = %v, want Int", got)
	}
}
