package lattice

import "math"

// Integer folding over ranges. Non-integer operands fall through to the
// extremes: any Top operand keeps the result optimistic, anything else is
// Bot. Bounds that would overflow widen to the full integer range rather
// than wrap.

// Add folds a + b.
func Add(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	lo, okLo := addChecked(a.Lo, b.Lo)
	hi, okHi := addChecked(a.Hi, b.Hi)
	if !okLo || !okHi {
		return IntBot()
	}
	return IntRange(lo, hi)
}

// Sub folds a - b.
func Sub(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	lo, okLo := subChecked(a.Lo, b.Hi)
	hi, okHi := subChecked(a.Hi, b.Lo)
	if !okLo || !okHi {
		return IntBot()
	}
	return IntRange(lo, hi)
}

// Mul folds a * b. Only constant operands fold; general interval
// multiplication is not worth the corner cases here.
func Mul(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	if !a.IsConstant() || !b.IsConstant() {
		return IntBot()
	}
	p, ok := mulChecked(a.Lo, b.Lo)
	if !ok {
		return IntBot()
	}
	return IntConst(p)
}

// Div folds a / b. Division by zero never folds; the node keeps its
// pessimistic type and the error surfaces at run time, not compile time.
func Div(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	if !a.IsConstant() || !b.IsConstant() || b.Lo == 0 {
		return IntBot()
	}
	if a.Lo == math.MinInt64 && b.Lo == -1 {
		return IntBot()
	}
	return IntConst(a.Lo / b.Lo)
}

// Neg folds -a.
func Neg(a Typ) Typ {
	if a.Kind == KindTop {
		return Top()
	}
	if a.Kind != KindInt {
		return Bot()
	}
	lo, okLo := subChecked(0, a.Hi)
	hi, okHi := subChecked(0, a.Lo)
	if !okLo || !okHi {
		return IntBot()
	}
	return IntRange(lo, hi)
}

// Not folds the logical negation of a: zero maps to one and any surely
// non-zero value to zero.
func Not(a Typ) Typ {
	if a.Kind == KindTop {
		return Top()
	}
	if a.Kind != KindInt {
		return Bot()
	}
	if a.IsConstant() {
		return Bool(a.Lo == 0)
	}
	if a.Lo > 0 || a.Hi < 0 {
		return Bool(false)
	}
	return BoolBot()
}

// And, Or, Xor fold the bitwise operators for constants only.

// And folds a & b.
func And(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	if a.IsConstant() && b.IsConstant() {
		return IntConst(a.Lo & b.Lo)
	}
	return IntBot()
}

// Or folds a | b.
func Or(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	if a.IsConstant() && b.IsConstant() {
		return IntConst(a.Lo | b.Lo)
	}
	return IntBot()
}

// Xor folds a ^ b.
func Xor(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	if a.IsConstant() && b.IsConstant() {
		return IntConst(a.Lo ^ b.Lo)
	}
	return IntBot()
}

// Eq folds a == b into 0/1 when the ranges decide it.
func Eq(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	if a.IsConstant() && b.IsConstant() {
		return Bool(a.Lo == b.Lo)
	}
	if a.Hi < b.Lo || b.Hi < a.Lo {
		return Bool(false)
	}
	return BoolBot()
}

// Lt folds a < b into 0/1 when the ranges decide it.
func Lt(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	if a.Hi < b.Lo {
		return Bool(true)
	}
	if a.Lo >= b.Hi {
		return Bool(false)
	}
	return BoolBot()
}

// Le folds a <= b into 0/1 when the ranges decide it.
func Le(a, b Typ) Typ {
	if t, ok := binPrelude(a, b); !ok {
		return t
	}
	if a.Hi <= b.Lo {
		return Bool(true)
	}
	if a.Lo > b.Hi {
		return Bool(false)
	}
	return BoolBot()
}

// binPrelude handles the extremes shared by every binary fold. The bool
// result is true when both operands are integer ranges and folding should
// proceed.
func binPrelude(a, b Typ) (Typ, bool) {
	if a.Kind == KindTop || b.Kind == KindTop {
		return Top(), false
	}
	if a.Kind != KindInt || b.Kind != KindInt {
		return Bot(), false
	}
	return Typ{}, true
}

func addChecked(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

func subChecked(a, b int64) (int64, bool) {
	r := a - b
	if (b > 0 && r > a) || (b < 0 && r < a) {
		return 0, false
	}
	return r, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}
