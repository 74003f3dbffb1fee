// Package lattice implements the value-type lattice the optimizer computes
// over. Values are immutable and compared structurally; they carry no
// reference to the node graph.
//
// The precision order runs from Top ("could still be any of several
// constants, narrows during analysis") down to Bot ("preserve as written,
// give up refining"). Integers sit between the two as inclusive ranges:
// a constant c is the range [c,c] and is below every range containing it.
// Meet is range intersection (empty intersection falls to Bot), Join is the
// range hull.
package lattice

import (
	"math"
	"strconv"
)

// Kind discriminates lattice values.
type Kind uint8

const (
	// KindTop is the optimistic extreme: unconstrained, may still narrow.
	KindTop Kind = iota
	// KindBot is the pessimistic extreme: no further refinement possible.
	KindBot
	// KindCtrl marks live control flow. Dead control is represented as Top.
	KindCtrl
	// KindInt is an inclusive integer range; a constant has Lo == Hi.
	KindInt
	// KindTuple is a product of lattice values, consumed by projections.
	KindTuple
)

// Typ is an immutable lattice value.
type Typ struct {
	Kind   Kind
	Lo, Hi int64
	Elems  []Typ
}

// Top returns the optimistic extreme.
func Top() Typ { return Typ{Kind: KindTop} }

// Bot returns the pessimistic extreme.
func Bot() Typ { return Typ{Kind: KindBot} }

// Ctrl returns the live-control marker.
func Ctrl() Typ { return Typ{Kind: KindCtrl} }

// IntConst returns the integer constant c, i.e. the range [c,c].
func IntConst(c int64) Typ { return Typ{Kind: KindInt, Lo: c, Hi: c} }

// IntRange returns the inclusive range [lo,hi]. Panics when lo > hi;
// an empty range is not a value, it is Bot.
func IntRange(lo, hi int64) Typ {
	if lo > hi {
		panic("lattice: empty range")
	}
	return Typ{Kind: KindInt, Lo: lo, Hi: hi}
}

// IntBot returns the full integer range.
func IntBot() Typ { return IntRange(math.MinInt64, math.MaxInt64) }

// Bool returns the 0/1 encoding of b. Booleans are integers here; the
// distilled lattice has no separate boolean kind.
func Bool(b bool) Typ {
	if b {
		return IntConst(1)
	}
	return IntConst(0)
}

// BoolBot returns the range [0,1], an unknown truth value.
func BoolBot() Typ { return IntRange(0, 1) }

// TupleOf returns a tuple of the given element values.
func TupleOf(elems ...Typ) Typ { return Typ{Kind: KindTuple, Elems: elems} }

// Equal reports structural equality.
func (t Typ) Equal(o Typ) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindInt:
		return t.Lo == o.Lo && t.Hi == o.Hi
	case KindTuple:
		if len(t.Elems) != len(o.Elems) {
			return false
		}
		for i := range t.Elems {
			if !t.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// IsConstant reports whether t pins down a single integer value.
func (t Typ) IsConstant() bool {
	return t.Kind == KindInt && t.Lo == t.Hi
}

// Constant returns the single value of a constant type.
// Panics when t is not constant.
func (t Typ) Constant() int64 {
	if !t.IsConstant() {
		panic("lattice: not a constant")
	}
	return t.Lo
}

// IsLiveCtrl reports whether t denotes reachable control flow.
func (t Typ) IsLiveCtrl() bool { return t.Kind == KindCtrl || t.Kind == KindBot }

// Elem returns the i-th tuple element. Non-tuple extremes project to
// themselves so a projection off a dead If stays Top.
func (t Typ) Elem(i int) Typ {
	switch t.Kind {
	case KindTuple:
		if i < 0 || i >= len(t.Elems) {
			return Bot()
		}
		return t.Elems[i]
	case KindTop:
		return Top()
	default:
		return Bot()
	}
}

// Meet returns the greatest value that is below both t and o.
func (t Typ) Meet(o Typ) Typ {
	switch {
	case t.Equal(o):
		return t
	case t.Kind == KindTop:
		return o
	case o.Kind == KindTop:
		return t
	case t.Kind == KindBot || o.Kind == KindBot:
		return Bot()
	case t.Kind != o.Kind:
		return Bot()
	}
	switch t.Kind {
	case KindCtrl:
		return Ctrl()
	case KindInt:
		lo, hi := max64(t.Lo, o.Lo), min64(t.Hi, o.Hi)
		if lo > hi {
			return Bot()
		}
		return IntRange(lo, hi)
	case KindTuple:
		if len(t.Elems) != len(o.Elems) {
			return Bot()
		}
		elems := make([]Typ, len(t.Elems))
		for i := range t.Elems {
			elems[i] = t.Elems[i].Meet(o.Elems[i])
		}
		return TupleOf(elems...)
	}
	return Bot()
}

// Join returns the least value that is above both t and o.
func (t Typ) Join(o Typ) Typ {
	switch {
	case t.Equal(o):
		return t
	case t.Kind == KindBot:
		return o
	case o.Kind == KindBot:
		return t
	case t.Kind == KindTop || o.Kind == KindTop:
		return Top()
	case t.Kind != o.Kind:
		return Top()
	}
	switch t.Kind {
	case KindCtrl:
		return Ctrl()
	case KindInt:
		return IntRange(min64(t.Lo, o.Lo), max64(t.Hi, o.Hi))
	case KindTuple:
		if len(t.Elems) != len(o.Elems) {
			return Top()
		}
		elems := make([]Typ, len(t.Elems))
		for i := range t.Elems {
			elems[i] = t.Elems[i].Join(o.Elems[i])
		}
		return TupleOf(elems...)
	}
	return Top()
}

// IsSubtype reports whether t is below o, i.e. Meet(t,o) == t.
func (t Typ) IsSubtype(o Typ) bool {
	return t.Meet(o).Equal(t)
}

// TransitionAllowed reports whether a node's cached type may move from t
// to o. Types only refine toward Bot; anything else is a monotonicity
// violation in the optimizer.
func (t Typ) TransitionAllowed(o Typ) bool {
	return o.IsSubtype(t)
}

func (t Typ) String() string {
	switch t.Kind {
	case KindTop:
		return "Top"
	case KindBot:
		return "Bot"
	case KindCtrl:
		return "Ctrl"
	case KindInt:
		if t.IsConstant() {
			return strconv.FormatInt(t.Lo, 10)
		}
		if t.Equal(IntBot()) {
			return "Int"
		}
		return "[" + strconv.FormatInt(t.Lo, 10) + ".." + strconv.FormatInt(t.Hi, 10) + "]"
	case KindTuple:
		s := "("
		for i, e := range t.Elems {
			if i > 0 {
				s += ","
			}
			s += e.String()
		}
		return s + ")"
	}
	return "?"
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
