package ir

import "testing"

func TestGVN_SameShapeSameNode(t *testing.T) {
	b := NewBuilder()

	x := param(b, 1)
	y := param(b, 2)
	a1 := b.Binary(OpAdd, x, y)
	b.Keep(a1)
	a2 := b.Binary(OpAdd, x, y)

	if a1 != a2 {
		t.Fatalf("identical shapes numbered to distinct nodes %d and %d", a1, a2)
	}
}

func TestGVN_CommutedShapeSameNode(t *testing.T) {
	b := NewBuilder()

	x := param(b, 1)
	y := param(b, 2)
	a1 := b.Binary(OpAdd, x, y)
	b.Keep(a1)
	a2 := b.Binary(OpAdd, y, x)

	if a1 != a2 {
		t.Fatalf("commuted operands numbered to distinct nodes %d and %d", a1, a2)
	}
}

func TestGVN_RefileOnMutation(t *testing.T) {
	b := NewBuilder()

	x := param(b, 1)
	y := param(b, 2)
	z := param(b, 3)
	b.Keep(z)
	twin := b.Binary(OpAdd, x, z)
	b.Keep(twin)
	a := b.Binary(OpAdd, x, y)
	b.Keep(a)

	res := b.SetInput(a, 1, z)
	if res != twin {
		t.Fatalf("mutated node was not folded into its structural twin: got %d, want %d", res, twin)
	}
	if b.Graph().Live(a) {
		t.Errorf("superseded node should be collected")
	}
}

func TestGVN_ConstantsAreUnique(t *testing.T) {
	b := NewBuilder()

	c1 := b.Constant(42)
	b.Keep(c1)
	c2 := b.Constant(42)
	if c1 != c2 {
		t.Fatalf("constant 42 materialized twice: %d and %d", c1, c2)
	}
	if b.Constant(43) == c1 {
		t.Fatalf("distinct constants share a node")
	}
}

func TestGVN_NoNumberingWhenOptimizeOff(t *testing.T) {
	b := NewBuilder()
	b.Optimize = false

	c1 := b.Constant(7)
	b.Keep(c1)
	c2 := b.Constant(7)
	b.Keep(c2)
	if c1 == c2 {
		t.Fatalf("numbering fired with optimizations off")
	}
}
