package ir

import (
	"testing"
)

// param fabricates a data value the optimizer knows nothing about, the
// way a front end would project an argument out of Start.
func param(b *Builder, i int64) NodeID {
	return b.node(OpProj, i, b.g.start)
}

func mustPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", what)
		}
	}()
	fn()
}

func TestGraph_EdgeMutuality(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	x := param(b, 1)
	y := param(b, 2)
	add := b.Binary(OpAdd, x, y)
	b.Return(b.Start(), add)

	for _, id := range g.LiveIDs() {
		n := g.Node(id)
		for _, in := range n.Ins() {
			if in == NoNode {
				continue
			}
			found := false
			for _, use := range g.Node(in).Outs() {
				if use == id {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("node %d has input %d but %d does not list it as a use", id, in, in)
			}
		}
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestGraph_SetInputKillsLastUse(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	x := param(b, 1)
	y := param(b, 2)
	z := param(b, 3)
	b.Keep(x)
	b.Keep(z)
	add := b.Binary(OpAdd, x, y)
	b.Keep(add)

	res := b.SetInput(add, 1, z)
	if !g.Live(res) {
		t.Fatalf("rewired node died")
	}
	if g.Live(y) {
		t.Errorf("old input should be collected once its last use is gone")
	}
	n := g.Node(res)
	if n.In(0) != x || n.In(1) != z {
		t.Errorf("inputs = (%d,%d), want (%d,%d)", n.In(0), n.In(1), x, z)
	}
}

func TestGraph_KillCascades(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	x := param(b, 1)
	neg := b.Unary(OpNeg, x)

	b.Kill(neg)
	if g.Live(neg) {
		t.Fatalf("killed node still live")
	}
	if g.Live(x) {
		t.Errorf("input with no remaining uses should cascade")
	}
	if !g.Live(b.Start()) {
		t.Errorf("roots must survive every cascade")
	}
}

func TestGraph_ContractViolationsPanic(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	x := param(b, 1)
	neg := b.Unary(OpNeg, x)
	b.Keep(neg)

	mustPanic(t, "kill of a used node", func() { g.Kill(x) })
	mustPanic(t, "kill of a root", func() { g.Kill(b.Start()) })
	mustPanic(t, "input position out of range", func() { g.SetInput(neg, 5, x) })

	b.Unkeep(neg)
	b.Kill(neg)
	mustPanic(t, "access to a dead node", func() { g.Node(neg) })
}

func TestGraph_ReplaceRejectsDependentReplacement(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	x := param(b, 1)
	neg := b.Unary(OpNeg, x)
	b.Keep(neg)

	mustPanic(t, "replacement using the replaced node", func() { g.Replace(x, neg) })
}

func TestGraph_ReachableIsInputClosure(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	x := param(b, 1)
	add := b.Binary(OpAdd, x, b.Constant(2))
	ret := b.Return(b.Start(), add)

	dangling := param(b, 9)
	b.Keep(dangling)

	reach := make(map[NodeID]bool)
	for _, id := range g.Reachable() {
		reach[id] = true
	}
	for _, id := range []NodeID{g.Stop(), ret, add, x, b.Start()} {
		if !reach[id] {
			t.Errorf("node %d should be reachable from Stop", id)
		}
	}
	if reach[dangling] {
		t.Errorf("pinned scratch node must not be reachable from Stop")
	}
}
