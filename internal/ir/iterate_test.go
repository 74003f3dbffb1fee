package ir

import "testing"

func TestIf_ConstantPredicateFoldsAtConstruction(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	one := b.Constant(1)
	tr, fl := b.If(b.Start(), one)
	if tr != b.Start() {
		t.Fatalf("live projection of a decided branch should collapse to the incoming control")
	}

	v1 := b.Constant(10)
	v2 := b.Constant(20)
	region := b.Region(tr, fl)
	if region != b.Start() {
		t.Fatalf("merge of a decided branch should collapse to the surviving control, got node %d", region)
	}
	if g.Live(fl) {
		t.Errorf("dead projection should be pruned away")
	}
	if g.Live(one) {
		t.Errorf("predicate should be collected with the branch")
	}

	b.KillIfUnused(v2)
	ret := b.Return(region, v1)
	if got, want := Print(g, ret), "return 10;"; got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestPhi_IdenticalOperandsCollapse(t *testing.T) {
	b := NewBuilder()

	cond := param(b, 1)
	tr, fl := b.If(b.Start(), cond)
	v := b.Binary(OpAdd, param(b, 2), b.Constant(5))
	b.Keep(v)
	region := b.Region(tr, fl)
	b.Keep(region)

	if got := b.Phi(region, v, v); got != v {
		t.Fatalf("phi over one value = node %d, want %d", got, v)
	}
}

func TestPhi_DistinctOperandsSurvive(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	cond := param(b, 1)
	tr, fl := b.If(b.Start(), cond)
	region := b.Region(tr, fl)
	phi := b.Phi(region, b.Constant(10), b.Constant(20))
	ret := b.Return(region, phi)

	b.Iterate()

	if !g.Live(phi) || g.Node(phi).Op() != OpPhi {
		t.Fatalf("phi over an undecided branch must survive")
	}
	if got := g.Node(region).NumIns(); got != 2 {
		t.Errorf("region lost a live predecessor: %d left", got)
	}
	if got, want := Print(g, ret), "return Phi(10,20);"; got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestPhi_RangeOperandWidensToHull(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	cond := param(b, 1)
	tr, fl := b.If(b.Start(), cond)
	unknown := b.Binary(OpDiv, b.Constant(1), b.Constant(0))
	cmp := b.Binary(OpLt, unknown, b.Constant(5))
	region := b.Region(tr, fl)
	phi := b.Phi(region, cmp, b.Constant(1))
	ret := b.Return(region, phi)

	b.Iterate()

	if !g.Live(phi) || g.Node(phi).Op() != OpPhi {
		t.Fatalf("phi over a 0/1 range and a constant must keep the merge")
	}
	if got, want := g.Node(phi).Typ().String(), "[0..1]"; got != want {
		t.Errorf("phi typ = %s, want %s", got, want)
	}
	if got, want := Print(g, ret), "return Phi(((1/0)<5),1);"; got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestIterate_FoldsDiamondBuiltUnoptimized(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()
	b.Optimize = false

	cond := b.Constant(0)
	tr, fl := b.If(b.Start(), cond)
	v1 := b.Constant(10)
	v2 := b.Constant(20)
	region := b.Region(tr, fl)
	phi := b.Phi(region, v1, v2)
	ret := b.Return(region, phi)

	b.Optimize = true
	b.Iterate()

	if got, want := Print(g, ret), "return 20;"; got != want {
		t.Fatalf("Print = %q, want %q", got, want)
	}
	if g.Node(ret).In(0) != b.Start() {
		t.Errorf("folded branch should return straight off Start")
	}
	for _, id := range []NodeID{tr, region, phi} {
		if g.Live(id) {
			t.Errorf("node %d should have been folded away", id)
		}
	}
	_ = fl
	if got := g.NumLive(); got != 5 {
		t.Errorf("NumLive = %d, want 5 (roots, return, constant)", got)
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestIterate_Idempotent(t *testing.T) {
	b := NewBuilder()
	g := b.Graph()

	cond := param(b, 1)
	tr, fl := b.If(b.Start(), cond)
	region := b.Region(tr, fl)
	phi := b.Phi(region, b.Constant(10), b.Constant(20))
	sum := b.Binary(OpAdd, phi, param(b, 2))
	b.Return(region, sum)

	b.Iterate()
	snap := snapshot(g)
	b.Iterate()
	if got := snapshot(g); got != snap {
		t.Fatalf("second pass changed a converged graph:\nbefore: %s\nafter:  %s", snap, got)
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func snapshot(g *Graph) string {
	s := ""
	for _, id := range g.LiveIDs() {
		n := g.Node(id)
		s += Print(g, id) + ":" + n.Typ().String() + ";"
	}
	return s
}
