package ir

import (
	"riptide/internal/lattice"
)

// computeTyp evaluates a node's type from its current inputs. Unset
// inputs contribute Top, keeping unfinished graph regions optimistic.
// The caller meets the result with the cached type so the per-node
// sequence of types stays monotone even when an input refinement would
// otherwise resurrect a branch.
func (g *Graph) computeTyp(id NodeID) lattice.Typ {
	n := g.Node(id)
	switch n.op {
	case OpConst:
		return lattice.IntConst(n.aux)
	case OpStart:
		return lattice.Ctrl()
	case OpStop, OpKeep:
		return lattice.Bot()
	case OpReturn:
		if g.inTyp(n, 0).IsLiveCtrl() {
			return lattice.Ctrl()
		}
		return lattice.Top()
	case OpRegion:
		for _, in := range n.ins {
			if in != NoNode && g.Node(in).typ.IsLiveCtrl() {
				return lattice.Ctrl()
			}
		}
		return lattice.Top()
	case OpIf:
		return g.ifTyp(n)
	case OpProj:
		src := n.ins[0]
		if src == NoNode {
			return lattice.Top()
		}
		return g.Node(src).typ.Elem(int(n.aux))
	case OpPhi:
		return g.phiTyp(n)
	case OpAdd:
		return lattice.Add(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpSub:
		return lattice.Sub(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpMul:
		return lattice.Mul(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpDiv:
		return lattice.Div(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpEq:
		return lattice.Eq(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpLt:
		return lattice.Lt(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpLe:
		return lattice.Le(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpAnd:
		return lattice.And(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpOr:
		return lattice.Or(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpXor:
		return lattice.Xor(g.inTyp(n, 0), g.inTyp(n, 1))
	case OpNeg:
		return lattice.Neg(g.inTyp(n, 0))
	case OpNot:
		return lattice.Not(g.inTyp(n, 0))
	}
	return lattice.Bot()
}

// ifTyp types an If as a 2-tuple of branch controls: element 0 is the
// true side, element 1 the false side. A branch is live when the
// predicate's range admits a value selecting it; a dead branch stays Top
// and downstream Region pruning removes it.
func (g *Graph) ifTyp(n *Node) lattice.Typ {
	dead := lattice.TupleOf(lattice.Top(), lattice.Top())
	if !g.inTyp(n, 0).IsLiveCtrl() {
		return dead
	}
	pred := g.inTyp(n, 1)
	switch pred.Kind {
	case lattice.KindTop:
		return dead
	case lattice.KindInt:
		truthy := pred.Lo != 0 || pred.Hi != 0
		falsy := pred.Lo <= 0 && pred.Hi >= 0
		return lattice.TupleOf(branchCtrl(truthy), branchCtrl(falsy))
	default:
		return lattice.TupleOf(lattice.Ctrl(), lattice.Ctrl())
	}
}

func branchCtrl(live bool) lattice.Typ {
	if live {
		return lattice.Ctrl()
	}
	return lattice.Top()
}

// phiTyp joins the data inputs arriving over live predecessors: the
// result must admit every value any surviving path can deliver, so
// ranges widen to their hull. Input 0 is the Region; value input i pairs
// with predecessor i-1. Dropping a dead path shrinks the hull, which is
// a move toward Bot, so the refresh clamp never fires here.
func (g *Graph) phiTyp(n *Node) lattice.Typ {
	region := n.ins[0]
	if region == NoNode || !g.Node(region).typ.IsLiveCtrl() {
		return lattice.Top()
	}
	r := g.Node(region)
	t := lattice.Bot()
	for i := 1; i < len(n.ins); i++ {
		if pi := i - 1; pi < len(r.ins) {
			pred := r.ins[pi]
			if pred == NoNode || !g.Node(pred).typ.IsLiveCtrl() {
				continue
			}
		}
		t = t.Join(g.inTyp(n, i))
	}
	return t
}

// inTyp returns the type of input i, Top when the slot is unset.
func (g *Graph) inTyp(n *Node, i int) lattice.Typ {
	if i >= len(n.ins) || n.ins[i] == NoNode {
		return lattice.Top()
	}
	return g.Node(n.ins[i]).typ
}

// refreshTyp recomputes and caches id's type, returning whether it
// changed. The meet with the old value enforces invariant 4: types only
// ever move toward Bot.
func (g *Graph) refreshTyp(id NodeID) bool {
	n := g.Node(id)
	old := n.typ
	t := g.computeTyp(id).Meet(old)
	if t.Equal(old) {
		return false
	}
	g.setTyp(id, t)
	return true
}
