package ir

// Per-op idealization rules. Each returns the node that should stand in
// for id, or NoNode when no rule applies. Rules never mutate id itself;
// canonicalizations build a fresh node from the same operands and let
// the peephole funnel dispose of the candidate. Rules only fire when the
// operand lattice types license them, so a rewrite can never end up less
// precise than the node it replaces.
func (b *Builder) idealize(id NodeID) NodeID {
	n := b.g.Node(id)
	switch n.op {
	case OpAdd:
		return b.idealizeAdd(n)
	case OpSub:
		return b.idealizeSub(n)
	case OpMul:
		return b.idealizeMul(n)
	case OpDiv:
		return b.idealizeDiv(n)
	case OpAnd, OpOr:
		return b.idealizeAndOr(n)
	case OpXor:
		return b.idealizeXor(n)
	case OpEq, OpLt, OpLe:
		return b.idealizeCmp(n)
	case OpNeg:
		return b.idealizeNeg(n)
	case OpProj:
		return b.idealizeProj(n)
	case OpRegion:
		return b.idealizeRegion(n)
	case OpPhi:
		return b.idealizePhi(n)
	}
	return NoNode
}

func (b *Builder) idealizeAdd(n *Node) NodeID {
	lhs, rhs := n.ins[0], n.ins[1]
	if lhs == NoNode || rhs == NoNode {
		return NoNode
	}
	// x + 0 => x
	if b.isConst(rhs, 0) {
		return lhs
	}
	// x + x => x * 2
	if lhs == rhs {
		two := b.Constant(2)
		return b.Binary(OpMul, lhs, two)
	}
	return b.canonicalize(n)
}

func (b *Builder) idealizeSub(n *Node) NodeID {
	lhs, rhs := n.ins[0], n.ins[1]
	if lhs == NoNode || rhs == NoNode {
		return NoNode
	}
	// x - 0 => x
	if b.isConst(rhs, 0) {
		return lhs
	}
	// x - x => 0
	if lhs == rhs {
		return b.Constant(0)
	}
	return NoNode
}

func (b *Builder) idealizeMul(n *Node) NodeID {
	lhs, rhs := n.ins[0], n.ins[1]
	if lhs == NoNode || rhs == NoNode {
		return NoNode
	}
	// x * 1 => x
	if b.isConst(rhs, 1) {
		return lhs
	}
	// x * 0 => 0
	if b.isConst(rhs, 0) {
		return b.Constant(0)
	}
	return b.canonicalize(n)
}

func (b *Builder) idealizeDiv(n *Node) NodeID {
	lhs, rhs := n.ins[0], n.ins[1]
	if lhs == NoNode || rhs == NoNode {
		return NoNode
	}
	// x / 1 => x
	if b.isConst(rhs, 1) {
		return lhs
	}
	return NoNode
}

func (b *Builder) idealizeAndOr(n *Node) NodeID {
	lhs, rhs := n.ins[0], n.ins[1]
	if lhs == NoNode || rhs == NoNode {
		return NoNode
	}
	// x & x => x, x | x => x
	if lhs == rhs {
		return lhs
	}
	if b.isConst(rhs, 0) {
		if n.op == OpAnd {
			// x & 0 => 0
			return b.Constant(0)
		}
		// x | 0 => x
		return lhs
	}
	return b.canonicalize(n)
}

func (b *Builder) idealizeXor(n *Node) NodeID {
	lhs, rhs := n.ins[0], n.ins[1]
	if lhs == NoNode || rhs == NoNode {
		return NoNode
	}
	// x ^ x => 0
	if lhs == rhs {
		return b.Constant(0)
	}
	// x ^ 0 => x
	if b.isConst(rhs, 0) {
		return lhs
	}
	return b.canonicalize(n)
}

func (b *Builder) idealizeCmp(n *Node) NodeID {
	lhs, rhs := n.ins[0], n.ins[1]
	if lhs == NoNode || rhs == NoNode {
		return NoNode
	}
	if lhs != rhs {
		if n.op == OpEq {
			return b.canonicalize(n)
		}
		return NoNode
	}
	switch n.op {
	case OpEq, OpLe:
		// x == x => 1, x <= x => 1
		return b.Constant(1)
	case OpLt:
		// x < x => 0
		return b.Constant(0)
	}
	return NoNode
}

func (b *Builder) idealizeNeg(n *Node) NodeID {
	x := n.ins[0]
	if x == NoNode {
		return NoNode
	}
	// -(-x) => x
	if in := b.g.Node(x); in.op == OpNeg && in.ins[0] != NoNode {
		return in.ins[0]
	}
	return NoNode
}

// idealizeProj collapses the surviving projection of a decided If to the
// If's incoming control, bypassing the branch entirely.
func (b *Builder) idealizeProj(n *Node) NodeID {
	src := n.ins[0]
	if src == NoNode {
		return NoNode
	}
	iff := b.g.Node(src)
	if iff.op != OpIf {
		return NoNode
	}
	t := iff.typ
	mine, other := t.Elem(int(n.aux)), t.Elem(int(1-n.aux))
	if mine.IsLiveCtrl() && !other.IsLiveCtrl() {
		return iff.ins[0]
	}
	return NoNode
}

// idealizeRegion prunes predecessors whose control is dead, removing the
// matching operand from every Phi hanging off the region. A region left
// with a single predecessor and no phis collapses to that predecessor.
func (b *Builder) idealizeRegion(n *Node) NodeID {
	id := n.id
	for i := len(n.ins) - 1; i >= 0; i-- {
		pred := n.ins[i]
		if pred == NoNode || b.g.Node(pred).typ.IsLiveCtrl() {
			continue
		}
		for _, use := range n.Outs() {
			if b.g.Live(use) && b.g.Node(use).op == OpPhi && b.g.Node(use).ins[0] == id {
				b.g.RemoveInput(use, i+1)
				b.enqueue(use)
			}
		}
		if !b.g.Live(id) {
			// Pruning a phi operand can cascade the region away.
			return NoNode
		}
		b.g.RemoveInput(id, i)
		b.enqueue(id)
	}
	if !b.g.Live(id) {
		return NoNode
	}
	n = b.g.Node(id)
	if len(n.ins) == 1 && n.ins[0] != NoNode && !b.hasPhiUser(id) {
		return n.ins[0]
	}
	return NoNode
}

// idealizePhi collapses a phi whose surviving operands are all the same
// value, or that has a single predecessor left.
func (b *Builder) idealizePhi(n *Node) NodeID {
	if len(n.ins) < 2 {
		return NoNode
	}
	if len(n.ins) == 2 {
		if n.ins[1] == n.id {
			return NoNode
		}
		return n.ins[1]
	}
	first := n.ins[1]
	if first == NoNode || first == n.id {
		return NoNode
	}
	for _, v := range n.ins[2:] {
		if v != first {
			return NoNode
		}
	}
	return first
}

func (b *Builder) hasPhiUser(region NodeID) bool {
	for _, use := range b.g.Node(region).Outs() {
		if b.g.Live(use) && b.g.Node(use).op == OpPhi && b.g.Node(use).ins[0] == region {
			return true
		}
	}
	return false
}

// canonicalize normalizes commutative expressions: constants move right,
// nested same-op trees hang off the left spine, constant subtrees fold
// together, and free operands order by ascending unique id so structural
// twins meet in the value-numbering table.
func (b *Builder) canonicalize(n *Node) NodeID {
	op := n.op
	if !op.isCommutative() {
		return NoNode
	}
	lhs, rhs := n.ins[0], n.ins[1]
	ln, rn := b.g.Node(lhs), b.g.Node(rhs)

	// const op x => x op const
	if ln.IsConstant() && !rn.IsConstant() {
		return b.Binary(op, rhs, lhs)
	}

	lSame, rSame := ln.op == op, rn.op == op
	switch {
	case !lSame && rSame:
		// x op (y op z) => (y op z) op x, feeding the spine rules below
		return b.Binary(op, rhs, lhs)
	case rSame:
		// (..) op (y op z) => ((..) op y) op z
		inner := b.Binary(op, lhs, rn.ins[0])
		return b.Binary(op, inner, rn.ins[1])
	case lSame:
		lr := b.g.Node(ln.ins[1])
		if lr.IsConstant() && rn.IsConstant() {
			// (x op c1) op c2 => x op (c1 op c2)
			folded := b.Binary(op, ln.ins[1], rhs)
			return b.Binary(op, ln.ins[0], folded)
		}
		if !rn.IsConstant() && lr.uid > rn.uid {
			// rotate the younger operand into the spine
			inner := b.Binary(op, ln.ins[0], rhs)
			return b.Binary(op, inner, ln.ins[1])
		}
	default:
		if !ln.IsConstant() && !rn.IsConstant() && ln.uid > rn.uid {
			return b.Binary(op, rhs, lhs)
		}
	}
	return NoNode
}

// isConst reports whether id is live with the exact constant type v.
func (b *Builder) isConst(id NodeID, v int64) bool {
	t := b.g.Node(id).typ
	return t.IsConstant() && t.Constant() == v
}
