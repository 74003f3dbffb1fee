package ir

import "fmt"

// Builder is the construction API one compilation unit drives. It owns a
// graph, its value-numbering table and the dirty-node worklist, and it
// funnels every node it hands out through value numbering and the
// peephole engine so the graph stays canonical at all times.
//
// Optimize mirrors the front-end's escape hatch: with it off, nodes are
// still typed but never value-numbered or rewritten, which keeps the
// unoptimized graph inspectable.
type Builder struct {
	g        *Graph
	work     worklist
	Optimize bool
}

// NewBuilder creates a builder around a fresh graph.
func NewBuilder() *Builder {
	return &Builder{
		g:        New(),
		work:     newWorklist(),
		Optimize: true,
	}
}

// Graph exposes the underlying graph for queries and validation.
func (b *Builder) Graph() *Graph { return b.g }

// Start returns the entry control node.
func (b *Builder) Start() NodeID { return b.g.start }

// Stop returns the exit root gathering all returns.
func (b *Builder) Stop() NodeID { return b.g.stop }

// Constant makes (or reuses) the integer constant v.
func (b *Builder) Constant(v int64) NodeID {
	return b.node(OpConst, v)
}

// Binary makes a binary data node, routed through value numbering and
// the peephole engine; the returned node may be a pre-existing one or a
// simplification of the operands.
func (b *Builder) Binary(op Op, lhs, rhs NodeID) NodeID {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpEq, OpLt, OpLe, OpAnd, OpOr, OpXor:
	default:
		panic(&ContractError{Op: op, Msg: "not a binary operator"})
	}
	return b.node(op, 0, lhs, rhs)
}

// Unary makes a unary data node (Neg or Not).
func (b *Builder) Unary(op Op, x NodeID) NodeID {
	if op != OpNeg && op != OpNot {
		panic(&ContractError{Op: op, Msg: "not a unary operator"})
	}
	return b.node(op, 0, x)
}

// Region makes a control merge over the given predecessors.
func (b *Builder) Region(preds ...NodeID) NodeID {
	return b.node(OpRegion, 0, preds...)
}

// If splits control on pred and returns the true and false projections.
// When the predicate is already decided the live projection collapses to
// the incoming control and the dead one types to Top for later pruning.
func (b *Builder) If(ctrl, pred NodeID) (NodeID, NodeID) {
	iff := b.node(OpIf, 0, ctrl, pred)
	b.Keep(iff)
	t := b.node(OpProj, 0, iff)
	b.Keep(t)
	f := b.node(OpProj, 1, iff)
	b.Unkeep(t)
	b.Unkeep(iff)
	return t, f
}

// Phi makes a value merge over region's predecessors; vals[i] flows in
// over predecessor i.
func (b *Builder) Phi(region NodeID, vals ...NodeID) NodeID {
	ins := append([]NodeID{region}, vals...)
	return b.node(OpPhi, 0, ins...)
}

// Return ends the control path with val and wires the node into Stop.
func (b *Builder) Return(ctrl, val NodeID) NodeID {
	ret := b.node(OpReturn, 0, ctrl, val)
	b.g.AddInput(b.g.stop, ret)
	return ret
}

// SetInput patches input pos of id (e.g. a loop back-edge), re-files the
// node in the value-numbering table under its new shape and re-runs the
// peephole engine. The caller must adopt the returned id, which may
// differ from the one passed in.
func (b *Builder) SetInput(id NodeID, pos int, v NodeID) NodeID {
	b.g.gvn.remove(id)
	b.g.SetInput(id, pos, v)
	res := b.peephole(id)
	if res == id {
		b.enqueueOuts(id)
	}
	return res
}

// Kill removes a node the caller no longer wants. The node must be
// unused; killing a used node is the contract violation described in the
// graph documentation.
func (b *Builder) Kill(id NodeID) {
	b.g.Kill(id)
}

// KillIfUnused kills id when it is live, unused and not a root, and
// reports whether it did. Convenience for front ends discarding
// temporaries.
func (b *Builder) KillIfUnused(id NodeID) bool {
	if !b.g.Live(id) {
		return false
	}
	n := b.g.Node(id)
	if n.op.IsRoot() || n.NumOuts() > 0 {
		return false
	}
	b.g.Kill(id)
	return true
}

// Keep pins id under the keep-alive root so graph cleanup cannot collect
// it while the front end still holds the reference.
func (b *Builder) Keep(id NodeID) {
	b.g.AddInput(b.g.keep, id)
}

// Unkeep releases one pin of id without killing it; the caller is
// expected to wire or discard the node promptly.
func (b *Builder) Unkeep(id NodeID) {
	k := b.g.Node(b.g.keep)
	for i := len(k.ins) - 1; i >= 0; i-- {
		if k.ins[i] == id {
			k.ins = append(k.ins[:i], k.ins[i+1:]...)
			b.g.removeOut(id, b.g.keep)
			return
		}
	}
	panic(&ContractError{ID: id, Msg: "unkeep of a node that was not kept"})
}

// node allocates, types and canonicalizes a node in one step. This is
// the single funnel behind every public make-call.
func (b *Builder) node(op Op, aux int64, ins ...NodeID) NodeID {
	id := b.g.NewNode(op, aux, ins...)
	return b.peephole(id)
}

// peephole recomputes id's type, then tries in priority order: replace a
// constant-typed node by a Const, fold into an existing value-numbered
// twin, apply the op's idealization rules. Whatever survives is the
// canonical node the caller must use.
func (b *Builder) peephole(id NodeID) NodeID {
	b.g.refreshTyp(id)
	if !b.Optimize {
		return id
	}
	n := b.g.Node(id)
	t := n.typ

	if t.IsConstant() && n.op != OpConst {
		c := b.Constant(t.Constant())
		b.replaceWith(id, c)
		return c
	}

	key := b.g.gvnKey(id)
	if hit, ok := b.g.gvn.lookup(key); ok && hit != id {
		b.replaceWith(id, hit)
		return hit
	}
	b.g.gvn.insert(key, id)

	if x := b.idealize(id); x != NoNode && x != id {
		b.replaceWith(id, x)
		return x
	}
	return id
}

// replaceWith routes every use of old to with and disposes of old. A
// fresh candidate with no uses yet is simply killed; a node with uses is
// replaced graph-wide and the affected users are queued for another
// peephole pass.
func (b *Builder) replaceWith(old, with NodeID) {
	if old == with {
		return
	}
	b.Keep(with)
	if b.g.Node(old).NumOuts() > 0 {
		b.g.Replace(old, with)
		b.enqueueOuts(with)
		b.work.push(with)
	} else {
		b.g.gvn.remove(old)
		b.g.Kill(old)
	}
	b.Unkeep(with)
}

// enqueue marks id dirty for the global iterate phase.
func (b *Builder) enqueue(id NodeID) {
	if b.g.Live(id) {
		b.work.push(id)
	}
}

func (b *Builder) enqueueOuts(id NodeID) {
	if !b.g.Live(id) {
		return
	}
	for _, use := range b.g.Node(id).Outs() {
		b.enqueue(use)
	}
}

// MustNode returns the live node for id with a friendlier failure mode
// for front ends.
func (b *Builder) MustNode(id NodeID) *Node {
	if !b.g.Live(id) {
		panic(&ContractError{ID: id, Msg: fmt.Sprintf("builder handed out id %d but it is dead", id)})
	}
	return b.g.Node(id)
}
