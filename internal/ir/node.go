package ir

import (
	"riptide/internal/lattice"
)

// NodeID addresses a node slot in the graph arena. Zero means "no node"
// and doubles as the unset-input marker (e.g. a loop back-edge that has
// not been patched yet).
type NodeID uint32

// NoNode is the absent-node sentinel.
const NoNode NodeID = 0

// Node is a graph entity: an operation, its ordered inputs, the mirror
// use-set, and a cached lattice type. Nodes are owned by exactly one
// Graph and mutated only through it.
type Node struct {
	id  NodeID
	uid uint32
	op  Op
	// aux carries the per-op payload: constant value for Const,
	// element index for Proj.
	aux int64
	// ins is the ordered input list; position 0 is the controlling
	// control edge for control-dependent ops. Entries may be NoNode.
	ins []NodeID
	// outs mirrors ins across the graph: every node listing this one as
	// an input appears here, once per edge.
	outs []NodeID
	typ  lattice.Typ
}

// ID returns the node's arena slot.
func (n *Node) ID() NodeID { return n.id }

// UID returns the node's unique id. UIDs grow monotonically, are never
// recycled, and break ties deterministically during canonicalization.
func (n *Node) UID() uint32 { return n.uid }

// Op returns the operation tag.
func (n *Node) Op() Op { return n.op }

// Aux returns the per-op payload.
func (n *Node) Aux() int64 { return n.aux }

// Typ returns the cached lattice type.
func (n *Node) Typ() lattice.Typ { return n.typ }

// NumIns returns the input arity.
func (n *Node) NumIns() int { return len(n.ins) }

// In returns the input at position i, possibly NoNode.
func (n *Node) In(i int) NodeID { return n.ins[i] }

// Ins returns a copy of the input list.
func (n *Node) Ins() []NodeID {
	return append([]NodeID(nil), n.ins...)
}

// NumOuts returns the use count, counting one per edge.
func (n *Node) NumOuts() int { return len(n.outs) }

// Outs returns a copy of the use list.
func (n *Node) Outs() []NodeID {
	return append([]NodeID(nil), n.outs...)
}

// IsConstant reports whether the cached type pins a single value.
func (n *Node) IsConstant() bool { return n.typ.IsConstant() }

// IsCFG reports whether the node is part of the control flow graph.
// A Proj is control when it projects control out of an If.
func (n *Node) IsCFG(g *Graph) bool {
	if n.op == OpProj {
		src := n.ins[0]
		return src != NoNode && g.Node(src).op == OpIf
	}
	return n.op.IsCFG()
}
