package ir

import (
	"fmt"

	"fortio.org/safecast"

	"riptide/internal/lattice"
)

// Graph is the arena of live nodes for one compilation unit. It owns the
// node slots, the id allocator and the value-numbering table, and it
// maintains the edge-mutuality and eager dead-code invariants across
// every mutation.
//
// A Graph is single-threaded by design: one builder context drives it for
// the lifetime of a unit and nothing is shared across units.
type Graph struct {
	// nodes is indexed by NodeID; slot 0 is reserved so NoNode stays
	// unambiguous. A nil entry is a free slot.
	nodes   []*Node
	free    []NodeID
	nextUID uint32
	gvn     gvnTable

	start NodeID
	stop  NodeID
	keep  NodeID
}

// New creates an empty graph holding only the three roots: Start, Stop
// and the keep-alive pin.
func New() *Graph {
	g := &Graph{
		nodes:   make([]*Node, 1, 32),
		nextUID: 1,
		gvn:     newGVNTable(),
	}
	g.start = g.NewNode(OpStart, 0)
	g.stop = g.NewNode(OpStop, 0)
	g.keep = g.NewNode(OpKeep, 0)
	g.setTyp(g.start, lattice.Ctrl())
	g.setTyp(g.stop, lattice.Bot())
	g.setTyp(g.keep, lattice.Bot())
	return g
}

// Start returns the entry root.
func (g *Graph) Start() NodeID { return g.start }

// Stop returns the exit root.
func (g *Graph) Stop() NodeID { return g.stop }

// Keep returns the keep-alive root.
func (g *Graph) Keep() NodeID { return g.keep }

// NewNode allocates a node with the given op, payload and inputs, wires
// the mirror edges and caches the optimistic Top type. The node is not
// value-numbered or simplified; that is the Builder's job.
func (g *Graph) NewNode(op Op, aux int64, ins ...NodeID) NodeID {
	var id NodeID
	if n := len(g.free); n > 0 {
		id = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		slot, err := safecast.Conv[uint32](len(g.nodes))
		if err != nil {
			panic(fmt.Errorf("ir: node arena overflow: %w", err))
		}
		id = NodeID(slot)
		g.nodes = append(g.nodes, nil)
	}
	node := &Node{
		id:  id,
		uid: g.nextUID,
		op:  op,
		aux: aux,
		ins: append([]NodeID(nil), ins...),
		typ: lattice.Top(),
	}
	g.nextUID++
	g.nodes[id] = node
	for _, in := range ins {
		if in != NoNode {
			g.addOut(in, id)
		}
	}
	return id
}

// Live reports whether id addresses a live node.
func (g *Graph) Live(id NodeID) bool {
	return id != NoNode && int(id) < len(g.nodes) && g.nodes[id] != nil
}

// Node returns the live node for id. Addressing a dead or out-of-range
// slot is a contract violation.
func (g *Graph) Node(id NodeID) *Node {
	if !g.Live(id) {
		panic(&ContractError{ID: id, Msg: "access to dead or invalid node"})
	}
	return g.nodes[id]
}

// NumLive returns the number of live nodes, roots included.
func (g *Graph) NumLive() int {
	count := 0
	for _, n := range g.nodes {
		if n != nil {
			count++
		}
	}
	return count
}

// LiveIDs returns all live node ids in slot order.
func (g *Graph) LiveIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for i, n := range g.nodes {
		if n != nil {
			ids = append(ids, NodeID(i)) //nolint:gosec // G115: bounded by arena length
		}
	}
	return ids
}

// SetInput rewires input position pos of id to v (possibly NoNode),
// updating the mirror edges and eagerly killing the old input if this was
// its last use. The caller is responsible for re-value-numbering id.
func (g *Graph) SetInput(id NodeID, pos int, v NodeID) {
	n := g.Node(id)
	if pos < 0 || pos >= len(n.ins) {
		panic(&ContractError{ID: id, Op: n.op, Msg: fmt.Sprintf("input position %d out of range", pos)})
	}
	if v != NoNode && !g.Live(v) {
		panic(&ContractError{ID: id, Op: n.op, Msg: fmt.Sprintf("wiring edge to dead node %d", v)})
	}
	old := n.ins[pos]
	if old == v {
		return
	}
	n.ins[pos] = v
	if v != NoNode {
		g.addOut(v, id)
	}
	if old != NoNode {
		g.removeOut(old, id)
		g.maybeKill(old)
	}
}

// AddInput appends v to id's input list.
func (g *Graph) AddInput(id NodeID, v NodeID) {
	n := g.Node(id)
	if v != NoNode && !g.Live(v) {
		panic(&ContractError{ID: id, Op: n.op, Msg: fmt.Sprintf("wiring edge to dead node %d", v)})
	}
	n.ins = append(n.ins, v)
	if v != NoNode {
		g.addOut(v, id)
	}
}

// RemoveInput deletes input position pos of id, shifting later inputs
// down. Used when pruning a dead Region predecessor together with the
// matching Phi operand.
func (g *Graph) RemoveInput(id NodeID, pos int) {
	n := g.Node(id)
	if pos < 0 || pos >= len(n.ins) {
		panic(&ContractError{ID: id, Op: n.op, Msg: fmt.Sprintf("input position %d out of range", pos)})
	}
	old := n.ins[pos]
	n.ins = append(n.ins[:pos], n.ins[pos+1:]...)
	if old != NoNode {
		g.removeOut(old, id)
		g.maybeKill(old)
	}
}

// Kill removes a node with no remaining uses, tears down its input edges
// and cascades into any input that just lost its last use. Killing a
// node that is still used, or a root, is a contract violation.
func (g *Graph) Kill(id NodeID) {
	n := g.Node(id)
	if n.op.IsRoot() {
		panic(&ContractError{ID: id, Op: n.op, Msg: "kill of a root node"})
	}
	if len(n.outs) > 0 {
		panic(&ContractError{ID: id, Op: n.op, Msg: fmt.Sprintf("kill with %d live uses", len(n.outs))})
	}
	g.gvn.remove(id)
	ins := n.ins
	n.ins = nil
	g.nodes[id] = nil
	g.free = append(g.free, id)
	for _, in := range ins {
		if in == NoNode || !g.Live(in) {
			continue
		}
		g.removeOut(in, id)
		g.maybeKill(in)
	}
}

// Replace rewires every use of old to with, then kills old. The
// replacement must not be a user of old, and rewired users fall out of
// the value-numbering table; the builder re-numbers them via the
// worklist.
func (g *Graph) Replace(old, with NodeID) {
	if old == with {
		return
	}
	oldNode := g.Node(old)
	withNode := g.Node(with)
	if oldNode.op.IsRoot() {
		panic(&ContractError{ID: old, Op: oldNode.op, Msg: "replace of a root node"})
	}
	for _, in := range withNode.ins {
		if in == old {
			panic(&ContractError{ID: with, Op: withNode.op, Msg: "replacement uses the node it replaces"})
		}
	}
	for _, use := range oldNode.Outs() {
		if !g.Live(use) {
			continue
		}
		u := g.nodes[use]
		g.gvn.remove(use)
		for i, in := range u.ins {
			if in == old {
				u.ins[i] = with
				g.addOut(with, use)
				g.removeOut(old, use)
			}
		}
		// Re-file the rewired user under its new shape. If the slot is
		// taken a structural twin already exists; the iterate phase
		// merges the pair when it drains the worklist.
		if key := g.gvnKey(use); key != "" {
			if _, ok := g.gvn.lookup(key); !ok {
				g.gvn.insert(key, use)
			}
		}
	}
	g.maybeKill(old)
}

// setTyp updates the cached type, enforcing monotone movement toward Bot.
func (g *Graph) setTyp(id NodeID, t lattice.Typ) {
	n := g.Node(id)
	if !n.typ.TransitionAllowed(t) {
		panic(&LatticeError{ID: id, Op: n.op, From: n.typ.String(), To: t.String()})
	}
	n.typ = t
}

func (g *Graph) addOut(def, use NodeID) {
	n := g.Node(def)
	n.outs = append(n.outs, use)
}

// removeOut drops one occurrence of use from def's use list, scanning
// from the back so repeated edges unwind in reverse order of creation.
func (g *Graph) removeOut(def, use NodeID) {
	n := g.Node(def)
	for i := len(n.outs) - 1; i >= 0; i-- {
		if n.outs[i] == use {
			n.outs = append(n.outs[:i], n.outs[i+1:]...)
			return
		}
	}
	panic(&ContractError{ID: def, Op: n.op, Msg: fmt.Sprintf("use %d missing from use list", use)})
}

// maybeKill kills id if it just became dead: zero uses and not a root.
// This is the eager dead-code elimination the graph promises after every
// mutation.
func (g *Graph) maybeKill(id NodeID) {
	if !g.Live(id) {
		return
	}
	n := g.nodes[id]
	if len(n.outs) == 0 && !n.op.IsRoot() {
		g.Kill(id)
	}
}

// Reachable returns the ids of every node reachable from Stop through
// input edges, in deterministic slot order. This is the query surface a
// backend walks.
func (g *Graph) Reachable() []NodeID {
	seen := make(map[NodeID]bool, len(g.nodes))
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if id == NoNode || seen[id] || !g.Live(id) {
			return
		}
		seen[id] = true
		for _, in := range g.nodes[id].ins {
			walk(in)
		}
	}
	walk(g.stop)
	ids := make([]NodeID, 0, len(seen))
	for i := range g.nodes {
		id := NodeID(i) //nolint:gosec // G115: bounded by arena length
		if seen[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
