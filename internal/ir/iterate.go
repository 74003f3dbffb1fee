package ir

// worklist is the dirty-node queue the global iterate phase drains. FIFO
// order with a pending set keeps each node queued at most once and makes
// the pass deterministic for a given construction order.
type worklist struct {
	queue   []NodeID
	pending map[NodeID]bool
}

func newWorklist() worklist {
	return worklist{pending: make(map[NodeID]bool, 64)}
}

func (w *worklist) push(id NodeID) {
	if w.pending[id] {
		return
	}
	w.pending[id] = true
	w.queue = append(w.queue, id)
}

func (w *worklist) pop() (NodeID, bool) {
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		delete(w.pending, id)
		return id, true
	}
	return NoNode, false
}

func (w *worklist) empty() bool { return len(w.queue) == 0 }

// Iterate drives the whole graph to a fixpoint: every live node is
// re-typed and re-simplified until no type changes and no rewrite fires.
// Types move monotonically toward Bot, the node count never grows past
// the rewrites already applied, so the pass terminates; running it again
// on a converged graph changes nothing.
func (b *Builder) Iterate() {
	for _, id := range b.g.LiveIDs() {
		b.work.push(id)
	}
	for {
		id, ok := b.work.pop()
		if !ok {
			return
		}
		if !b.g.Live(id) {
			continue
		}
		old := b.g.Node(id).typ
		res := b.peephole(id)
		if res != id {
			// Replaced; affected users were queued by the funnel.
			continue
		}
		if !b.g.Live(id) {
			continue
		}
		if !b.g.Node(id).typ.Equal(old) {
			b.enqueueOuts(id)
		}
	}
}
