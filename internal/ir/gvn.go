package ir

import "encoding/binary"

// gvnTable hash-conses nodes by canonical shape: op tag, aux payload and
// the ordered input ids. At most one live node exists per key; a second
// construction of the same shape is answered with the first. A node
// whose inputs mutate must leave the table under its stale key before it
// can re-enter under the new one.
type gvnTable struct {
	index map[string]NodeID
	// keys remembers the key each node is filed under, so removal never
	// recomputes a key from already-mutated inputs.
	keys map[NodeID]string
}

func newGVNTable() gvnTable {
	return gvnTable{
		index: make(map[string]NodeID, 64),
		keys:  make(map[NodeID]string, 64),
	}
}

// gvnKey encodes the canonical shape of a node. Only fully-wired nodes of
// value-numbered ops get a key; everything else returns "".
func (g *Graph) gvnKey(id NodeID) string {
	n := g.Node(id)
	if !n.op.valueNumbered() {
		return ""
	}
	buf := make([]byte, 0, 9+4*len(n.ins))
	buf = append(buf, byte(n.op))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(n.aux))
	for _, in := range n.ins {
		if in == NoNode {
			return ""
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(in))
	}
	return string(buf)
}

// lookup returns the canonical live node for key, if any.
func (t *gvnTable) lookup(key string) (NodeID, bool) {
	if key == "" {
		return NoNode, false
	}
	id, ok := t.index[key]
	return id, ok
}

// insert files id under key as the canonical representative.
func (t *gvnTable) insert(key string, id NodeID) {
	if key == "" {
		return
	}
	t.index[key] = id
	t.keys[id] = key
}

// remove unfiles id, if present.
func (t *gvnTable) remove(id NodeID) {
	key, ok := t.keys[id]
	if !ok {
		return
	}
	delete(t.keys, id)
	if t.index[key] == id {
		delete(t.index, key)
	}
}
