// Package snapshot serializes a graph to msgpack so a backend or an
// external tool can consume the optimizer's output without linking the
// compiler.
package snapshot

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"riptide/internal/ir"
)

// FormatVersion is bumped on any incompatible layout change.
const FormatVersion = 1

// Node is the wire form of one graph node.
type Node struct {
	ID  uint32   `msgpack:"id"`
	Op  string   `msgpack:"op"`
	Aux int64    `msgpack:"aux"`
	Ins []uint32 `msgpack:"ins"`
	Typ string   `msgpack:"typ"`
}

// Graph is the wire form of a whole live graph.
type Graph struct {
	Version int    `msgpack:"version"`
	Start   uint32 `msgpack:"start"`
	Stop    uint32 `msgpack:"stop"`
	Nodes   []Node `msgpack:"nodes"`
}

// Encode writes every live node of g in slot order.
func Encode(w io.Writer, g *ir.Graph) error {
	out := Graph{
		Version: FormatVersion,
		Start:   uint32(g.Start()),
		Stop:    uint32(g.Stop()),
	}
	ids := g.LiveIDs()
	out.Nodes = make([]Node, 0, len(ids))
	for _, id := range ids {
		n := g.Node(id)
		ins := make([]uint32, n.NumIns())
		for i, in := range n.Ins() {
			ins[i] = uint32(in)
		}
		out.Nodes = append(out.Nodes, Node{
			ID:  uint32(id),
			Op:  n.Op().String(),
			Aux: n.Aux(),
			Ins: ins,
			Typ: n.Typ().String(),
		})
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Decode reads a graph snapshot back into its wire form.
func Decode(r io.Reader) (*Graph, error) {
	dec := msgpack.NewDecoder(r)
	var g Graph
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if g.Version != FormatVersion {
		return nil, fmt.Errorf("snapshot: unsupported version %d, want %d", g.Version, FormatVersion)
	}
	return &g, nil
}
