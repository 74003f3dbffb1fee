package ir

import (
	"errors"
	"fmt"
)

// Validate checks graph invariants.
// Returns an error joining every violation found, nil when the graph is
// well formed. Intended for test checkpoints and debug builds; the graph
// maintains these invariants by construction.
func Validate(g *Graph) error {
	if g == nil {
		return nil
	}
	var errs []error

	// 1. Roots exist and carry the right ops
	if err := validateRoots(g); err != nil {
		errs = append(errs, err)
	}

	// 2. Edge mutuality in both directions, with multiplicity
	if err := validateEdges(g); err != nil {
		errs = append(errs, err)
	}

	// 3. Value-numbering table consistency and shape uniqueness
	if err := validateGVN(g); err != nil {
		errs = append(errs, err)
	}

	// 4. Eager dead-code: no unused non-root survives a mutation
	if err := validateNoOrphans(g); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateRoots(g *Graph) error {
	var errs []error
	check := func(id NodeID, op Op) {
		if !g.Live(id) {
			errs = append(errs, fmt.Errorf("root %v (node %d) is dead", op, id))
			return
		}
		if got := g.nodes[id].op; got != op {
			errs = append(errs, fmt.Errorf("root node %d: want op %v, got %v", id, op, got))
		}
	}
	check(g.start, OpStart)
	check(g.stop, OpStop)
	check(g.keep, OpKeep)
	return errors.Join(errs...)
}

// validateEdges checks that every input edge has a matching use edge and
// vice versa, counting duplicates: a node using x twice must appear twice
// in x's use list.
func validateEdges(g *Graph) error {
	var errs []error
	for _, id := range g.LiveIDs() {
		n := g.nodes[id]
		for pos, in := range n.ins {
			if in == NoNode {
				continue
			}
			if !g.Live(in) {
				errs = append(errs, fmt.Errorf("node %d (%v): input %d points at dead node %d", id, n.op, pos, in))
				continue
			}
			want := countIns(n, in)
			if got := countOuts(g.nodes[in], id); got != want {
				errs = append(errs, fmt.Errorf("node %d (%v): %d input edges to node %d but %d use edges back", id, n.op, want, in, got))
			}
		}
		for _, use := range n.outs {
			if !g.Live(use) {
				errs = append(errs, fmt.Errorf("node %d (%v): use list names dead node %d", id, n.op, use))
				continue
			}
			if countIns(g.nodes[use], id) == 0 {
				errs = append(errs, fmt.Errorf("node %d (%v): use list names node %d which has no matching input", id, n.op, use))
			}
		}
	}
	return errors.Join(errs...)
}

func validateGVN(g *Graph) error {
	var errs []error
	for key, id := range g.gvn.index {
		if !g.Live(id) {
			errs = append(errs, fmt.Errorf("value table entry points at dead node %d", id))
			continue
		}
		if filed := g.gvn.keys[id]; filed != key {
			errs = append(errs, fmt.Errorf("node %d filed under mismatched value-table keys", id))
		}
	}
	if len(g.gvn.index) == 0 {
		// Value numbering never ran (optimizations off); shape
		// uniqueness is not promised.
		return errors.Join(errs...)
	}
	seen := make(map[string]NodeID)
	for _, id := range g.LiveIDs() {
		key := g.gvnKey(id)
		if key == "" {
			continue
		}
		if prev, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("nodes %d and %d share the same value-numbered shape (%v)", prev, id, g.nodes[id].op))
			continue
		}
		seen[key] = id
	}
	return errors.Join(errs...)
}

func validateNoOrphans(g *Graph) error {
	var errs []error
	for _, id := range g.LiveIDs() {
		n := g.nodes[id]
		if len(n.outs) == 0 && !n.op.IsRoot() {
			errs = append(errs, fmt.Errorf("node %d (%v) has no uses but was not collected", id, n.op))
		}
	}
	return errors.Join(errs...)
}

func countIns(n *Node, in NodeID) int {
	c := 0
	for _, x := range n.ins {
		if x == in {
			c++
		}
	}
	return c
}

func countOuts(n *Node, use NodeID) int {
	c := 0
	for _, x := range n.outs {
		if x == use {
			c++
		}
	}
	return c
}
