package ir

import "fmt"

// ContractError reports a violated graph contract: killing a node that
// still has uses, wiring an edge to a dead slot, touching a root. These
// are builder or optimizer bugs, never user errors, so the graph panics
// with one and the driver aborts the compilation unit.
type ContractError struct {
	ID  NodeID
	Op  Op
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("ir: contract violation on node %d (%s): %s", e.ID, e.Op, e.Msg)
}

// LatticeError reports a rewrite or type recomputation that tried to move
// a node's type away from Bot. Indicates an unsound idealization rule.
type LatticeError struct {
	ID       NodeID
	Op       Op
	From, To string
}

func (e *LatticeError) Error() string {
	return fmt.Sprintf("ir: non-monotonic type transition on node %d (%s): %s -> %s",
		e.ID, e.Op, e.From, e.To)
}
