package ir

// Op enumerates node operations. The set is closed: every op carries its
// own type-computation and idealization rules in typer.go and peephole.go.
type Op uint8

const (
	// OpStart is the graph entry; root, never killed.
	OpStart Op = iota
	// OpStop is the graph exit gathering every Return; root, never killed.
	OpStop
	// OpRegion merges control flow from its predecessors.
	OpRegion
	// OpIf splits control on a predicate; consumed through projections.
	OpIf
	// OpProj selects one element of a tuple-typed producer. Aux holds the
	// element index.
	OpProj
	// OpReturn ends a control path with a value.
	OpReturn
	// OpPhi merges data values along Region predecessors.
	OpPhi
	// OpConst is an integer constant. Aux holds the value.
	OpConst
	// OpAdd through OpXor are the binary data operators.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
	OpLe
	OpAnd
	OpOr
	OpXor
	// OpNeg is arithmetic negation.
	OpNeg
	// OpNot is logical negation.
	OpNot
	// OpKeep pins nodes the builder still holds references to; root,
	// never killed, never optimized.
	OpKeep
)

var opNames = [...]string{
	OpStart:  "Start",
	OpStop:   "Stop",
	OpRegion: "Region",
	OpIf:     "If",
	OpProj:   "Proj",
	OpReturn: "Return",
	OpPhi:    "Phi",
	OpConst:  "Const",
	OpAdd:    "Add",
	OpSub:    "Sub",
	OpMul:    "Mul",
	OpDiv:    "Div",
	OpEq:     "Eq",
	OpLt:     "Lt",
	OpLe:     "Le",
	OpAnd:    "And",
	OpOr:     "Or",
	OpXor:    "Xor",
	OpNeg:    "Neg",
	OpNot:    "Not",
	OpKeep:   "Keep",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "Op?"
}

// IsCFG reports whether the op lives on the control side of the graph.
// Projections are control when they project an If.
func (op Op) IsCFG() bool {
	switch op {
	case OpStart, OpStop, OpRegion, OpIf, OpReturn:
		return true
	}
	return false
}

// IsRoot reports whether the op anchors liveness: roots are never killed
// and never replaced.
func (op Op) IsRoot() bool {
	return op == OpStart || op == OpStop || op == OpKeep
}

// valueNumbered reports whether nodes of this op participate in global
// value numbering. Control merges, roots and Phi stay out: their identity
// is positional, not structural.
func (op Op) valueNumbered() bool {
	switch op {
	case OpConst, OpProj, OpAdd, OpSub, OpMul, OpDiv,
		OpEq, OpLt, OpLe, OpAnd, OpOr, OpXor, OpNeg, OpNot:
		return true
	}
	return false
}

// isCommutative reports whether operand order is free to canonicalize.
func (op Op) isCommutative() bool {
	switch op {
	case OpAdd, OpMul, OpEq, OpAnd, OpOr, OpXor:
		return true
	}
	return false
}

// symbol returns the infix spelling used by the printer and DOT output.
func (op Op) symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	}
	return op.String()
}
