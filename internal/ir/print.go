package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders the expression rooted at id as source-like text, e.g.
// "return (a+2);" for a Return. Shared subtrees print in full at each
// site; a back-edge prints as a node reference to keep the walk finite.
func Print(g *Graph, id NodeID) string {
	var sb strings.Builder
	p := &printer{g: g, onPath: make(map[NodeID]bool)}
	p.node(&sb, id)
	return sb.String()
}

type printer struct {
	g      *Graph
	onPath map[NodeID]bool
}

func (p *printer) node(sb *strings.Builder, id NodeID) {
	if id == NoNode || !p.g.Live(id) {
		sb.WriteString("_")
		return
	}
	if p.onPath[id] {
		fmt.Fprintf(sb, "n%d", id)
		return
	}
	p.onPath[id] = true
	defer delete(p.onPath, id)

	n := p.g.Node(id)
	switch n.op {
	case OpConst:
		sb.WriteString(strconv.FormatInt(n.aux, 10))
	case OpAdd, OpSub, OpMul, OpDiv, OpEq, OpLt, OpLe, OpAnd, OpOr, OpXor:
		sb.WriteString("(")
		p.node(sb, n.ins[0])
		sb.WriteString(n.op.symbol())
		p.node(sb, n.ins[1])
		sb.WriteString(")")
	case OpNeg:
		sb.WriteString("(-")
		p.node(sb, n.ins[0])
		sb.WriteString(")")
	case OpNot:
		sb.WriteString("(!")
		p.node(sb, n.ins[0])
		sb.WriteString(")")
	case OpReturn:
		sb.WriteString("return ")
		p.node(sb, n.ins[1])
		sb.WriteString(";")
	case OpPhi:
		sb.WriteString("Phi(")
		for i, in := range n.ins[1:] {
			if i > 0 {
				sb.WriteString(",")
			}
			p.node(sb, in)
		}
		sb.WriteString(")")
	case OpProj:
		fmt.Fprintf(sb, "Proj%d(", n.aux)
		p.node(sb, n.ins[0])
		sb.WriteString(")")
	case OpStart, OpStop, OpRegion, OpIf, OpKeep:
		sb.WriteString(n.op.String())
	default:
		fmt.Fprintf(sb, "%v", n.op)
	}
}
