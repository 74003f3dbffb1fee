// Package dotvis renders a graph as Graphviz DOT for debugging and the
// '#showGraph' directive.
package dotvis

import (
	"fmt"
	"strings"

	"riptide/internal/ir"
)

// Render writes the whole live graph as a DOT digraph. The source text,
// when provided, is embedded as a leading comment.
func Render(g *ir.Graph, src string) string {
	var sb strings.Builder
	sb.WriteString("digraph riptide {\n")
	if src != "" {
		sb.WriteString("/*\n")
		sb.WriteString(src)
		sb.WriteString("\n*/\n")
	}
	// rankdir=BT keeps defs below uses; ordering=in preserves the input
	// order so operand positions stay readable.
	sb.WriteString("\trankdir=BT;\n")
	sb.WriteString("\tordering=\"in\";\n")
	sb.WriteString("\tconcentrate=\"true\";\n")

	sb.WriteString("\tsubgraph cluster_Nodes {\n")
	for _, id := range g.LiveIDs() {
		n := g.Node(id)
		fmt.Fprintf(&sb, "\t\tNode_%d [ ", id)
		if n.IsCFG(g) {
			sb.WriteString("shape=box style=filled fillcolor=yellow ")
		}
		fmt.Fprintf(&sb, "label=%q ];\n", label(n))
	}
	sb.WriteString("\t}\n")

	sb.WriteString("\tedge [ fontname=Helvetica, fontsize=8 ];\n")
	for _, id := range g.LiveIDs() {
		n := g.Node(id)
		for i, in := range n.Ins() {
			if in == ir.NoNode {
				continue
			}
			fmt.Fprintf(&sb, "\tNode_%d -> Node_%d[taillabel=%d", id, in, i)
			if g.Node(in).IsCFG(g) {
				sb.WriteString(" color=red")
			}
			sb.WriteString("];\n")
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func label(n *ir.Node) string {
	switch n.Op() {
	case ir.OpConst:
		return fmt.Sprintf("#%d", n.Aux())
	case ir.OpProj:
		return fmt.Sprintf("Proj%d", n.Aux())
	default:
		return n.Op().String()
	}
}
