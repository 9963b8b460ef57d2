package wfgraph

import (
	"fmt"
	"strconv"
	"strings"
)

// Colors shared by the DOT script and the renderer.
const (
	ColorDriver      = "#AA3939"
	ColorMixed       = "#D4AA6A"
	ColorOuterInput  = "#55AA55"
	ColorOuterOutput = "#4B698B"
)

// NodeColor returns the highlight color of a node, or "" for a plain component.
func (g *Graph) NodeColor(id string) string {
	switch {
	case g.nodes[id].Driver:
		return ColorDriver
	case g.mixedOutputs(id):
		return ColorMixed
	}
	return ""
}

// EdgeColor returns the highlight color of an edge, or "" for a same-loop edge.
func EdgeColor(e Edge) string {
	switch {
	case e.TargetCharacter == OuterLoop:
		return ColorOuterInput
	case e.SourceCharacter == OuterLoop:
		return ColorOuterOutput
	}
	return ""
}

// EdgeLabel returns "output > input" using endpoint display names.
func (g *Graph) EdgeLabel(e Edge) string {
	return g.nodes[e.SourceNode].EndpointName(e.SourceOutput) + " > " +
		g.nodes[e.TargetNode].EndpointName(e.TargetInput)
}

// DOT returns a Graphviz script of the graph (dot -Tpng wf.dot -o wf.png).
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph wf_graph {\n")
	for _, id := range g.order {
		n := g.nodes[id]
		label := n.Name
		if label == "" {
			label = n.ID
		}
		attrs := []string{
			"label=" + strconv.Quote(label),
			"shape=rectangle",
			"fontsize=10",
			`fontname="Consolas"`,
		}
		if c := g.NodeColor(id); c != "" {
			attrs = append(attrs, "color="+strconv.Quote(c))
		}
		fmt.Fprintf(&b, "  %s [%s];\n", strconv.Quote(id), strings.Join(attrs, ", "))
	}
	for _, e := range g.edges {
		attrs := []string{
			"label=" + strconv.Quote(g.EdgeLabel(e)),
			"fontsize=10",
			`fontname="Consolas"`,
		}
		if c := EdgeColor(e); c != "" {
			attrs = append(attrs, "color="+strconv.Quote(c))
		}
		fmt.Fprintf(&b, "  %s -> %s [%s];\n", strconv.Quote(e.SourceNode), strconv.Quote(e.TargetNode), strings.Join(attrs, ", "))
	}
	b.WriteString("}\n")
	return b.String()
}
