// Package render draws workflow graphs as images.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/meikuraledutech/wfgraph"
)

// Format selects the output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" and "svg".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case PNG, SVG:
		return Format(s), nil
	}
	return "", fmt.Errorf("render: unknown format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render lays the graph out with dot and returns the encoded image.
// Drivers and sub-loop nodes are colored the same way as in Graph.DOT.
func Render(ctx context.Context, g *wfgraph.Graph, format Format) ([]byte, error) {
	gvFormat, err := toGraphvizFormat(format)
	if err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("render: create graphviz: %w", err)
	}
	defer gv.Close()

	gv.SetLayout(graphviz.DOT)

	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("render: create graph: %w", err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.LRRank)

	gvNodes := make(map[string]*cgraph.Node, g.Len())
	for _, n := range g.Nodes() {
		gvNode, err := graph.CreateNodeByName(n.ID)
		if err != nil {
			return nil, fmt.Errorf("render: create node %s: %w", n.ID, err)
		}
		label := n.Name
		if label == "" {
			label = n.ID
		}
		gvNode.SetLabel(label)
		gvNode.SetShape(cgraph.BoxShape)
		if c := g.NodeColor(n.ID); c != "" {
			gvNode.SetColor(c)
		}
		gvNodes[n.ID] = gvNode
	}

	for _, e := range g.Edges() {
		gvEdge, err := graph.CreateEdgeByName("", gvNodes[e.SourceNode], gvNodes[e.TargetNode])
		if err != nil {
			return nil, fmt.Errorf("render: create edge %s -> %s: %w", e.SourceNode, e.TargetNode, err)
		}
		gvEdge.SetLabel(g.EdgeLabel(e))
		if c := wfgraph.EdgeColor(e); c != "" {
			gvEdge.SetColor(c)
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func toGraphvizFormat(f Format) (graphviz.Format, error) {
	switch f {
	case PNG:
		return graphviz.PNG, nil
	case SVG:
		return graphviz.SVG, nil
	}
	return "", fmt.Errorf("render: unknown format %q", f)
}
