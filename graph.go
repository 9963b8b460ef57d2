package wfgraph

import "fmt"

// Graph is the validated, indexed workflow graph of one run.
// It is immutable after BuildGraph and safe for concurrent queries.
type Graph struct {
	nodes map[string]Node
	order []string
	edges []Edge
	index *EdgeIndex

	// undirected neighbours over edges that are same-loop on both ends
	sameLoop map[string][]string

	// driver ID -> reset chains, computed once during build
	resets map[string][]chain
}

// chain is an edge walk; open chains get SentinelHop appended when turned into a Path.
type chain struct {
	edges  []Edge
	closed bool
}

// BuildGraph validates nodes and edges and indexes them.
// Validation failures are returned as *InvalidGraphError.
func BuildGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes:    make(map[string]Node, len(nodes)),
		order:    make([]string, 0, len(nodes)),
		edges:    make([]Edge, 0, len(edges)),
		sameLoop: make(map[string][]string),
		resets:   make(map[string][]chain),
	}

	for _, n := range nodes {
		if err := n.validate(); err != nil {
			return nil, err
		}
		if _, exists := g.nodes[n.ID]; exists {
			return nil, invalidNode(n.ID, "duplicate node id")
		}
		g.nodes[n.ID] = n.clone()
		g.order = append(g.order, n.ID)
	}

	seen := make(map[Edge]bool, len(edges))
	for i, e := range edges {
		if err := g.validateEdge(e); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if seen[e] {
			return nil, fmt.Errorf("edge %d: %w", i, invalidEndpoint(e.SourceNode, e.SourceOutput,
				"edge to %s/%s listed twice", e.TargetNode, e.TargetInput))
		}
		seen[e] = true
		g.edges = append(g.edges, e)
	}

	g.index = newEdgeIndex(g.edges)
	g.buildSameLoopAdjacency()

	if err := g.validateLoops(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) validateEdge(e Edge) error {
	src, ok := g.nodes[e.SourceNode]
	if !ok {
		return invalidNode(e.SourceNode, "edge source node does not exist")
	}
	dst, ok := g.nodes[e.TargetNode]
	if !ok {
		return invalidNode(e.TargetNode, "edge target node does not exist")
	}
	if !src.HasOutput(e.SourceOutput) {
		return invalidEndpoint(src.ID, e.SourceOutput, "not an output of the source node")
	}
	if !dst.HasInput(e.TargetInput) {
		return invalidEndpoint(dst.ID, e.TargetInput, "not an input of the target node")
	}
	if !e.SourceCharacter.Valid() {
		return invalidEndpoint(src.ID, e.SourceOutput, "unknown endpoint character %q", e.SourceCharacter)
	}
	if !e.TargetCharacter.Valid() {
		return invalidEndpoint(dst.ID, e.TargetInput, "unknown endpoint character %q", e.TargetCharacter)
	}
	return nil
}

func (g *Graph) buildSameLoopAdjacency() {
	linked := make(map[[2]string]bool)
	link := func(a, b string) {
		if linked[[2]string{a, b}] {
			return
		}
		linked[[2]string{a, b}] = true
		g.sameLoop[a] = append(g.sameLoop[a], b)
	}
	for _, e := range g.edges {
		if !e.SameLoopOnly() || e.SourceNode == e.TargetNode {
			continue
		}
		link(e.SourceNode, e.TargetNode)
		link(e.TargetNode, e.SourceNode)
	}
}

// validateLoops checks the body of every driver and keeps its reset chains for
// ResetPaths. From each body node a same-loop route must reach a driver, an
// outer-loop output, or a node with no same-loop output. A same-loop cycle that
// does neither can never hand control back and is rejected.
func (g *Graph) validateLoops() error {
	for _, id := range g.order {
		if !g.nodes[id].Driver {
			continue
		}
		body := g.loopBody(id)
		escapes := make(map[string]bool, len(body))
		for changed := true; changed; {
			changed = false
			for _, n := range body {
				if !escapes[n] && g.escapes(n, escapes) {
					escapes[n] = true
					changed = true
				}
			}
		}
		for _, n := range body {
			if !escapes[n] {
				return invalidNode(n, "same-loop cycle in the body of driver %q neither returns to a driver nor leaves the loop", id)
			}
		}
		g.resets[id] = g.resetChains(id)
	}
	return nil
}

// loopBody returns the non-driver nodes reachable from driver over same-loop
// outputs, in discovery order. Other drivers bound the body.
func (g *Graph) loopBody(driver string) []string {
	seen := map[string]bool{driver: true}
	queue := []string{driver}
	var body []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.index.From(cur) {
			if e.SourceCharacter != SameLoop || seen[e.TargetNode] {
				continue
			}
			seen[e.TargetNode] = true
			if g.nodes[e.TargetNode].Driver {
				continue
			}
			body = append(body, e.TargetNode)
			queue = append(queue, e.TargetNode)
		}
	}
	return body
}

func (g *Graph) escapes(id string, known map[string]bool) bool {
	sameOut := false
	for _, e := range g.index.From(id) {
		if e.SourceCharacter == OuterLoop {
			return true
		}
		sameOut = true
		if g.nodes[e.TargetNode].Driver || known[e.TargetNode] {
			return true
		}
	}
	return !sameOut
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Nodes returns all nodes in definition order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].clone())
	}
	return out
}

// Edges returns all edges in definition order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// EdgesFrom returns the outgoing edges of a node.
func (g *Graph) EdgesFrom(id string) []Edge {
	return append([]Edge(nil), g.index.From(id)...)
}

// EdgesTo returns the incoming edges of a node.
func (g *Graph) EdgesTo(id string) []Edge {
	return append([]Edge(nil), g.index.To(id)...)
}

// Drivers returns the IDs of all driver nodes in definition order.
func (g *Graph) Drivers() []string {
	var out []string
	for _, id := range g.order {
		if g.nodes[id].Driver {
			out = append(out, id)
		}
	}
	return out
}

// hop labels an edge with the display names of its endpoints.
func (g *Graph) hop(e Edge) Hop {
	return Hop{
		From:       e.SourceNode,
		FromOutput: g.nodes[e.SourceNode].EndpointName(e.SourceOutput),
		To:         e.TargetNode,
		ToInput:    g.nodes[e.TargetNode].EndpointName(e.TargetInput),
	}
}

func (g *Graph) path(edges []Edge) Path {
	p := Path{hops: make([]Hop, 0, len(edges)+1)}
	for _, e := range edges {
		p.Append(g.hop(e))
	}
	return p
}

// mixedOutputs reports whether the node has connected outputs of both characters,
// which is how sub-loop components such as an evaluation memory look.
func (g *Graph) mixedOutputs(id string) bool {
	var same, outer bool
	for _, e := range g.index.From(id) {
		switch e.SourceCharacter {
		case SameLoop:
			same = true
		case OuterLoop:
			outer = true
		}
	}
	return same && outer
}
