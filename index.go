package wfgraph

// EdgeIndex looks up edges by source and by target node.
type EdgeIndex struct {
	from map[string][]Edge
	to   map[string][]Edge
}

func newEdgeIndex(edges []Edge) *EdgeIndex {
	idx := &EdgeIndex{
		from: make(map[string][]Edge),
		to:   make(map[string][]Edge),
	}
	for _, e := range edges {
		idx.from[e.SourceNode] = append(idx.from[e.SourceNode], e)
		idx.to[e.TargetNode] = append(idx.to[e.TargetNode], e)
	}
	return idx
}

// From returns the outgoing edges of a node in definition order.
// The returned slice must not be modified.
func (idx *EdgeIndex) From(node string) []Edge { return idx.from[node] }

// To returns the incoming edges of a node in definition order.
// The returned slice must not be modified.
func (idx *EdgeIndex) To(node string) []Edge { return idx.to[node] }
