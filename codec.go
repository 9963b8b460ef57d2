package wfgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the serializable form of a Graph.
type Document struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Build validates the document and returns its Graph.
func (d Document) Build() (*Graph, error) {
	return BuildGraph(d.Nodes, d.Edges)
}

// Document returns the serializable form of the graph.
func (g *Graph) Document() Document {
	d := Document{Nodes: g.Nodes(), Edges: g.Edges()}
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}
	return d
}

func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Document())
}

// UnmarshalJSON decodes a Document and validates it like BuildGraph.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	built, err := d.Build()
	if err != nil {
		return err
	}
	*g = *built
	return nil
}

// Encode writes the graph as JSON.
func Encode(w io.Writer, g *Graph) error {
	if err := json.NewEncoder(w).Encode(g); err != nil {
		return fmt.Errorf("wfgraph: encode: %w", err)
	}
	return nil
}

// Decode reads a JSON graph written by Encode.
func Decode(r io.Reader) (*Graph, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("wfgraph: decode: %w", err)
	}
	return d.Build()
}

// DecodeYAML reads a graph definition written in YAML.
func DecodeYAML(r io.Reader) (*Graph, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
		return nil, fmt.Errorf("wfgraph: decode yaml: %w", err)
	}
	return d.Build()
}

// Equal reports whether two graphs have the same nodes and the same edges,
// regardless of definition order.
func Equal(a, b *Graph) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.nodes) != len(b.nodes) || len(a.edges) != len(b.edges) {
		return false
	}
	for id, n := range a.nodes {
		m, ok := b.nodes[id]
		if !ok || !nodesEqual(n, m) {
			return false
		}
	}
	return slices.Equal(sortedEdges(a.edges), sortedEdges(b.edges))
}

func nodesEqual(a, b Node) bool {
	if a.ID != b.ID || a.Name != b.Name || a.Driver != b.Driver {
		return false
	}
	return slices.Equal(sortedEndpoints(a.Inputs), sortedEndpoints(b.Inputs)) &&
		slices.Equal(sortedEndpoints(a.Outputs), sortedEndpoints(b.Outputs))
}

func sortedEndpoints(eps []Endpoint) []Endpoint {
	out := slices.Clone(eps)
	slices.SortFunc(out, func(x, y Endpoint) int { return strings.Compare(x.ID, y.ID) })
	return out
}

func sortedEdges(edges []Edge) []Edge {
	out := slices.Clone(edges)
	slices.SortFunc(out, func(x, y Edge) int {
		return strings.Compare(edgeKey(x), edgeKey(y))
	})
	return out
}

func edgeKey(e Edge) string {
	return strings.Join([]string{
		e.SourceNode, e.SourceOutput, string(e.SourceCharacter),
		e.TargetNode, e.TargetInput, string(e.TargetCharacter),
	}, "\x00")
}
