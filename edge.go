package wfgraph

// EndpointCharacter tags one end of an edge with its loop scope.
type EndpointCharacter string

const (
	// SameLoop keeps the connection inside the loop scope the node executes in.
	SameLoop EndpointCharacter = "same_loop"
	// OuterLoop crosses a nesting boundary, into or out of a nested loop.
	OuterLoop EndpointCharacter = "outer_loop"
)

// Valid reports whether c is one of the known characters.
func (c EndpointCharacter) Valid() bool {
	return c == SameLoop || c == OuterLoop
}

func (c EndpointCharacter) opposite() EndpointCharacter {
	if c == SameLoop {
		return OuterLoop
	}
	return SameLoop
}

// Edge connects an output of one node to an input of another.
// Edges reference nodes and endpoints by ID; they are owned by the Graph.
type Edge struct {
	SourceNode      string            `json:"source_node" yaml:"source_node"`
	SourceOutput    string            `json:"source_output" yaml:"source_output"`
	SourceCharacter EndpointCharacter `json:"source_character" yaml:"source_character"`
	TargetNode      string            `json:"target_node" yaml:"target_node"`
	TargetInput     string            `json:"target_input" yaml:"target_input"`
	TargetCharacter EndpointCharacter `json:"target_character" yaml:"target_character"`
}

// NewEdge returns the edge sourceNode.output -> targetNode.input.
func NewEdge(sourceNode, output string, sourceChar EndpointCharacter, targetNode, input string, targetChar EndpointCharacter) Edge {
	return Edge{
		SourceNode:      sourceNode,
		SourceOutput:    output,
		SourceCharacter: sourceChar,
		TargetNode:      targetNode,
		TargetInput:     input,
		TargetCharacter: targetChar,
	}
}

// SameLoopOnly reports whether both ends stay in the same loop scope.
func (e Edge) SameLoopOnly() bool {
	return e.SourceCharacter == SameLoop && e.TargetCharacter == SameLoop
}
