package wfgraph

// Endpoint is one input or output of a workflow component.
// ID is the identity used by edges; Name is only a display label ("inp_0", "out_1").
type Endpoint struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Node represents one workflow component of a run.
// Driver is true when the component controls the iteration of a loop.
type Node struct {
	ID      string     `json:"id" yaml:"id"`
	Name    string     `json:"name,omitempty" yaml:"name,omitempty"`
	Driver  bool       `json:"driver,omitempty" yaml:"driver,omitempty"`
	Inputs  []Endpoint `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []Endpoint `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// NewNode returns a validated Node.
func NewNode(id, name string, driver bool, inputs, outputs []Endpoint) (Node, error) {
	n := Node{ID: id, Name: name, Driver: driver, Inputs: inputs, Outputs: outputs}
	if err := n.validate(); err != nil {
		return Node{}, err
	}
	return n, nil
}

// EndpointName returns the display name of the endpoint, falling back to its ID.
// Unknown endpoints yield "".
func (n Node) EndpointName(id string) string {
	for _, list := range [][]Endpoint{n.Inputs, n.Outputs} {
		for _, ep := range list {
			if ep.ID == id {
				if ep.Name == "" {
					return ep.ID
				}
				return ep.Name
			}
		}
	}
	return ""
}

// HasInput reports whether id is one of the node's inputs.
func (n Node) HasInput(id string) bool { return hasEndpoint(n.Inputs, id) }

// HasOutput reports whether id is one of the node's outputs.
func (n Node) HasOutput(id string) bool { return hasEndpoint(n.Outputs, id) }

func hasEndpoint(list []Endpoint, id string) bool {
	for _, ep := range list {
		if ep.ID == id {
			return true
		}
	}
	return false
}

func (n Node) validate() error {
	if n.ID == "" {
		return invalidNode("", "empty node id")
	}
	if n.ID == SentinelID {
		return invalidNode(n.ID, "node id is reserved for the sentinel hop")
	}
	seen := make(map[string]bool, len(n.Inputs)+len(n.Outputs))
	for _, list := range [][]Endpoint{n.Inputs, n.Outputs} {
		for _, ep := range list {
			if ep.ID == "" {
				return invalidNode(n.ID, "empty endpoint id")
			}
			if seen[ep.ID] {
				return invalidEndpoint(n.ID, ep.ID, "duplicate endpoint id")
			}
			seen[ep.ID] = true
		}
	}
	return nil
}

func (n Node) clone() Node {
	c := n
	c.Inputs = append([]Endpoint(nil), n.Inputs...)
	c.Outputs = append([]Endpoint(nil), n.Outputs...)
	return c
}
