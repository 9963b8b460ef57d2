package wfgraph

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGraph = errors.New("wfgraph: invalid graph")
	ErrTopology     = errors.New("wfgraph: invalid loop topology")
	ErrNodeNotFound = errors.New("wfgraph: node not found")
)

// InvalidGraphError reports a workflow definition that cannot be turned into a Graph:
// unknown node or endpoint references, duplicate identifiers, bad endpoint characters.
// The caller has to fix the definition; retrying is pointless.
type InvalidGraphError struct {
	Node     string
	Endpoint string
	Msg      string
}

func (e *InvalidGraphError) Error() string {
	switch {
	case e.Node != "" && e.Endpoint != "":
		return fmt.Sprintf("%s: node %q endpoint %q: %s", ErrInvalidGraph, e.Node, e.Endpoint, e.Msg)
	case e.Node != "":
		return fmt.Sprintf("%s: node %q: %s", ErrInvalidGraph, e.Node, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", ErrInvalidGraph, e.Msg)
	}
}

func (e *InvalidGraphError) Unwrap() error { return ErrInvalidGraph }

// GraphTopologyError reports a structurally broken loop, e.g. a component whose
// same-loop scope contains no driver.
type GraphTopologyError struct {
	Node string
	Msg  string
}

func (e *GraphTopologyError) Error() string {
	return fmt.Sprintf("%s: node %q: %s", ErrTopology, e.Node, e.Msg)
}

func (e *GraphTopologyError) Unwrap() error { return ErrTopology }

func invalidNode(node, format string, args ...any) error {
	return &InvalidGraphError{Node: node, Msg: fmt.Sprintf(format, args...)}
}

func invalidEndpoint(node, endpoint, format string, args ...any) error {
	return &InvalidGraphError{Node: node, Endpoint: endpoint, Msg: fmt.Sprintf(format, args...)}
}

func nodeNotFound(id string) error {
	return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
}
