package wfgraph

import (
	"context"
	"time"
)

// GraphInfo summarizes a stored graph.
type GraphInfo struct {
	ID        string    `json:"id"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the contract for persisting workflow graphs next to execution state.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Graphs
	SaveGraph(ctx context.Context, graphID string, g *Graph) (string, error)
	GetGraph(ctx context.Context, graphID string) (*Graph, error)
	DeleteGraph(ctx context.Context, graphID string) error
	ListGraphs(ctx context.Context) ([]GraphInfo, error)

	// Parts of a stored graph
	ListNodes(ctx context.Context, graphID string) ([]Node, error)
	ListEdges(ctx context.Context, graphID string) ([]Edge, error)
}
