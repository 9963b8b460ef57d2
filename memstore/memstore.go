// Package memstore implements wfgraph.Store in process memory.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meikuraledutech/wfgraph"
)

type entry struct {
	doc       wfgraph.Document
	createdAt time.Time
}

// Store keeps graphs as documents; GetGraph rebuilds them like a database-backed store would.
type Store struct {
	mu     sync.RWMutex
	graphs map[string]entry
	now    func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{graphs: make(map[string]entry), now: time.Now}
}

// CreateSchema is a no-op.
func (s *Store) CreateSchema(context.Context) error { return nil }

// DropSchema removes every stored graph.
func (s *Store) DropSchema(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.graphs)
	return nil
}

// SaveGraph stores g under graphID, replacing any previous graph.
// An empty graphID gets a generated UUID.
func (s *Store) SaveGraph(_ context.Context, graphID string, g *wfgraph.Graph) (string, error) {
	if g == nil {
		return "", fmt.Errorf("wfgraph: save graph: nil graph")
	}
	if graphID == "" {
		graphID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[graphID] = entry{doc: g.Document(), createdAt: s.now()}
	return graphID, nil
}

// GetGraph returns nil, nil if the graph does not exist.
func (s *Store) GetGraph(_ context.Context, graphID string) (*wfgraph.Graph, error) {
	s.mu.RLock()
	e, ok := s.graphs[graphID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	g, err := e.doc.Build()
	if err != nil {
		return nil, fmt.Errorf("wfgraph: stored graph %s: %w", graphID, err)
	}
	return g, nil
}

// DeleteGraph is a no-op for unknown IDs.
func (s *Store) DeleteGraph(_ context.Context, graphID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.graphs, graphID)
	return nil
}

// ListGraphs returns all graphs, oldest first.
func (s *Store) ListGraphs(context.Context) ([]wfgraph.GraphInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]wfgraph.GraphInfo, 0, len(s.graphs))
	for id, e := range s.graphs {
		infos = append(infos, wfgraph.GraphInfo{
			ID:        id,
			Nodes:     len(e.doc.Nodes),
			Edges:     len(e.doc.Edges),
			CreatedAt: e.createdAt,
		})
	}
	slices.SortFunc(infos, func(a, b wfgraph.GraphInfo) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return infos, nil
}

// ListNodes returns an empty slice for unknown graphs.
func (s *Store) ListNodes(_ context.Context, graphID string) ([]wfgraph.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes := make([]wfgraph.Node, 0, len(s.graphs[graphID].doc.Nodes))
	for _, n := range s.graphs[graphID].doc.Nodes {
		n.Inputs = slices.Clone(n.Inputs)
		n.Outputs = slices.Clone(n.Outputs)
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ListEdges returns an empty slice for unknown graphs.
func (s *Store) ListEdges(_ context.Context, graphID string) ([]wfgraph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]wfgraph.Edge{}, s.graphs[graphID].doc.Edges...), nil
}

var _ wfgraph.Store = (*Store)(nil)
