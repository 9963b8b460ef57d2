package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/wfgraph"
)

// SaveGraph stores a full graph (nodes + edges) in one transaction.
// An empty graphID gets a generated UUID. An existing graph with the same ID is replaced.
// Returns the graph ID.
func (s *PGStore) SaveGraph(ctx context.Context, graphID string, g *wfgraph.Graph) (string, error) {
	if g == nil {
		return "", fmt.Errorf("wfgraph: save graph: nil graph")
	}
	if graphID == "" {
		graphID = uuid.NewString()
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("wfgraph: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Replace semantics: nodes and edges cascade.
	if _, err := tx.Exec(ctx, `DELETE FROM wf_graphs WHERE id = $1`, graphID); err != nil {
		return "", fmt.Errorf("wfgraph: delete graph: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO wf_graphs (id) VALUES ($1)`, graphID); err != nil {
		return "", fmt.Errorf("wfgraph: insert graph: %w", err)
	}

	if err := insertNodes(ctx, tx, graphID, g.Nodes()); err != nil {
		return "", err
	}
	if err := copyEdges(ctx, tx, graphID, g.Edges()); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("wfgraph: commit: %w", err)
	}
	return graphID, nil
}

// GetGraph loads and rebuilds a stored graph.
// Returns nil, nil if the graph does not exist.
func (s *PGStore) GetGraph(ctx context.Context, graphID string) (*wfgraph.Graph, error) {
	var exists int
	err := s.db.QueryRow(ctx, `SELECT 1 FROM wf_graphs WHERE id = $1`, graphID).Scan(&exists)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("wfgraph: get graph: %w", err)
	}

	nodes, err := s.ListNodes(ctx, graphID)
	if err != nil {
		return nil, err
	}
	edges, err := s.ListEdges(ctx, graphID)
	if err != nil {
		return nil, err
	}

	g, err := wfgraph.BuildGraph(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("wfgraph: stored graph %s: %w", graphID, err)
	}
	return g, nil
}

// DeleteGraph removes a graph with its nodes and edges.
// No error if the graph doesn't exist.
func (s *PGStore) DeleteGraph(ctx context.Context, graphID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM wf_graphs WHERE id = $1`, graphID); err != nil {
		return fmt.Errorf("wfgraph: delete graph: %w", err)
	}
	return nil
}

// ListGraphs returns a summary of every stored graph, oldest first.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListGraphs(ctx context.Context) ([]wfgraph.GraphInfo, error) {
	rows, err := s.db.Query(ctx, `
		SELECT g.id,
		       (SELECT count(*) FROM wf_graph_nodes n WHERE n.graph_id = g.id),
		       (SELECT count(*) FROM wf_graph_edges e WHERE e.graph_id = g.id),
		       g.created_at
		FROM wf_graphs g
		ORDER BY g.created_at, g.id`)
	if err != nil {
		return nil, fmt.Errorf("wfgraph: list graphs: %w", err)
	}

	infos, err := pgx.CollectRows(rows, pgx.RowToStructByPos[wfgraph.GraphInfo])
	if err != nil {
		return nil, fmt.Errorf("wfgraph: scan graphs: %w", err)
	}
	if infos == nil {
		infos = []wfgraph.GraphInfo{}
	}
	return infos, nil
}
