package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/wfgraph"
)

var edgeColumns = []string{
	"id", "graph_id", "position",
	"source_node", "source_output", "source_character",
	"target_node", "target_input", "target_character",
}

// copyEdges bulk-loads the edges of a graph with COPY.
func copyEdges(ctx context.Context, tx pgx.Tx, graphID string, edges []wfgraph.Edge) error {
	if len(edges) == 0 {
		return nil
	}
	rows := make([][]any, len(edges))
	for i, e := range edges {
		rows[i] = []any{
			uuid.NewString(), graphID, i,
			e.SourceNode, e.SourceOutput, string(e.SourceCharacter),
			e.TargetNode, e.TargetInput, string(e.TargetCharacter),
		}
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"wf_graph_edges"}, edgeColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("wfgraph: copy edges: %w", err)
	}
	if int(n) != len(edges) {
		return fmt.Errorf("wfgraph: copy edges: wrote %d of %d rows", n, len(edges))
	}
	return nil
}

// ListEdges returns the edges of a graph in definition order.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListEdges(ctx context.Context, graphID string) ([]wfgraph.Edge, error) {
	rows, err := s.db.Query(ctx,
		`SELECT source_node, source_output, source_character, target_node, target_input, target_character
		 FROM wf_graph_edges WHERE graph_id = $1 ORDER BY position`, graphID)
	if err != nil {
		return nil, fmt.Errorf("wfgraph: list edges: %w", err)
	}
	defer rows.Close()

	edges := []wfgraph.Edge{}
	for rows.Next() {
		var (
			e        wfgraph.Edge
			src, dst string
		)
		if err := rows.Scan(&e.SourceNode, &e.SourceOutput, &src, &e.TargetNode, &e.TargetInput, &dst); err != nil {
			return nil, fmt.Errorf("wfgraph: scan edge: %w", err)
		}
		e.SourceCharacter = wfgraph.EndpointCharacter(src)
		e.TargetCharacter = wfgraph.EndpointCharacter(dst)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("wfgraph: rows edges: %w", err)
	}

	return edges, nil
}
