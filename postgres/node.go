package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/wfgraph"
)

func insertNodes(ctx context.Context, tx pgx.Tx, graphID string, nodes []wfgraph.Node) error {
	for i, n := range nodes {
		inputs, outputs := n.Inputs, n.Outputs
		if inputs == nil {
			inputs = []wfgraph.Endpoint{}
		}
		if outputs == nil {
			outputs = []wfgraph.Endpoint{}
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO wf_graph_nodes (graph_id, id, position, name, is_driver, inputs, outputs)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			graphID, n.ID, i, n.Name, n.Driver, inputs, outputs,
		); err != nil {
			return fmt.Errorf("wfgraph: insert node %s: %w", n.ID, err)
		}
	}
	return nil
}

// ListNodes returns the nodes of a graph in definition order.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListNodes(ctx context.Context, graphID string) ([]wfgraph.Node, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, is_driver, inputs, outputs FROM wf_graph_nodes WHERE graph_id = $1 ORDER BY position`, graphID)
	if err != nil {
		return nil, fmt.Errorf("wfgraph: list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []wfgraph.Node{}
	for rows.Next() {
		var n wfgraph.Node
		if err := rows.Scan(&n.ID, &n.Name, &n.Driver, &n.Inputs, &n.Outputs); err != nil {
			return nil, fmt.Errorf("wfgraph: scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("wfgraph: rows nodes: %w", err)
	}

	return nodes, nil
}
