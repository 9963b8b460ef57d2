package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS wf_graphs (
    id         TEXT PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS wf_graph_nodes (
    graph_id   TEXT NOT NULL REFERENCES wf_graphs(id) ON DELETE CASCADE,
    id         TEXT NOT NULL,
    position   INTEGER NOT NULL,
    name       TEXT NOT NULL DEFAULT '',
    is_driver  BOOLEAN NOT NULL DEFAULT FALSE,
    inputs     JSONB NOT NULL DEFAULT '[]',
    outputs    JSONB NOT NULL DEFAULT '[]',
    PRIMARY KEY (graph_id, id)
);

CREATE TABLE IF NOT EXISTS wf_graph_edges (
    id               TEXT PRIMARY KEY,
    graph_id         TEXT NOT NULL REFERENCES wf_graphs(id) ON DELETE CASCADE,
    position         INTEGER NOT NULL,
    source_node      TEXT NOT NULL,
    source_output    TEXT NOT NULL,
    source_character TEXT NOT NULL,
    target_node      TEXT NOT NULL,
    target_input     TEXT NOT NULL,
    target_character TEXT NOT NULL,
    FOREIGN KEY (graph_id, source_node) REFERENCES wf_graph_nodes(graph_id, id) ON DELETE CASCADE,
    FOREIGN KEY (graph_id, target_node) REFERENCES wf_graph_nodes(graph_id, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_wf_graph_nodes_graph ON wf_graph_nodes(graph_id, position);
CREATE INDEX IF NOT EXISTS idx_wf_graph_edges_graph ON wf_graph_edges(graph_id, position);
`

// CreateSchema creates the wf_graphs, wf_graph_nodes and wf_graph_edges tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops all graph tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS wf_graph_edges, wf_graph_nodes, wf_graphs CASCADE;`)
	return err
}
