package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS quest_graphs (
    id              TEXT PRIMARY KEY,
    metadata        JSONB NOT NULL DEFAULT '{}',
    critical_chains JSONB,
    statistics      JSONB,
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS quest_nodes (
    graph_id      TEXT NOT NULL REFERENCES quest_graphs(id) ON DELETE CASCADE,
    position      INTEGER NOT NULL,
    id            TEXT NOT NULL,
    name          TEXT NOT NULL DEFAULT '',
    era           TEXT NOT NULL DEFAULT '',
    type          TEXT NOT NULL DEFAULT '',
    class_focus   TEXT,
    faction_focus TEXT,
    PRIMARY KEY (graph_id, id)
);

-- Edges may point at quests that are not declared in the graph, so there is
-- no foreign key from from_quest/to_quest to quest_nodes.
CREATE TABLE IF NOT EXISTS quest_edges (
    id         TEXT PRIMARY KEY,
    graph_id   TEXT NOT NULL REFERENCES quest_graphs(id) ON DELETE CASCADE,
    position   INTEGER NOT NULL,
    from_quest TEXT NOT NULL,
    to_quest   TEXT NOT NULL,
    type       TEXT NOT NULL,
    timing     TEXT,
    permanent  BOOLEAN NOT NULL DEFAULT FALSE,
    condition  TEXT
);

CREATE INDEX IF NOT EXISTS idx_quest_nodes_graph ON quest_nodes(graph_id, position);
CREATE INDEX IF NOT EXISTS idx_quest_edges_graph ON quest_edges(graph_id, position);
CREATE INDEX IF NOT EXISTS idx_quest_edges_from  ON quest_edges(graph_id, from_quest);
CREATE INDEX IF NOT EXISTS idx_quest_edges_to    ON quest_edges(graph_id, to_quest);
`

// CreateSchema creates the quest graph tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the quest graph tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS quest_edges, quest_nodes, quest_graphs CASCADE;`)
	return err
}
