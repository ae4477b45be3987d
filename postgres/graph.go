package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meikuraledutech/questgraph"
)

// SaveGraph saves a full graph (nodes + edges) in one transaction, replacing
// whatever was stored under graphID. Edge rows get generated UUIDs; nodes and
// edges keep their order through a position column.
func (s *PGStore) SaveGraph(ctx context.Context, graphID string, g *questgraph.Graph) error {
	if g == nil {
		return questgraph.ErrNilGraph
	}

	metadata, err := json.Marshal(g.Metadata)
	if err != nil {
		return fmt.Errorf("questgraph: encode metadata: %w", err)
	}
	if g.Metadata == nil {
		metadata = []byte("{}")
	}
	chains, err := nullableJSON(g.CriticalChains)
	if err != nil {
		return fmt.Errorf("questgraph: encode critical chains: %w", err)
	}
	var stats []byte
	if g.Statistics != nil {
		if stats, err = json.Marshal(g.Statistics); err != nil {
			return fmt.Errorf("questgraph: encode statistics: %w", err)
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("questgraph: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Replace semantics: nodes and edges cascade with the graph row.
	if _, err := tx.Exec(ctx, `DELETE FROM quest_graphs WHERE id = $1`, graphID); err != nil {
		return fmt.Errorf("questgraph: delete graph: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO quest_graphs (id, metadata, critical_chains, statistics) VALUES ($1, $2, $3, $4)`,
		graphID, metadata, chains, stats,
	); err != nil {
		return fmt.Errorf("questgraph: insert graph: %w", err)
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"quest_nodes"},
		[]string{"graph_id", "position", "id", "name", "era", "type", "class_focus", "faction_focus"},
		pgx.CopyFromSlice(len(g.Nodes), func(i int) ([]any, error) {
			n := g.Nodes[i]
			return []any{graphID, i, n.ID, n.Name, n.Era, n.Type, n.ClassFocus, n.FactionFocus}, nil
		}),
	); err != nil {
		return fmt.Errorf("questgraph: insert nodes: %w", err)
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"quest_edges"},
		[]string{"id", "graph_id", "position", "from_quest", "to_quest", "type", "timing", "permanent", "condition"},
		pgx.CopyFromSlice(len(g.Edges), func(i int) ([]any, error) {
			e := g.Edges[i]
			var timing *string
			if e.Timing != "" {
				timing = &e.Timing
			}
			return []any{uuid.NewString(), graphID, i, e.From, e.To, e.Type, timing, e.Permanent, e.Condition}, nil
		}),
	); err != nil {
		return fmt.Errorf("questgraph: insert edges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("questgraph: commit: %w", err)
	}
	return nil
}

// GetGraph retrieves a full graph by its ID.
// Returns nil, nil if the graph doesn't exist.
func (s *PGStore) GetGraph(ctx context.Context, graphID string) (*questgraph.Graph, error) {
	var metadata, chains, stats []byte
	err := s.db.QueryRow(ctx,
		`SELECT metadata, critical_chains, statistics FROM quest_graphs WHERE id = $1`, graphID,
	).Scan(&metadata, &chains, &stats)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("questgraph: get graph: %w", err)
	}

	g := &questgraph.Graph{}
	if err := json.Unmarshal(metadata, &g.Metadata); err != nil {
		return nil, fmt.Errorf("questgraph: decode metadata: %w", err)
	}
	if chains != nil {
		if err := json.Unmarshal(chains, &g.CriticalChains); err != nil {
			return nil, fmt.Errorf("questgraph: decode critical chains: %w", err)
		}
	}
	if stats != nil {
		g.Statistics = &questgraph.Statistics{}
		if err := json.Unmarshal(stats, g.Statistics); err != nil {
			return nil, fmt.Errorf("questgraph: decode statistics: %w", err)
		}
	}

	if g.Nodes, err = s.listNodes(ctx, graphID); err != nil {
		return nil, err
	}
	if g.Edges, err = s.listEdges(ctx, graphID); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGraph removes a graph with its nodes and edges.
// No error if the graphID doesn't exist.
func (s *PGStore) DeleteGraph(ctx context.Context, graphID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM quest_graphs WHERE id = $1`, graphID); err != nil {
		return fmt.Errorf("questgraph: delete graph: %w", err)
	}
	return nil
}

// ListGraphs returns all graph IDs in lexical order.
func (s *PGStore) ListGraphs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM quest_graphs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("questgraph: list graphs: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("questgraph: scan graph ids: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// graphExists reports whether graphID has a graph row.
func (s *PGStore) graphExists(ctx context.Context, graphID string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM quest_graphs WHERE id = $1)`, graphID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("questgraph: find graph: %w", err)
	}
	return ok, nil
}

func nullableJSON(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
