package postgres

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/questgraph"
)

// ListEdges returns the edges of a graph in their original order.
// Returns questgraph.ErrGraphNotFound if the graph doesn't exist.
func (s *PGStore) ListEdges(ctx context.Context, graphID string) ([]questgraph.Edge, error) {
	ok, err := s.graphExists(ctx, graphID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, questgraph.ErrGraphNotFound
	}
	return s.listEdges(ctx, graphID)
}

func (s *PGStore) listEdges(ctx context.Context, graphID string) ([]questgraph.Edge, error) {
	rows, err := s.db.Query(ctx,
		`SELECT from_quest, to_quest, type, timing, permanent, condition
		   FROM quest_edges WHERE graph_id = $1 ORDER BY position`, graphID)
	if err != nil {
		return nil, fmt.Errorf("questgraph: list edges: %w", err)
	}
	defer rows.Close()

	edges := []questgraph.Edge{}
	for rows.Next() {
		var (
			e      questgraph.Edge
			timing *string
		)
		if err := rows.Scan(&e.From, &e.To, &e.Type, &timing, &e.Permanent, &e.Condition); err != nil {
			return nil, fmt.Errorf("questgraph: scan edge: %w", err)
		}
		if timing != nil {
			e.Timing = *timing
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("questgraph: rows edges: %w", err)
	}

	return edges, nil
}
