package postgres

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/questgraph"
)

// ListNodes returns the nodes of a graph in their original order.
// Returns questgraph.ErrGraphNotFound if the graph doesn't exist.
func (s *PGStore) ListNodes(ctx context.Context, graphID string) ([]questgraph.Node, error) {
	ok, err := s.graphExists(ctx, graphID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, questgraph.ErrGraphNotFound
	}
	return s.listNodes(ctx, graphID)
}

func (s *PGStore) listNodes(ctx context.Context, graphID string) ([]questgraph.Node, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, era, type, class_focus, faction_focus
		   FROM quest_nodes WHERE graph_id = $1 ORDER BY position`, graphID)
	if err != nil {
		return nil, fmt.Errorf("questgraph: list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []questgraph.Node{}
	for rows.Next() {
		var n questgraph.Node
		if err := rows.Scan(&n.ID, &n.Name, &n.Era, &n.Type, &n.ClassFocus, &n.FactionFocus); err != nil {
			return nil, fmt.Errorf("questgraph: scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("questgraph: rows nodes: %w", err)
	}

	return nodes, nil
}
