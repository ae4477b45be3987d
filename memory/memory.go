// Package memory implements questgraph.Store in process memory. Graphs are
// kept in their JSON form, so reads return independent copies shaped exactly
// like graphs read back from Postgres.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/meikuraledutech/questgraph"
)

// Store is a questgraph.Store backed by a map.
type Store struct {
	mu     sync.RWMutex
	graphs map[string][]byte
}

var _ questgraph.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{graphs: make(map[string][]byte)}
}

// CreateSchema is a no-op.
func (s *Store) CreateSchema(ctx context.Context) error { return nil }

// DropSchema removes every graph.
func (s *Store) DropSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs = make(map[string][]byte)
	return nil
}

// SaveGraph stores g under graphID, replacing any previous graph.
func (s *Store) SaveGraph(ctx context.Context, graphID string, g *questgraph.Graph) error {
	if g == nil {
		return questgraph.ErrNilGraph
	}
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("questgraph: encode graph %s: %w", graphID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[graphID] = data
	return nil
}

// GetGraph returns nil, nil if graphID is unknown.
func (s *Store) GetGraph(ctx context.Context, graphID string) (*questgraph.Graph, error) {
	s.mu.RLock()
	data, ok := s.graphs[graphID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var g questgraph.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("questgraph: decode graph %s: %w", graphID, err)
	}
	return &g, nil
}

// DeleteGraph removes graphID. No error if it doesn't exist.
func (s *Store) DeleteGraph(ctx context.Context, graphID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.graphs, graphID)
	return nil
}

// ListGraphs returns the stored graph ids in lexical order.
func (s *Store) ListGraphs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListNodes returns questgraph.ErrGraphNotFound for an unknown graph.
func (s *Store) ListNodes(ctx context.Context, graphID string) ([]questgraph.Node, error) {
	g, err := s.GetGraph(ctx, graphID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, questgraph.ErrGraphNotFound
	}
	return g.Nodes, nil
}

// ListEdges returns questgraph.ErrGraphNotFound for an unknown graph.
func (s *Store) ListEdges(ctx context.Context, graphID string) ([]questgraph.Edge, error) {
	g, err := s.GetGraph(ctx, graphID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, questgraph.ErrGraphNotFound
	}
	return g.Edges, nil
}
