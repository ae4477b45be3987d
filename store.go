package questgraph

import "context"

// Store defines the contract for persisting and retrieving converted graphs.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Graphs (bulk operations)
	SaveGraph(ctx context.Context, graphID string, g *Graph) error
	GetGraph(ctx context.Context, graphID string) (*Graph, error)
	DeleteGraph(ctx context.Context, graphID string) error
	ListGraphs(ctx context.Context) ([]string, error)

	// Nodes and edges of one graph
	ListNodes(ctx context.Context, graphID string) ([]Node, error)
	ListEdges(ctx context.Context, graphID string) ([]Edge, error)
}
