package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/questgraph"
)

func sampleGraph(t *testing.T) *questgraph.Graph {
	t.Helper()
	g, err := questgraph.Convert(questgraph.Map(
		"metadata", questgraph.Map("title", "Act I"),
		"quests", questgraph.Map(
			"q1", questgraph.Map("name", "A", "era", "e1", "type", "main",
				"influences", questgraph.Map("unlocks", questgraph.Map("immediate", []any{"q2"}))),
			"q2", questgraph.Map("name", "B", "era", "e1", "type", "side", "class_focus", "techie"),
		),
	))
	require.NoError(t, err)
	return g
}

func TestStore_SaveGetRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()
	g := sampleGraph(t)

	require.NoError(t, s.SaveGraph(ctx, "act-1", g))

	got, err := s.GetGraph(ctx, "act-1")
	require.NoError(t, err)
	require.Equal(t, g.Nodes, got.Nodes)
	require.Equal(t, g.Edges, got.Edges)
	require.Equal(t, g.Statistics, got.Statistics)
	require.Equal(t, map[string]any{"title": "Act I"}, got.Metadata)

	// Reads are copies.
	got.Nodes[0].Name = "changed"
	again, err := s.GetGraph(ctx, "act-1")
	require.NoError(t, err)
	require.Equal(t, "A", again.Nodes[0].Name)
}

func TestStore_MissingGraph(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()

	g, err := s.GetGraph(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, g)

	_, err = s.ListNodes(ctx, "nope")
	require.ErrorIs(t, err, questgraph.ErrGraphNotFound)
	_, err = s.ListEdges(ctx, "nope")
	require.ErrorIs(t, err, questgraph.ErrGraphNotFound)

	require.NoError(t, s.DeleteGraph(ctx, "nope"))
	require.ErrorIs(t, s.SaveGraph(ctx, "nil", nil), questgraph.ErrNilGraph)
}

func TestStore_ListAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New()
	g := sampleGraph(t)

	require.NoError(t, s.SaveGraph(ctx, "b", g))
	require.NoError(t, s.SaveGraph(ctx, "a", g))
	ids, err := s.ListGraphs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids)

	nodes, err := s.ListNodes(ctx, "a")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	edges, err := s.ListEdges(ctx, "a")
	require.NoError(t, err)
	require.Len(t, edges, 1)

	require.NoError(t, s.DeleteGraph(ctx, "a"))
	ids, err = s.ListGraphs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, ids)

	require.NoError(t, s.DropSchema(ctx))
	ids, err = s.ListGraphs(ctx)
	require.NoError(t, err)
	require.Empty(t, ids)
}
