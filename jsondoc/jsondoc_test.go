package jsondoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/questgraph"
)

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	doc := questgraph.Map("b", 1, "a", []any{"x"})

	// --- Act ---
	err := NewWriter().Write(path, doc)

	// --- Assert ---
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    \"x\"\n  ]\n}\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file should not be left behind")
}

func TestWriter_MissingParent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "not-created", "graph.json")
	err := NewWriter().Write(path, map[string]int{"a": 1})
	require.ErrorIs(t, err, questgraph.ErrWriteFailure)
	require.Contains(t, err.Error(), path)
}

func TestWriter_Unencodable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "graph.json")
	err := NewWriter().Write(path, map[string]any{"ch": make(chan int)})
	require.ErrorIs(t, err, questgraph.ErrWriteFailure)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestWriter_KeepsAuthoredText(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "graph.json")
	g, err := questgraph.Convert(questgraph.Map(
		"metadata", questgraph.Map("note", "<draft> & unreviewed"),
		"quests", questgraph.Map(
			"q2", questgraph.Map("influenced_by", []any{
				questgraph.Map("quest", "q1", "condition", "reputation >= 50 && alive"),
			}),
		),
	))
	require.NoError(t, err)

	// --- Act ---
	require.NoError(t, NewWriter().Write(path, g))

	// --- Assert ---
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(got), `"condition": "reputation >= 50 && alive"`)
	require.Contains(t, string(got), `"note": "<draft> & unreviewed"`)
	require.NotContains(t, string(got), `\u0026`)
}
