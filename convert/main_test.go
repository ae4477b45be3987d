package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/questgraph/batch"
	"github.com/meikuraledutech/questgraph/config"
)

func testConfig(root string) *config.Convert {
	return &config.Convert{Root: root, Workers: 2, LogLevel: "info", LogFormat: "text"}
}

func TestRun_NothingToDo(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	var logs bytes.Buffer

	// --- Act ---
	code := run(context.Background(), testConfig(root), &logs)

	// --- Assert ---
	require.Equal(t, 0, code, "missing inputs are skipped, not failures")
	require.Contains(t, logs.String(), "skipped=3")
}

func TestRun_PartialSuccessExitsZero(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	pairs := batch.DefaultPairs(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(pairs[0].Input), 0o755))
	require.NoError(t, os.WriteFile(pairs[0].Input, []byte("quests:\n  q1: broken\n"), 0o600))
	require.NoError(t, os.WriteFile(pairs[2].Input, []byte("eras: [2020, 2077]\n"), 0o600))

	var logs bytes.Buffer
	code := run(context.Background(), testConfig(root), &logs)
	require.Equal(t, 0, code)

	out, err := os.ReadFile(pairs[2].Output)
	require.NoError(t, err)
	require.JSONEq(t, `{"eras":[2020,2077]}`, string(out))
	_, err = os.Stat(pairs[0].Output)
	require.True(t, os.IsNotExist(err))
}

func TestRun_AllFailedExitsOne(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	pairs := batch.DefaultPairs(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(pairs[0].Input), 0o755))
	require.NoError(t, os.WriteFile(pairs[0].Input, []byte("quests: [\n"), 0o600))

	var logs bytes.Buffer
	code := run(context.Background(), testConfig(root), &logs)
	require.Equal(t, 1, code)
	require.Contains(t, logs.String(), "Pair failed.")
}
