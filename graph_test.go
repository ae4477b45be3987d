package questgraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraphJSON_Example(t *testing.T) {
	t.Parallel()

	g, err := Convert(exampleDoc())
	require.NoError(t, err)

	out, err := json.Marshal(g)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"metadata": {},
		"nodes": [
			{"id": "q1", "name": "A", "era": "e1", "type": "main", "class_focus": null, "faction_focus": null},
			{"id": "q2", "name": "B", "era": "e1", "type": "side", "class_focus": null, "faction_focus": null}
		],
		"edges": [
			{"from": "q1", "to": "q2", "type": "unlocks", "timing": "immediate"},
			{"from": "q1", "to": "q2", "type": "requires", "condition": null}
		],
		"statistics": {
			"total_nodes": 2,
			"total_edges": 2,
			"quests_by_type": {"main": 1, "side": 1},
			"quests_by_era": {"e1": 2}
		}
	}`, string(out))
}

func TestGraphJSON_CriticalChainsOmittedWhenAbsent(t *testing.T) {
	t.Parallel()

	g, err := Build(Map("quests", NewMapping()))
	require.NoError(t, err)
	out, err := json.Marshal(g)
	require.NoError(t, err)
	require.NotContains(t, string(out), "critical_chains")

	g, err = Build(Map("quests", NewMapping(), "critical_chains", []any{"q1"}))
	require.NoError(t, err)
	out, err = json.Marshal(g)
	require.NoError(t, err)
	require.Contains(t, string(out), `"critical_chains":["q1"]`)
}

func TestEdgeJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	edges := []Edge{
		UnlockEdge("a", "b", TimingNextEra),
		BlockEdge("a", "c"),
		RequireEdge("d", "a", strp("faction_rep >= 10")),
		RequireEdge("e", "a", nil),
	}
	out, err := json.Marshal(edges)
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"from": "a", "to": "b", "type": "unlocks", "timing": "next_era"},
		{"from": "a", "to": "c", "type": "blocks", "permanent": true},
		{"from": "d", "to": "a", "type": "requires", "condition": "faction_rep >= 10"},
		{"from": "e", "to": "a", "type": "requires", "condition": null}
	]`, string(out))

	var back []Edge
	require.NoError(t, json.Unmarshal(out, &back))
	require.Equal(t, edges, back)
}
