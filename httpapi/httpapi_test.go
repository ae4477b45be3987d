package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/questgraph/logging"
	"github.com/meikuraledutech/questgraph/memory"
)

const questsYAML = `
quests:
  q1:
    name: A
    era: e1
    type: main
    influences:
      unlocks:
        immediate: [q2]
  q2:
    name: B
    era: e1
    type: side
    influenced_by:
      - quest: q1
`

func newApp() *fiber.App {
	return New(memory.New(), logging.Discard())
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/yaml")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(out)
}

func TestConvert(t *testing.T) {
	t.Parallel()
	app := newApp()

	status, body := do(t, app, http.MethodPost, "/convert", questsYAML)
	require.Equal(t, http.StatusOK, status)
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
		"statistics": {"total_nodes": 2, "total_edges": 2, "quests_by_type": {"main": 1, "side": 1}, "quests_by_era": {"e1": 2}}
	}`, body)
}

func TestConvert_BadDocuments(t *testing.T) {
	t.Parallel()
	app := newApp()

	status, body := do(t, app, http.MethodPost, "/convert", "quests: [oops\n")
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body, "malformed document")

	status, body = do(t, app, http.MethodPost, "/convert", "quests:\n  q9: 12\n")
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Contains(t, body, `q9`)
}

func TestGraphLifecycle(t *testing.T) {
	t.Parallel()
	app := newApp()

	status, _ := do(t, app, http.MethodPost, "/schema", "")
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodPut, "/graphs/act-1", questsYAML)
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, app, http.MethodGet, "/graphs", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `["act-1"]`, body)

	status, body = do(t, app, http.MethodGet, "/graphs/act-1", "")
	require.Equal(t, http.StatusOK, status)
	var g struct {
		Statistics struct {
			TotalNodes int `json:"total_nodes"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &g))
	require.Equal(t, 2, g.Statistics.TotalNodes)

	status, body = do(t, app, http.MethodGet, "/graphs/act-1/edges", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[
		{"from": "q1", "to": "q2", "type": "unlocks", "timing": "immediate"},
		{"from": "q1", "to": "q2", "type": "requires", "condition": null}
	]`, body)

	status, body = do(t, app, http.MethodGet, "/graphs/act-1/nodes", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `"faction_focus":null`)

	status, _ = do(t, app, http.MethodDelete, "/graphs/act-1", "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, app, http.MethodGet, "/graphs/act-1", "")
	require.Equal(t, http.StatusNotFound, status)
	status, _ = do(t, app, http.MethodGet, "/graphs/act-1/nodes", "")
	require.Equal(t, http.StatusNotFound, status)
	status, _ = do(t, app, http.MethodGet, "/graphs/act-1/edges", "")
	require.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodDelete, "/schema", "")
	require.Equal(t, http.StatusOK, status)
}

func TestSaveGraph_RejectsMalformedRecord(t *testing.T) {
	t.Parallel()
	app := newApp()

	status, _ := do(t, app, http.MethodPut, "/graphs/broken", "quests:\n  q1: [a, b]\n")
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, body := do(t, app, http.MethodGet, "/graphs", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[]`, body)
}

func TestConvert_RejectsAliasBomb(t *testing.T) {
	t.Parallel()
	app := newApp()

	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 8; i++ {
		b.WriteString("a" + strconv.Itoa(i) + ": &a" + strconv.Itoa(i) + " [")
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString("*a" + strconv.Itoa(i-1))
		}
		b.WriteString("]\n")
	}

	status, body := do(t, app, http.MethodPost, "/convert", b.String())
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body, "aliases")
}
