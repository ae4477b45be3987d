package questgraph

import (
	"bytes"
	"encoding/json"
)

// Edge types.
const (
	EdgeUnlocks  = "unlocks"
	EdgeBlocks   = "blocks"
	EdgeRequires = "requires"
)

// Unlock timings.
const (
	TimingImmediate = "immediate"
	TimingNextEra   = "next_era"
)

// Graph is the normalized quest dependency graph produced from one document.
type Graph struct {
	Metadata       any         `json:"metadata"`
	Nodes          []Node      `json:"nodes"`
	Edges          []Edge      `json:"edges"`
	CriticalChains any         `json:"critical_chains,omitempty"`
	Statistics     *Statistics `json:"statistics,omitempty"`
}

// Node is one quest. ClassFocus and FactionFocus are always present on the
// wire, as null when the source omits them.
type Node struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Era          string  `json:"era"`
	Type         string  `json:"type"`
	ClassFocus   *string `json:"class_focus"`
	FactionFocus *string `json:"faction_focus"`
}

// Edge is a directed relation between two quests. Which of Timing,
// Permanent and Condition is meaningful depends on Type.
type Edge struct {
	From      string
	To        string
	Type      string
	Timing    string
	Permanent bool
	Condition *string
}

// Statistics summarizes a graph. It is always derived, never authored.
type Statistics struct {
	TotalNodes   int            `json:"total_nodes"`
	TotalEdges   int            `json:"total_edges"`
	QuestsByType map[string]int `json:"quests_by_type"`
	QuestsByEra  map[string]int `json:"quests_by_era"`
}

// UnlockEdge returns an unlocks edge with the given timing.
func UnlockEdge(from, to, timing string) Edge {
	return Edge{From: from, To: to, Type: EdgeUnlocks, Timing: timing}
}

// BlockEdge returns a permanent blocks edge.
func BlockEdge(from, to string) Edge {
	return Edge{From: from, To: to, Type: EdgeBlocks, Permanent: true}
}

// RequireEdge returns a requires edge from the prerequisite to the quest
// that declared it.
func RequireEdge(prerequisite, quest string, condition *string) Edge {
	return Edge{From: prerequisite, To: quest, Type: EdgeRequires, Condition: condition}
}

type unlocksWire struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Type   string `json:"type"`
	Timing string `json:"timing"`
}

type blocksWire struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Type      string `json:"type"`
	Permanent bool   `json:"permanent"`
}

type requiresWire struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Type      string  `json:"type"`
	Condition *string `json:"condition"`
}

type edgeWire struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Type      string          `json:"type"`
	Timing    string          `json:"timing,omitempty"`
	Permanent bool            `json:"permanent,omitempty"`
	Condition json.RawMessage `json:"condition,omitempty"`
}

// MarshalJSON writes only the fields that belong to the edge's type.
func (e Edge) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EdgeUnlocks:
		return marshalJSON(unlocksWire{e.From, e.To, e.Type, e.Timing})
	case EdgeBlocks:
		return marshalJSON(blocksWire{e.From, e.To, e.Type, e.Permanent})
	case EdgeRequires:
		return marshalJSON(requiresWire{e.From, e.To, e.Type, e.Condition})
	}
	return marshalJSON(edgeWire{From: e.From, To: e.To, Type: e.Type, Timing: e.Timing, Permanent: e.Permanent})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var w edgeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Edge{From: w.From, To: w.To, Type: w.Type, Timing: w.Timing, Permanent: w.Permanent}
	if len(w.Condition) > 0 && !bytes.Equal(w.Condition, []byte("null")) {
		var c string
		if err := json.Unmarshal(w.Condition, &c); err != nil {
			return err
		}
		e.Condition = &c
	}
	return nil
}
