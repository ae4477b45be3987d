package questgraph

import (
	"fmt"
	"strings"
)

// Build turns a quest document into a graph without statistics. Nodes follow
// the order of the quests mapping; edges are emitted per quest as immediate
// unlocks, next-era unlocks, permanent blocks, then requires edges.
//
// Missing optional fields default to "" or nil. A record whose shape cannot
// be a quest fails with *MalformedQuestRecordError.
func Build(root any) (*Graph, error) {
	doc, err := rootMapping(root)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		Metadata: any(NewMapping()),
		Nodes:    []Node{},
		Edges:    []Edge{},
	}
	if md, ok := doc.Get("metadata"); ok && md != nil {
		g.Metadata = md
	}
	if cc, ok := doc.Get("critical_chains"); ok && cc != nil {
		g.CriticalChains = cc
	}

	rawQuests, _ := doc.Get("quests")
	if rawQuests == nil {
		return g, nil
	}
	quests, ok := rawQuests.(*Mapping)
	if !ok {
		return nil, &MalformedDocumentError{Field: "quests", Err: fmt.Errorf("expected a mapping, got %s", kindOf(rawQuests))}
	}

	for _, id := range quests.Keys() {
		v, _ := quests.Get(id)
		rec, ok := v.(*Mapping)
		if !ok {
			return nil, &MalformedQuestRecordError{QuestID: id, Msg: "expected a mapping, got " + kindOf(v)}
		}
		node, edges, err := buildQuest(id, rec)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, node)
		g.Edges = append(g.Edges, edges...)
	}
	return g, nil
}

func rootMapping(root any) (*Mapping, error) {
	switch r := root.(type) {
	case nil:
		return NewMapping(), nil
	case *Mapping:
		return r, nil
	}
	return nil, &MalformedDocumentError{Err: fmt.Errorf("expected a mapping at the document root, got %s", kindOf(root))}
}

func buildQuest(id string, rec *Mapping) (Node, []Edge, error) {
	q := questReader{id: id, rec: rec}
	node := Node{
		ID:           id,
		Name:         q.text("name"),
		Era:          q.text("era"),
		Type:         q.text("type"),
		ClassFocus:   q.optionalText("class_focus"),
		FactionFocus: q.optionalText("faction_focus"),
	}

	var edges []Edge
	influences := q.mapping(rec, "influences")
	unlocks := q.mapping(influences, "influences.unlocks")
	for _, to := range q.targets(unlocks, "influences.unlocks", TimingImmediate) {
		edges = append(edges, UnlockEdge(id, to, TimingImmediate))
	}
	for _, to := range q.targets(unlocks, "influences.unlocks", TimingNextEra) {
		edges = append(edges, UnlockEdge(id, to, TimingNextEra))
	}
	blocks := q.mapping(influences, "influences.blocks")
	for _, to := range q.targets(blocks, "influences.blocks", "permanent") {
		edges = append(edges, BlockEdge(id, to))
	}
	edges = append(edges, q.requires()...)

	if q.err != nil {
		return Node{}, nil, q.err
	}
	return node, edges, nil
}

// questReader reads fields of one quest record and keeps the first shape
// error it runs into, so the build code can stay linear.
type questReader struct {
	id  string
	rec *Mapping
	err error
}

func (q *questReader) fail(field, msg string) {
	if q.err == nil {
		q.err = &MalformedQuestRecordError{QuestID: q.id, Field: field, Msg: msg}
	}
}

func (q *questReader) text(field string) string {
	v, _ := q.rec.Get(field)
	s, ok := scalarString(v)
	if !ok {
		q.fail(field, "expected a scalar, got "+kindOf(v))
	}
	return s
}

// optionalText returns nil for an absent, null or empty field.
func (q *questReader) optionalText(field string) *string {
	v, _ := q.rec.Get(field)
	if v == nil {
		return nil
	}
	s, ok := scalarString(v)
	if !ok {
		q.fail(field, "expected a scalar, got "+kindOf(v))
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

// mapping reads the mapping at path, whose last segment is a key of parent.
func (q *questReader) mapping(parent *Mapping, path string) *Mapping {
	field := path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		field = path[i+1:]
	}
	v, _ := parent.Get(field)
	if v == nil {
		return nil
	}
	m, ok := v.(*Mapping)
	if !ok {
		q.fail(path, "expected a mapping, got "+kindOf(v))
		return nil
	}
	return m
}

func (q *questReader) targets(parent *Mapping, path, field string) []string {
	v, _ := parent.Get(field)
	if v == nil {
		return nil
	}
	seq, ok := v.([]any)
	if !ok {
		q.fail(path+"."+field, "expected a sequence, got "+kindOf(v))
		return nil
	}
	out := make([]string, 0, len(seq))
	for i, item := range seq {
		s, ok := scalarString(item)
		if !ok || item == nil {
			q.fail(fmt.Sprintf("%s.%s[%d]", path, field, i), "expected a quest id, got "+kindOf(item))
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (q *questReader) requires() []Edge {
	v, _ := q.rec.Get("influenced_by")
	if v == nil {
		return nil
	}
	seq, ok := v.([]any)
	if !ok {
		q.fail("influenced_by", "expected a sequence, got "+kindOf(v))
		return nil
	}
	var edges []Edge
	for i, item := range seq {
		desc, ok := item.(*Mapping)
		if !ok {
			continue
		}
		rawQuest, _ := desc.Get("quest")
		if rawQuest == nil {
			continue
		}
		prereq, ok := scalarString(rawQuest)
		if !ok {
			q.fail(fmt.Sprintf("influenced_by[%d].quest", i), "expected a quest id, got "+kindOf(rawQuest))
			return nil
		}
		var condition *string
		if rawCond, _ := desc.Get("condition"); rawCond != nil {
			c, ok := scalarString(rawCond)
			if !ok {
				q.fail(fmt.Sprintf("influenced_by[%d].condition", i), "expected a scalar, got "+kindOf(rawCond))
				return nil
			}
			condition = &c
		}
		edges = append(edges, RequireEdge(prereq, q.id, condition))
	}
	return edges
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Mapping:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64, float64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
