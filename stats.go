package questgraph

// UnknownBucket is the statistics key for nodes with an empty type or era.
const UnknownBucket = "unknown"

// WithStatistics returns a copy of g carrying its statistics. Nodes and
// edges are shared with g, which is left untouched.
func WithStatistics(g *Graph) (*Graph, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	stats := &Statistics{
		TotalNodes:   len(g.Nodes),
		TotalEdges:   len(g.Edges),
		QuestsByType: make(map[string]int),
		QuestsByEra:  make(map[string]int),
	}
	for _, n := range g.Nodes {
		stats.QuestsByType[bucket(n.Type)]++
		stats.QuestsByEra[bucket(n.Era)]++
	}

	out := *g
	out.Statistics = stats
	return &out, nil
}

func bucket(key string) string {
	if key == "" {
		return UnknownBucket
	}
	return key
}

// Convert builds the graph for a document and attaches its statistics.
func Convert(root any) (*Graph, error) {
	g, err := Build(root)
	if err != nil {
		return nil, err
	}
	return WithStatistics(g)
}
