package batch

import (
	"path/filepath"

	"github.com/meikuraledutech/questgraph"
)

// Narrative sources and the frontend data files generated from them,
// relative to the repository root.
const (
	narrativeDir = "knowledge/canon/narrative"
	outputDir    = "services/frontend/src/data/narrative"
)

// DefaultPairs returns the pre-declared conversion list resolved against root.
// Only the quest dependency graph is transformed; the other narrative files
// are copied from YAML to JSON as they are.
func DefaultPairs(root string) []Pair {
	return []Pair{
		{
			Name:      "quest-graph",
			Input:     filepath.Join(root, narrativeDir, "quest-dependencies.yaml"),
			Output:    filepath.Join(root, outputDir, "quest-graph.json"),
			Converter: questgraph.GraphConverter,
		},
		{
			Name:      "faction-relations",
			Input:     filepath.Join(root, narrativeDir, "faction-relations.yaml"),
			Output:    filepath.Join(root, outputDir, "faction-relations.json"),
			Converter: questgraph.IdentityConverter,
		},
		{
			Name:      "era-timeline",
			Input:     filepath.Join(root, narrativeDir, "era-timeline.yaml"),
			Output:    filepath.Join(root, outputDir, "era-timeline.json"),
			Converter: questgraph.IdentityConverter,
		},
	}
}
