package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/meikuraledutech/questgraph"
	"github.com/meikuraledutech/questgraph/yamldoc"
)

const act1 = `
metadata:
  title: Night City, Act I
quests:
  the_heist:
    name: The Heist
    era: "2077"
    type: main
    influences:
      unlocks:
        immediate: [playing_for_time]
      blocks:
        permanent: [corpo_loyalty]
  playing_for_time:
    name: Playing for Time
    era: "2077"
    type: main
    influenced_by:
      - quest: the_heist
        condition: survived
  corpo_loyalty:
    name: Corpo Loyalty
    type: side
    faction_focus: arasaka
critical_chains:
  - [the_heist, playing_for_time]
`

func main() {
	// ── Build from an in-code document ────────────────────────────────
	doc := questgraph.Map(
		"quests", questgraph.Map(
			"q1", questgraph.Map("name", "A", "era", "e1", "type", "main",
				"influences", questgraph.Map("unlocks", questgraph.Map("immediate", []any{"q2"}))),
			"q2", questgraph.Map("name", "B", "era", "e1", "type", "side",
				"influenced_by", []any{questgraph.Map("quest", "q1")}),
		),
	)
	g, err := questgraph.Convert(doc)
	if err != nil {
		log.Fatalf("convert: %v", err)
	}
	fmt.Println("graph built from code:")
	printJSON(g)

	// ── Build from YAML ───────────────────────────────────────────────
	root, err := yamldoc.Decode(strings.NewReader(act1))
	if err != nil {
		log.Fatalf("decode: %v", err)
	}
	g, err = questgraph.Convert(root)
	if err != nil {
		log.Fatalf("convert: %v", err)
	}
	fmt.Println("\ngraph built from YAML:")
	printJSON(g)

	if cycle := questgraph.FindCycle(g); cycle != nil {
		fmt.Printf("\ncycle: %s\n", strings.Join(cycle, " -> "))
	}
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
