package questgraph

// FindCycle returns one cycle in g as a path of quest ids that starts and
// ends on the same id, or nil when g is acyclic. Ids that only appear in
// edges take part like any node. The graph is not modified.
func FindCycle(g *Graph) []string {
	if g == nil {
		return nil
	}

	adj := make(map[string][]string)
	var order []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	for _, n := range g.Nodes {
		add(n.ID)
	}
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		add(e.From)
		add(e.To)
	}

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	state := make(map[string]int, len(order))
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = visiting
		stack = append(stack, id)
		for _, next := range adj[id] {
			switch state[next] {
			case visiting:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == next {
						cycle = append(append([]string{}, stack[i:]...), next)
						break
					}
				}
				return true
			case unvisited:
				if dfs(next) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = visited
		return false
	}

	// Walk in node order so the reported cycle is deterministic.
	for _, id := range order {
		if state[id] == unvisited && dfs(id) {
			return cycle
		}
	}
	return nil
}
