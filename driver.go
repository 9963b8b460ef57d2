package wfgraph

// LoopDriver returns the ID of the driver controlling the loop the node executes in.
//
// The search is a breadth-first walk over edges that are same-loop on both ends,
// ignoring edge direction. Outer-loop ends mark a nesting boundary, so a node only
// sees the scope it is embedded in and the nearest driver of that scope wins.
// A driver resolves to itself.
func (g *Graph) LoopDriver(id string) (string, error) {
	if _, ok := g.nodes[id]; !ok {
		return "", nodeNotFound(id)
	}

	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if g.nodes[cur].Driver {
			return cur, nil
		}
		for _, next := range g.sameLoop[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return "", &GraphTopologyError{Node: id, Msg: "no loop driver reachable in its same-loop scope"}
}
