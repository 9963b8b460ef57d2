package wfgraph

// ResetPaths returns the walks through the loop body of a driver that have to be
// reset before the driver starts its next iteration.
//
// A path closing back on the driver is returned as is. A branch that cannot go on
// without leaving the loop ends with SentinelHop. The set is empty when the driver
// has no same-loop output connected.
func (g *Graph) ResetPaths(driverID string) (PathSet, error) {
	n, ok := g.nodes[driverID]
	if !ok {
		return nil, nodeNotFound(driverID)
	}
	if !n.Driver {
		return nil, &GraphTopologyError{Node: driverID, Msg: "node is not a loop driver"}
	}

	chains := g.resets[driverID]
	out := make(PathSet, 0, len(chains))
	for _, c := range chains {
		p := g.path(c.edges)
		if !c.closed {
			p.Append(SentinelHop)
		}
		out = append(out, p)
	}
	return out, nil
}

// resetChains enumerates the loop body of start. Nodes are entered at most once per
// call; the driver itself is never marked so every branch reaching it closes.
func (g *Graph) resetChains(start string) []chain {
	visited := make(map[string]bool)
	var out []chain

	next := func(at string, via *Edge) []Edge {
		node := g.nodes[at]
		var picked []Edge
		for _, e := range g.index.From(at) {
			if e.TargetNode != start && visited[e.TargetNode] {
				continue
			}
			var follow bool
			switch {
			case via == nil:
				follow = e.SourceCharacter == SameLoop
			case node.Driver:
				// nested loop: leave it through the ports of the kind we entered by
				follow = e.SourceCharacter == via.TargetCharacter
			default:
				follow = e.SourceCharacter == SameLoop || e.TargetNode == start
			}
			if !follow {
				continue
			}
			if e.TargetNode != start {
				visited[e.TargetNode] = true
			}
			picked = append(picked, e)
		}
		return picked
	}

	var walk func(at string, via *Edge, walked []Edge)
	walk = func(at string, via *Edge, walked []Edge) {
		if via != nil && at == start {
			out = append(out, chain{edges: walked, closed: true})
			return
		}
		edges := next(at, via)
		if len(edges) == 0 {
			if len(walked) > 0 {
				out = append(out, chain{edges: walked})
			}
			return
		}
		for i := range edges {
			e := edges[i]
			step := make([]Edge, len(walked), len(walked)+1)
			copy(step, walked)
			walk(e.TargetNode, &e, append(step, e))
		}
	}

	walk(start, nil, nil)
	return out
}
