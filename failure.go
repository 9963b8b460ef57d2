package wfgraph

// FailurePaths returns the walks along which the failure of a component travels to
// the driver(s) that react to it, keyed by driver ID.
//
// A component inside a loop reports to its LoopDriver; every other driver met on the
// way is crossed through its outer-loop outputs. A failing driver reports through its
// outer-loop outputs to the first driver of the enclosing loop. When a component
// without a loop driver reaches no driver at all, the failure goes to the immediate
// consumers instead: one single-hop path per consumer, keyed by the consumer.
func (g *Graph) FailurePaths(id string) (map[string]PathSet, error) {
	start, ok := g.nodes[id]
	if !ok {
		return nil, nodeNotFound(id)
	}

	// target stays empty for drivers and for components outside any loop
	var target string
	if !start.Driver {
		if d, err := g.LoopDriver(id); err == nil {
			target = d
		}
	}

	result := make(map[string]PathSet)
	reported := make(map[string]map[Hop]bool)

	emit := func(driver string, walked []Edge) {
		p := g.path(walked)
		last, _ := p.Last()
		key := Hop{To: last.To, ToInput: last.ToInput}
		if reported[driver] == nil {
			reported[driver] = make(map[Hop]bool)
		}
		if reported[driver][key] {
			return
		}
		reported[driver][key] = true
		result[driver] = append(result[driver], p)
	}

	var walk func(e Edge, walked []Edge, onPath map[string]bool)
	walk = func(e Edge, walked []Edge, onPath map[string]bool) {
		at := e.TargetNode
		if at == id {
			return
		}
		node := g.nodes[at]
		if at == target || (target == "" && node.Driver && e.TargetCharacter == SameLoop) {
			emit(at, walked)
			return
		}

		mixed := g.mixedOutputs(at)
		key := at
		if mixed {
			key = at + "\x00" + string(e.TargetCharacter)
		}
		if onPath[key] {
			return
		}
		onPath[key] = true
		defer delete(onPath, key)

		want := SameLoop
		switch {
		case node.Driver:
			want = OuterLoop
		case mixed:
			want = e.TargetCharacter.opposite()
		}
		for _, next := range g.index.From(at) {
			if next.SourceCharacter != want {
				continue
			}
			step := make([]Edge, len(walked), len(walked)+1)
			copy(step, walked)
			walk(next, append(step, next), onPath)
		}
	}

	for _, e := range g.index.From(id) {
		if start.Driver && e.SourceCharacter != OuterLoop {
			continue
		}
		walk(e, []Edge{e}, make(map[string]bool))
	}

	if len(result) > 0 || target != "" {
		return result, nil
	}

	for _, e := range g.index.From(id) {
		if _, done := result[e.TargetNode]; done {
			continue
		}
		result[e.TargetNode] = PathSet{g.path([]Edge{e})}
	}
	return result, nil
}
