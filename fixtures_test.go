package wfgraph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// comp returns a component with endpoints named inp_N and out_N.
func comp(id string, driver bool, ins, outs int) Node {
	n := Node{ID: id, Name: id, Driver: driver}
	for i := 0; i < ins; i++ {
		n.Inputs = append(n.Inputs, Endpoint{ID: inID(id, i), Name: fmt.Sprintf("inp_%d", i)})
	}
	for i := 0; i < outs; i++ {
		n.Outputs = append(n.Outputs, Endpoint{ID: outID(id, i), Name: fmt.Sprintf("out_%d", i)})
	}
	return n
}

func inID(node string, i int) string { return fmt.Sprintf("%s/in/%d", node, i) }
func outID(node string, i int) string { return fmt.Sprintf("%s/out/%d", node, i) }

func conn(from string, out int, fc EndpointCharacter, to string, in int, tc EndpointCharacter) Edge {
	return NewEdge(from, outID(from, out), fc, to, inID(to, in), tc)
}

// same connects two components inside one loop scope.
func same(from string, out int, to string, in int) Edge {
	return conn(from, out, SameLoop, to, in, SameLoop)
}

// step is the hop expected for the edge from.out_N -> to.inp_M.
func step(from string, out int, to string, in int) Hop {
	return Hop{From: from, FromOutput: fmt.Sprintf("out_%d", out), To: to, ToInput: fmt.Sprintf("inp_%d", in)}
}

func mustBuild(t *testing.T, nodes []Node, edges []Edge) *Graph {
	t.Helper()
	g, err := BuildGraph(nodes, edges)
	require.NoError(t, err)
	return g
}

// circleGraph: sink0 -> n0 -> n1 -> n2 -> sink0, all in one loop.
func circleGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{comp("sink0", true, 1, 1), comp("n0", false, 1, 1), comp("n1", false, 1, 1), comp("n2", false, 1, 1)},
		[]Edge{same("sink0", 0, "n0", 0), same("n0", 0, "n1", 0), same("n1", 0, "n2", 0), same("n2", 0, "sink0", 0)},
	)
}

// innerLoopBackGraph is circleGraph where n2 also feeds back into n0.
func innerLoopBackGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{comp("sink0", true, 1, 1), comp("n0", false, 2, 1), comp("n1", false, 1, 1), comp("n2", false, 1, 2)},
		[]Edge{
			same("sink0", 0, "n0", 0),
			same("n0", 0, "n1", 0),
			same("n1", 0, "n2", 0),
			same("n2", 0, "sink0", 0),
			same("n2", 0, "n0", 1),
		},
	)
}

// twoSinksGraph chains two drivers inside the outer loop without any nested loop body.
func twoSinksGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{comp("outer", true, 1, 1), comp("sink0", true, 1, 1), comp("sink1", true, 1, 1), comp("n0", false, 1, 1)},
		[]Edge{
			same("outer", 0, "sink0", 0),
			conn("sink0", 0, OuterLoop, "sink1", 0, OuterLoop),
			conn("sink1", 0, OuterLoop, "n0", 0, SameLoop),
			same("n0", 0, "outer", 0),
		},
	)
}

// nestedGraph chains two drivers inside the outer loop, each with a one-node loop body.
//
//	outer -> n0 -> sink0 => sink1 -> n3 -> outer
//	              sink0 <-> n1
//	              sink1 <-> n2
func nestedGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{
			comp("outer", true, 1, 2),
			comp("sink0", true, 3, 2),
			comp("sink1", true, 3, 2),
			comp("n0", false, 1, 1),
			comp("n1", false, 1, 1),
			comp("n2", false, 1, 1),
			comp("n3", false, 1, 1),
		},
		[]Edge{
			same("outer", 0, "n0", 0),
			conn("n0", 0, SameLoop, "sink0", 0, OuterLoop),
			same("sink0", 0, "n1", 0),
			same("n1", 0, "sink0", 1),
			conn("sink0", 1, OuterLoop, "sink1", 0, OuterLoop),
			same("sink1", 0, "n2", 0),
			same("n2", 0, "sink1", 1),
			conn("sink1", 1, OuterLoop, "n3", 0, SameLoop),
			same("n3", 0, "outer", 0),
		},
	)
}

// reducedInputsGraph: n0 feeds n1 twice, once per character, before closing on outer.
func reducedInputsGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{comp("outer", true, 1, 1), comp("n0", false, 1, 2), comp("n1", false, 2, 1)},
		[]Edge{
			same("outer", 0, "n0", 0),
			conn("n0", 0, OuterLoop, "n1", 0, OuterLoop),
			conn("n0", 1, OuterLoop, "n1", 1, SameLoop),
			same("n1", 0, "outer", 0),
		},
	)
}

// subLoopGraph nests a loop whose body holds an evaluation memory: a non-driver with
// ports of both characters that runs its own sub-loop with node.
func subLoopGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{
			comp("outer", true, 1, 1),
			comp("nested", true, 1, 1),
			comp("evalmem", false, 2, 2),
			comp("node", false, 1, 1),
		},
		[]Edge{
			conn("outer", 0, SameLoop, "nested", 0, OuterLoop),
			conn("nested", 0, SameLoop, "evalmem", 0, OuterLoop),
			same("evalmem", 1, "node", 0),
			same("node", 0, "evalmem", 1),
			conn("evalmem", 0, OuterLoop, "nested", 0, SameLoop),
			conn("nested", 0, OuterLoop, "outer", 0, SameLoop),
		},
	)
}

// branchGraph is a loop with a side branch to m, which has no outputs.
func branchGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{comp("d", true, 1, 1), comp("a", false, 1, 1), comp("b", false, 1, 1), comp("m", false, 1, 0)},
		[]Edge{same("d", 0, "a", 0), same("a", 0, "b", 0), same("a", 0, "m", 0), same("b", 0, "d", 0)},
	)
}

// siblingDriverGraph runs o -> x -> y -> s inside one scope; s closes the loop on o
// through its outer-loop output. x is found to belong to o first, y to s.
func siblingDriverGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{comp("o", true, 1, 1), comp("x", false, 1, 1), comp("y", false, 1, 1), comp("s", true, 1, 1)},
		[]Edge{
			same("o", 0, "x", 0),
			same("x", 0, "y", 0),
			same("y", 0, "s", 0),
			conn("s", 0, OuterLoop, "o", 0, SameLoop),
		},
	)
}

// diamondGraph splits the body of d into two branches that meet again at c.
func diamondGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{comp("d", true, 1, 1), comp("a", false, 1, 1), comp("b", false, 1, 1), comp("c", false, 2, 1)},
		[]Edge{
			same("d", 0, "a", 0),
			same("d", 0, "b", 0),
			same("a", 0, "c", 0),
			same("b", 0, "c", 1),
			same("c", 0, "d", 0),
		},
	)
}

// pipelineGraph has no driver: a feeds b and c.
func pipelineGraph(t *testing.T) *Graph {
	return mustBuild(t,
		[]Node{comp("a", false, 0, 2), comp("b", false, 1, 0), comp("c", false, 2, 0)},
		[]Edge{same("a", 0, "b", 0), same("a", 0, "c", 0), same("a", 1, "c", 1)},
	)
}

// fixtures lists every graph that has at least one driver.
func fixtures(t *testing.T) map[string]*Graph {
	return map[string]*Graph{
		"circle":          circleGraph(t),
		"inner loop back": innerLoopBackGraph(t),
		"two sinks":       twoSinksGraph(t),
		"nested":          nestedGraph(t),
		"reduced inputs":  reducedInputsGraph(t),
		"sub-loop":        subLoopGraph(t),
		"branch":          branchGraph(t),
	}
}
