package wfgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetPathsCircle(t *testing.T) {
	for _, build := range []func(*testing.T) *Graph{circleGraph, innerLoopBackGraph} {
		g := build(t)

		paths, err := g.ResetPaths("sink0")
		require.NoError(t, err)
		require.Len(t, paths, 1)

		want := []Hop{
			step("sink0", 0, "n0", 0),
			step("n0", 0, "n1", 0),
			step("n1", 0, "n2", 0),
			step("n2", 0, "sink0", 0),
		}
		if diff := cmp.Diff(want, paths[0].Hops()); diff != "" {
			t.Errorf("reset path mismatch (-want +got):\n%s", diff)
		}
		assert.True(t, paths[0].Closed())
	}
}

func TestResetPathsNoNestedLoopBody(t *testing.T) {
	g := twoSinksGraph(t)

	for _, id := range []string{"sink0", "sink1"} {
		paths, err := g.ResetPaths(id)
		require.NoError(t, err)
		assert.Empty(t, paths, id)
	}
}

func TestResetPathsNested(t *testing.T) {
	g := nestedGraph(t)

	paths, err := g.ResetPaths("sink0")
	require.NoError(t, err)
	want := PathSet{NewPath(step("sink0", 0, "n1", 0), step("n1", 0, "sink0", 1))}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("sink0 resets mismatch (-want +got):\n%s", diff)
	}

	paths, err = g.ResetPaths("sink1")
	require.NoError(t, err)
	want = PathSet{NewPath(step("sink1", 0, "n2", 0), step("n2", 0, "sink1", 1))}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("sink1 resets mismatch (-want +got):\n%s", diff)
	}
}

func TestResetPathsCrossesNestedLoops(t *testing.T) {
	g := nestedGraph(t)

	paths, err := g.ResetPaths("outer")
	require.NoError(t, err)
	want := PathSet{NewPath(
		step("outer", 0, "n0", 0),
		step("n0", 0, "sink0", 0),
		step("sink0", 1, "sink1", 0),
		step("sink1", 1, "n3", 0),
		step("n3", 0, "outer", 0),
	)}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("outer resets mismatch (-want +got):\n%s", diff)
	}
}

func TestResetPathsSubLoop(t *testing.T) {
	g := subLoopGraph(t)

	paths, err := g.ResetPaths("nested")
	require.NoError(t, err)

	want := PathSet{
		NewPath(step("nested", 0, "evalmem", 0), step("evalmem", 1, "node", 0), SentinelHop),
		NewPath(step("nested", 0, "evalmem", 0), step("evalmem", 0, "nested", 0)),
	}
	assert.True(t, want.Equal(paths), "got %v", paths)
}

func TestResetPathsSideBranch(t *testing.T) {
	g := branchGraph(t)

	paths, err := g.ResetPaths("d")
	require.NoError(t, err)

	want := PathSet{
		NewPath(step("d", 0, "a", 0), step("a", 0, "b", 0), step("b", 0, "d", 0)),
		NewPath(step("d", 0, "a", 0), step("a", 0, "m", 0), SentinelHop),
	}
	assert.True(t, want.Equal(paths), "got %v", paths)
}

func TestResetPathsDiamondVisitsJoinOnce(t *testing.T) {
	g := diamondGraph(t)

	paths, err := g.ResetPaths("d")
	require.NoError(t, err)

	// c is entered once per walk; the second branch stops before it
	want := PathSet{
		NewPath(step("d", 0, "a", 0), step("a", 0, "c", 0), step("c", 0, "d", 0)),
		NewPath(step("d", 0, "b", 0), SentinelHop),
	}
	assert.True(t, want.Equal(paths), "got %v", paths)
}

func TestResetPathsClosedOrTerminated(t *testing.T) {
	for name, g := range fixtures(t) {
		for _, d := range g.Drivers() {
			paths, err := g.ResetPaths(d)
			require.NoError(t, err)
			for _, p := range paths {
				first, ok := p.First()
				require.True(t, ok)
				assert.Equal(t, d, first.From, "%s: %s", name, p)
				assert.True(t, p.Closed() != p.Terminated(), "%s: %s", name, p)
				if p.Closed() {
					last, _ := p.Last()
					assert.Equal(t, d, last.To, "%s: %s", name, p)
				}
			}
		}
	}
}

func TestResetPathsErrors(t *testing.T) {
	g := circleGraph(t)

	_, err := g.ResetPaths("n0")
	assert.ErrorIs(t, err, ErrTopology)

	_, err = g.ResetPaths("missing")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}
