// Package storetest holds the behaviour every wfgraph.Store implementation must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/wfgraph"
)

// Graph returns an optimizer loop with a nested converger loop.
func Graph(t *testing.T) *wfgraph.Graph {
	t.Helper()
	ep := func(id, name string) []wfgraph.Endpoint { return []wfgraph.Endpoint{{ID: id, Name: name}} }
	nodes := []wfgraph.Node{
		{ID: "optimizer", Name: "Optimizer", Driver: true, Inputs: ep("opt-in", "response"), Outputs: ep("opt-out", "design")},
		{ID: "converger", Name: "Converger", Driver: true,
			Inputs:  []wfgraph.Endpoint{{ID: "conv-start", Name: "start"}, {ID: "conv-back", Name: "back"}},
			Outputs: []wfgraph.Endpoint{{ID: "conv-loop", Name: "loop"}, {ID: "conv-done", Name: "done"}}},
		{ID: "solver", Inputs: ep("solver-in", ""), Outputs: ep("solver-out", "")},
	}
	edges := []wfgraph.Edge{
		wfgraph.NewEdge("optimizer", "opt-out", wfgraph.SameLoop, "converger", "conv-start", wfgraph.OuterLoop),
		wfgraph.NewEdge("converger", "conv-loop", wfgraph.SameLoop, "solver", "solver-in", wfgraph.SameLoop),
		wfgraph.NewEdge("solver", "solver-out", wfgraph.SameLoop, "converger", "conv-back", wfgraph.SameLoop),
		wfgraph.NewEdge("converger", "conv-done", wfgraph.OuterLoop, "optimizer", "opt-in", wfgraph.SameLoop),
	}
	g, err := wfgraph.BuildGraph(nodes, edges)
	require.NoError(t, err)
	return g
}

// Run exercises s. The store must start empty with its schema created.
func Run(t *testing.T, s wfgraph.Store) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		g := Graph(t)
		id, err := s.SaveGraph(ctx, "", g)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		t.Cleanup(func() { _ = s.DeleteGraph(ctx, id) })

		got, err := s.GetGraph(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, wfgraph.Equal(g, got))

		d, err := got.LoopDriver("solver")
		require.NoError(t, err)
		assert.Equal(t, "converger", d)

		nodes, err := s.ListNodes(ctx, id)
		require.NoError(t, err)
		require.Len(t, nodes, 3)
		assert.Equal(t, "optimizer", nodes[0].ID)
		assert.Equal(t, "Optimizer", nodes[0].Name)
		assert.True(t, nodes[1].Driver)
		assert.Equal(t, "back", nodes[1].EndpointName("conv-back"))

		edges, err := s.ListEdges(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, g.Edges(), edges)
	})

	t.Run("save replaces", func(t *testing.T) {
		id, err := s.SaveGraph(ctx, "replace-me", Graph(t))
		require.NoError(t, err)
		assert.Equal(t, "replace-me", id)
		t.Cleanup(func() { _ = s.DeleteGraph(ctx, id) })

		small, err := wfgraph.BuildGraph([]wfgraph.Node{{ID: "only", Driver: true}}, nil)
		require.NoError(t, err)
		_, err = s.SaveGraph(ctx, id, small)
		require.NoError(t, err)

		got, err := s.GetGraph(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())

		edges, err := s.ListEdges(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, edges)
	})

	t.Run("missing graph", func(t *testing.T) {
		got, err := s.GetGraph(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, got)

		nodes, err := s.ListNodes(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Empty(t, nodes)

		assert.NoError(t, s.DeleteGraph(ctx, "does-not-exist"))
	})

	t.Run("list and delete", func(t *testing.T) {
		first, err := s.SaveGraph(ctx, "", Graph(t))
		require.NoError(t, err)
		second, err := s.SaveGraph(ctx, "", Graph(t))
		require.NoError(t, err)

		infos, err := s.ListGraphs(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 2)
		ids := []string{infos[0].ID, infos[1].ID}
		assert.ElementsMatch(t, []string{first, second}, ids)
		assert.Equal(t, 3, infos[0].Nodes)
		assert.Equal(t, 4, infos[0].Edges)
		assert.False(t, infos[0].CreatedAt.IsZero())

		require.NoError(t, s.DeleteGraph(ctx, first))
		require.NoError(t, s.DeleteGraph(ctx, second))

		infos, err = s.ListGraphs(ctx)
		require.NoError(t, err)
		assert.NotNil(t, infos)
		assert.Empty(t, infos)
	})

	t.Run("nil graph", func(t *testing.T) {
		_, err := s.SaveGraph(ctx, "", nil)
		assert.Error(t, err)
	})
}
