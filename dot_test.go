package wfgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColors(t *testing.T) {
	g := subLoopGraph(t)

	assert.Equal(t, ColorDriver, g.NodeColor("nested"))
	assert.Equal(t, ColorMixed, g.NodeColor("evalmem"))
	assert.Equal(t, "", g.NodeColor("node"))

	assert.Equal(t, ColorOuterInput, EdgeColor(conn("a", 0, SameLoop, "b", 0, OuterLoop)))
	assert.Equal(t, ColorOuterOutput, EdgeColor(conn("a", 0, OuterLoop, "b", 0, SameLoop)))
	assert.Equal(t, "", EdgeColor(same("a", 0, "b", 0)))
}

func TestDOT(t *testing.T) {
	dot := nestedGraph(t).DOT()

	assert.True(t, strings.HasPrefix(dot, "digraph wf_graph {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `"sink0" [label="sink0", shape=rectangle, fontsize=10, fontname="Consolas", color="#AA3939"];`)
	assert.Contains(t, dot, `"n0" [label="n0", shape=rectangle, fontsize=10, fontname="Consolas"];`)
	assert.Contains(t, dot, `"n0" -> "sink0" [label="out_0 > inp_0", fontsize=10, fontname="Consolas", color="#55AA55"];`)
	assert.Contains(t, dot, `"sink1" -> "n3" [label="out_1 > inp_0", fontsize=10, fontname="Consolas", color="#4B698B"];`)
	assert.Equal(t, 9, strings.Count(dot, " -> "))
}
