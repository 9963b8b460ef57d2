package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workflowYAML = `
nodes:
  - id: optimizer
    driver: true
    inputs:  [{id: opt-in, name: response}]
    outputs: [{id: opt-out, name: design}]
  - id: model
    inputs:  [{id: model-in, name: x}]
    outputs: [{id: model-out, name: f}]
edges:
  - source_node: optimizer
    source_output: opt-out
    source_character: same_loop
    target_node: model
    target_input: model-in
    target_character: same_loop
  - source_node: model
    source_output: model-out
    source_character: same_loop
    target_node: optimizer
    target_input: opt-in
    target_character: same_loop
`

func writeWorkflow(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(workflowYAML), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, "validate", "-f", writeWorkflow(t))
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 nodes, 2 edges, 1 drivers\n", out)
}

func TestDriverCmd(t *testing.T) {
	file := writeWorkflow(t)

	out, err := run(t, "driver", "-f", file, "model")
	require.NoError(t, err)
	assert.Equal(t, "optimizer\n", out)

	out, err = run(t, "driver", "-f", file, "model", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"node":"model","driver":"optimizer"}`, out)

	_, err = run(t, "driver", "-f", file, "missing")
	assert.Error(t, err)
}

func TestDriversCmd(t *testing.T) {
	out, err := run(t, "drivers", "-f", writeWorkflow(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"NODE", "DRIVER"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"model", "optimizer"}, strings.Fields(lines[2]))
}

func TestResetCmd(t *testing.T) {
	out, err := run(t, "reset", "-f", writeWorkflow(t), "optimizer")
	require.NoError(t, err)
	assert.Equal(t, "path 1 (2 hops)\n"+
		"  optimizer.design -> model.x\n"+
		"  model.f -> optimizer.response\n", out)
}

func TestFailureCmdJSON(t *testing.T) {
	out, err := run(t, "failure", "-f", writeWorkflow(t), "model", "--output", "json")
	require.NoError(t, err)

	var got map[string][][]map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got["optimizer"], 1)
	assert.Equal(t, "optimizer", got["optimizer"][0][0]["to"])
}

func TestDotCmd(t *testing.T) {
	out, err := run(t, "dot", "-f", writeWorkflow(t))
	require.NoError(t, err)
	assert.Contains(t, out, `"model" -> "optimizer"`)
}

func TestRootCmdErrors(t *testing.T) {
	_, err := run(t, "validate")
	assert.Error(t, err, "missing --file")

	_, err = run(t, "validate", "-f", writeWorkflow(t), "-o", "xml")
	assert.Error(t, err)

	_, err = run(t, "validate", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
