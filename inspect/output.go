package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/meikuraledutech/wfgraph"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// write prints v as JSON or YAML; text output is handled by the caller through text.
func write(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func writePathSet(w io.Writer, paths wfgraph.PathSet) {
	for i, p := range paths {
		fmt.Fprintf(w, "path %d (%d hops)\n", i+1, p.Len())
		for h := range p.All() {
			fmt.Fprintf(w, "  %s\n", h)
		}
	}
}

func writeFailurePaths(w io.Writer, byDriver map[string]wfgraph.PathSet) {
	keys := make([]string, 0, len(byDriver))
	for k := range byDriver {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s:\n", k)
		writePathSet(w, byDriver[k])
	}
}

// driverRow is one line of the drivers table.
type driverRow struct {
	Node   string `json:"node" yaml:"node"`
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

func writeDriverTable(w io.Writer, rows []driverRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tDRIVER")
	for _, r := range rows {
		driver := r.Driver
		if driver == "" {
			driver = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", r.Node, driver)
	}
	return tw.Flush()
}
