package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meikuraledutech/wfgraph"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	file    string
	output  string
	verbose bool

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "wfgraph",
		Short: "Inspect the loop topology of workflow graphs",
		Long: `wfgraph loads a workflow graph definition (YAML or JSON) and answers
loop-topology questions about it: which driver controls a component,
which paths a driver resets between iterations, and where the failure
of a component is propagated to.

Examples:
  wfgraph validate -f workflow.yaml
  wfgraph driver -f workflow.yaml optimizer-input
  wfgraph reset -f workflow.yaml converger --output json
  wfgraph render -f workflow.yaml --format svg --out workflow.svg`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.output {
			case outputText, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", opts.output)
			}
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Path to the graph file, YAML or JSON (- reads YAML from stdin)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text, json, yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug information to stderr")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(
		newValidateCmd(opts),
		newDriversCmd(opts),
		newDriverCmd(opts),
		newResetCmd(opts),
		newFailureCmd(opts),
		newDotCmd(opts),
		newRenderCmd(opts),
	)
	return root
}

// loadGraph reads and validates the graph named by --file.
func (o *options) loadGraph(cmd *cobra.Command) (*wfgraph.Graph, error) {
	start := time.Now()

	var (
		r   io.Reader
		ext = strings.ToLower(filepath.Ext(o.file))
	)
	if o.file == "-" {
		r = cmd.InOrStdin()
		ext = ".yaml"
	} else {
		f, err := os.Open(o.file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var (
		g   *wfgraph.Graph
		err error
	)
	switch ext {
	case ".yaml", ".yml":
		g, err = wfgraph.DecodeYAML(r)
	default:
		g, err = wfgraph.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.file, err)
	}

	o.logger.Debug("graph loaded",
		slog.String("file", o.file),
		slog.Int("nodes", g.Len()),
		slog.Int("edges", len(g.Edges())),
		slog.Duration("took", time.Since(start)))
	return g, nil
}
