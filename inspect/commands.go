package main

import (
	"fmt"
	"io"
	"os"

	"github.com/meikuraledutech/wfgraph/render"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the graph definition is well formed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.loadGraph(cmd)
			if err != nil {
				return err
			}
			summary := struct {
				Nodes   int      `json:"nodes" yaml:"nodes"`
				Edges   int      `json:"edges" yaml:"edges"`
				Drivers []string `json:"drivers" yaml:"drivers"`
			}{g.Len(), len(g.Edges()), g.Drivers()}
			return write(cmd.OutOrStdout(), opts.output, summary, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "ok: %d nodes, %d edges, %d drivers\n", summary.Nodes, summary.Edges, len(summary.Drivers))
				return err
			})
		},
	}
}

func newDriversCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List the loop driver of every node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.loadGraph(cmd)
			if err != nil {
				return err
			}
			var rows []driverRow
			for _, n := range g.Nodes() {
				row := driverRow{Node: n.ID}
				if d, err := g.LoopDriver(n.ID); err != nil {
					row.Error = err.Error()
				} else {
					row.Driver = d
				}
				rows = append(rows, row)
			}
			return write(cmd.OutOrStdout(), opts.output, rows, func(w io.Writer) error {
				return writeDriverTable(w, rows)
			})
		},
	}
}

func newDriverCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "driver NODE",
		Short: "Print the driver controlling the loop NODE executes in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.loadGraph(cmd)
			if err != nil {
				return err
			}
			d, err := g.LoopDriver(args[0])
			if err != nil {
				return err
			}
			row := driverRow{Node: args[0], Driver: d}
			return write(cmd.OutOrStdout(), opts.output, row, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, d)
				return err
			})
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset DRIVER",
		Short: "Print the paths DRIVER resets between iterations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.loadGraph(cmd)
			if err != nil {
				return err
			}
			paths, err := g.ResetPaths(args[0])
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.output, paths, func(w io.Writer) error {
				if len(paths) == 0 {
					fmt.Fprintln(w, "no reset paths")
				}
				writePathSet(w, paths)
				return nil
			})
		},
	}
}

func newFailureCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "failure NODE",
		Short: "Print where a failure of NODE is propagated to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.loadGraph(cmd)
			if err != nil {
				return err
			}
			byDriver, err := g.FailurePaths(args[0])
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.output, byDriver, func(w io.Writer) error {
				if len(byDriver) == 0 {
					fmt.Fprintln(w, "failure is not propagated")
				}
				writeFailurePaths(w, byDriver)
				return nil
			})
		},
	}
}

func newDotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dot",
		Short: "Print the graph as a Graphviz DOT script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := opts.loadGraph(cmd)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), g.DOT())
			return err
		},
	}
}

func newRenderCmd(opts *options) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the graph to a PNG or SVG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			g, err := opts.loadGraph(cmd)
			if err != nil {
				return err
			}
			img, err := render.Render(cmd.Context(), g, f)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(img)
				return err
			}
			if err := os.WriteFile(out, img, 0o644); err != nil {
				return err
			}
			opts.logger.Info("image written", "file", out, "bytes", len(img))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(render.PNG), "Image format: png, svg")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}
