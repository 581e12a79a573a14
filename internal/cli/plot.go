package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/render/nodelink"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	output    string // output file; the extension selects the format
	title     string // label drawn above the graph
	layout    string // graphviz layout engine
	detailed  bool   // show degrees in vertex labels
	highlight []int  // vertices drawn shaded
	noCache   bool   // disable the plot cache
}

// plotCommand creates the plot command.
func (c *CLI) plotCommand() *cobra.Command {
	opts := plotOpts{output: "graph.svg", layout: nodelink.DefaultLayout}

	cmd := &cobra.Command{
		Use:   "plot <graph>",
		Short: "Draw a graph as SVG, PNG or DOT",
		Long: `Draw a graph as a node-link diagram.

The output format follows the file extension: .svg, .png, or .dot/.gv.
Use "-o -" to print DOT to stdout.

Examples:
  chromatic plot kite -o kite.svg --title "Stanley's kite"
  chromatic plot bowtie -o bowtie.png --layout circo --highlight 2`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: fixtureCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlot(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (.svg, .png, .dot)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title drawn above the graph")
	cmd.Flags().StringVar(&opts.layout, "layout", opts.layout, "layout engine: "+strings.Join(nodelink.Layouts(), ", "))
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show vertex degrees")
	cmd.Flags().IntSliceVar(&opts.highlight, "highlight", nil, "vertices to shade (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("layout", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return nodelink.Layouts(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runPlot(ctx context.Context, input string, opts plotOpts) error {
	format := "dot"
	if opts.output != "-" {
		if err := cerrors.ValidateOutputPath(opts.output); err != nil {
			return err
		}
		var ok bool
		if format, ok = nodelink.FormatFor(opts.output); !ok {
			return cerrors.New(cerrors.ErrCodeInvalidFormat, "cannot infer plot format from %q (use .svg, .png or .dot)", opts.output)
		}
	}

	g, err := readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	data, err := runner.Plot(ctx, g, format, nodelink.Options{
		Title:     opts.title,
		Layout:    opts.layout,
		Detailed:  opts.detailed,
		Highlight: opts.highlight,
	})
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Plotted %s", StyleHighlight.Render(input))
	printFile(opts.output)
	return nil
}
