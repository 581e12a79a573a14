package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/api"
	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/pipeline"
)

// computeOpts holds the command-line flags for the compute command.
type computeOpts struct {
	basis    string        // output basis name, matched by first letter
	workers  int           // parallel subset enumeration
	maxEdges int           // refuse larger graphs
	maxVerts int           // refuse graphs with more vertices
	timeout  time.Duration // abort the computation after this long
	name     string        // label for logs and the catalog
	refresh  bool          // recompute even when cached
	record   bool          // store the result in the catalog
	noCache  bool          // disable the table cache
	pick     bool          // choose a fixture interactively
	jsonOut  bool          // print the result as JSON
}

// computeCommand creates the compute command.
func (c *CLI) computeCommand() *cobra.Command {
	var opts computeOpts

	cmd := &cobra.Command{
		Use:   "compute [graph]",
		Short: "Compute the chromatic symmetric function of a graph",
		Long: `Compute the chromatic symmetric function X_G of a graph.

X_G is computed in the power-sum basis by summing over all edge subsets,
then converted to the basis selected with --basis. Tables are cached by the
canonical form of the graph, so isomorphic inputs are computed once.

Examples:
  chromatic compute bowtie                    # power-sum basis
  chromatic compute kite --basis elementary   # e-basis
  chromatic compute "4: 0-1-2-3-0" -b s       # Schur basis of the 4-cycle
  chromatic compute DvG --record              # store in the catalog
  chromatic compute --pick                    # choose a fixture interactively`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: fixtureCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("basis") {
				opts.basis = cfg.Basis
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.Workers
			}

			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if opts.pick || input == "" {
				if input, err = pickFixture(); err != nil {
					return err
				}
				if input == "" {
					return nil
				}
			}
			return c.runCompute(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.basis, "basis", "b", pipeline.DefaultBasis, "output basis: power, monomial, elementary, homogeneous, schur")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "goroutines summing edge subsets (0 = sequential)")
	cmd.Flags().IntVar(&opts.maxEdges, "max-edges", pipeline.DefaultMaxEdges, "refuse graphs with more edges")
	cmd.Flags().IntVar(&opts.maxVerts, "max-vertices", pipeline.DefaultMaxVertices, "refuse graphs with more vertices")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort after this long (0 = no limit)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "label for the graph")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&opts.record, "record", false, "store the result in the catalog")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose a fixture interactively")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	_ = cmd.RegisterFlagCompletionFunc("basis", basisFlagCompletion)

	return cmd
}

// runCompute parses the graph, runs the pipeline and prints the function.
func (c *CLI) runCompute(ctx context.Context, input string, opts computeOpts) error {
	g, err := readGraph(input)
	if err != nil {
		return err
	}

	var store catalog.Store
	if opts.record {
		if store, err = c.openCatalog(ctx); err != nil {
			return err
		}
		defer store.Close()
	}

	runner, err := c.newRunner(ctx, opts.noCache, store)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	name := opts.name
	if name == "" && input != "-" {
		name = input
	}

	var spinner *Spinner
	if !opts.jsonOut {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Summing over 2^%d edge subsets...", g.Size()))
		spinner.Start()
	}
	res, err := runner.Execute(ctx, pipeline.Options{
		Graph:       g,
		Name:        opts.name,
		Basis:       opts.basis,
		Workers:     opts.workers,
		MaxEdges:    opts.maxEdges,
		MaxVertices: opts.maxVerts,
		Timeout:     opts.timeout,
		Refresh:     opts.refresh,
		Record:      opts.record,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(api.NewCSFResponse(res))
	}

	printSuccess("X_G of %s in the %s basis", StyleHighlight.Render(name), res.Function.Basis())
	printStats(res.Stats.Vertices, res.Stats.Edges, res.Stats.Subsets, res.CacheHit)
	printNewline()
	fmt.Println(res.Function.String())

	if res.Record != nil {
		printNewline()
		printKeyValue("record", res.Record.ID)
		printKeyValue("canonical", res.Canonical)
		if len(res.Equal) > 0 {
			printWarning("%s with the same function", plural(len(res.Equal), "cataloged graph", "cataloged graphs"))
			for _, e := range res.Equal {
				printDetail("%s  %s", e.Label(), e.Graph6)
			}
		}
	}
	return nil
}
