package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/pipeline"
	"github.com/matzehuels/chromatic/pkg/symfunc"
)

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Record computed functions and find graphs sharing one",
		Long: `Record computed chromatic symmetric functions.

Records are keyed by the canonical form of the graph, so adding an
isomorphic copy returns the existing record. The backend (badger, mongo or
memory) is chosen in the [catalog] section of the config file.`,
	}

	cmd.AddCommand(c.catalogAddCommand())
	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogShowCommand())
	cmd.AddCommand(c.catalogEqualCommand())
	cmd.AddCommand(c.catalogDeleteCommand())
	return cmd
}

// withCatalog opens the catalog, runs fn and closes it.
func (c *CLI) withCatalog(ctx context.Context, fn func(catalog.Store) error) error {
	store, err := c.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *CLI) catalogAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:               "add <graph>...",
		Short:             "Compute and record graphs",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: fixtureCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withCatalog(ctx, func(store catalog.Store) error {
				runner, err := c.newRunner(ctx, false, store)
				if err != nil {
					return err
				}
				defer runner.Cache.Close()

				prog := newProgress(c.Logger)
				for _, arg := range args {
					g, err := readGraph(arg)
					if err != nil {
						return fmt.Errorf("%s: %w", arg, err)
					}
					label := name
					if label == "" || len(args) > 1 {
						label = arg
					}
					res, err := runner.Execute(ctx, pipeline.Options{Graph: g, Name: label, Record: true})
					if err != nil {
						return err
					}
					printSuccess("%s %s", StyleHighlight.Render(res.Record.Label()), StyleDim.Render(res.Record.ID))
					for _, e := range res.Equal {
						printWarning("same function as %s (%s)", e.Label(), e.ID)
					}
				}
				prog.done("Cataloged " + plural(len(args), "graph", "graphs"))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "record name (single graph only)")
	return cmd
}

func (c *CLI) catalogListCommand() *cobra.Command {
	var f catalog.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), func(store catalog.Store) error {
				recs, err := store.List(cmd.Context(), f)
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("Catalog is empty")
					return nil
				}
				for _, r := range recs {
					fmt.Printf("%s  %-16s %s  %s\n",
						StyleDim.Render(r.ID),
						r.Label(),
						StyleValue.Render(fmt.Sprintf("n=%d m=%d", r.Order, r.Size)),
						StyleDim.Render(r.CreatedAt.Local().Format(time.DateTime)))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&f.Order, "order", 0, "only graphs with this many vertices")
	cmd.Flags().StringVar(&f.Name, "name", "", "only names containing this text")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "at most this many records (0 = all)")
	return cmd
}

func (c *CLI) catalogShowCommand() *cobra.Command {
	var basis string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), func(store catalog.Store) error {
				r, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return pipeline.ClassifyError(err)
				}
				printKeyValue("id", r.ID)
				printKeyValue("name", r.Label())
				printKeyValue("graph6", r.Graph6)
				printKeyValue("canonical", r.Canonical)
				printKeyValue("vertices", fmt.Sprint(r.Order))
				printKeyValue("edges", fmt.Sprint(r.Size))
				printKeyValue("created", r.CreatedAt.Local().Format(time.DateTime))
				printNewline()
				fmt.Println(symfunc.Convert(r.Table.SymFunc(), basis))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&basis, "basis", "b", pipeline.DefaultBasis, "basis to print the function in")
	_ = cmd.RegisterFlagCompletionFunc("basis", basisFlagCompletion)
	return cmd
}

func (c *CLI) catalogEqualCommand() *cobra.Command {
	var f catalog.Filter

	cmd := &cobra.Command{
		Use:   "equal",
		Short: "List groups of non-isomorphic recorded graphs with equal CSF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), func(store catalog.Store) error {
				groups, err := catalog.Collisions(cmd.Context(), store, f)
				if err != nil {
					return err
				}
				if len(groups) == 0 {
					printSuccess("No recorded graphs share a chromatic symmetric function")
					return nil
				}
				for i, g := range groups {
					fmt.Println(StyleTitle.Render(fmt.Sprintf("group %d", i+1)))
					for _, r := range g {
						printDetail("%-16s %s  %s", r.Label(), r.Graph6, r.ID)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&f.Order, "order", 0, "only graphs with this many vertices")
	return cmd
}

func (c *CLI) catalogDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withCatalog(cmd.Context(), func(store catalog.Store) error {
				for _, id := range args {
					if err := store.Delete(cmd.Context(), id); err != nil {
						return pipeline.ClassifyError(err)
					}
					printSuccess("Deleted %s", id)
				}
				return nil
			})
		},
	}
}
