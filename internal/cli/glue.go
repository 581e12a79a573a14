package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/pipeline"
)

// glueCommand creates the glue command.
func (c *CLI) glueCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "glue <g> <h>",
		Short: "Glue two graphs at every pair of vertices and compare their CSFs",
		Long: `Glue two graphs at every pair of vertices and compare their CSFs.

Each gluing identifies one vertex of g with one vertex of h. Isomorphic
gluings are reported once. Gluings are grouped by chromatic symmetric
function; a group with more than one member is a set of non-isomorphic
graphs that X_G cannot tell apart.

Example:
  chromatic glue triangle path3`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: fixtureCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGlue(cmd.Context(), args[0], args[1], noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runGlue(ctx context.Context, a, b string, noCache bool) error {
	g, err := readGraph(a)
	if err != nil {
		return fmt.Errorf("first graph: %w", err)
	}
	h, err := readGraph(b)
	if err != nil {
		return fmt.Errorf("second graph: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Glue(ctx, g, h, pipeline.Options{})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed %s", plural(len(res.Gluings), "gluing", "gluings")))

	for i, class := range res.Classes {
		fmt.Println(StyleTitle.Render(fmt.Sprintf("class %d", i+1)))
		for _, idx := range class {
			gl := res.Gluings[idx]
			printDetail("%-12s %s", gl.Graph.Graph6(), plural(gl.Graph.Size(), "edge", "edges"))
		}
	}
	printNewline()

	if col := res.Collisions(); len(col) > 0 {
		printWarning("%s of non-isomorphic gluings share a CSF", plural(len(col), "group", "groups"))
		return nil
	}
	printSuccess("All %s have distinct CSFs", plural(len(res.Gluings), "gluing", "gluings"))
	return nil
}
