package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/trees"
)

// maxTreeOrder bounds the trees commands; there are 823065 free trees on
// 20 vertices.
const maxTreeOrder = 20

// treesCommand creates the trees command.
func (c *CLI) treesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trees",
		Short: "Enumerate free trees and test the tree conjecture",
		Long: `Enumerate free trees and test Stanley's tree conjecture.

The conjecture states that non-isomorphic trees have distinct chromatic
symmetric functions. Since X_T determines the degree sequence of a tree T,
only trees sharing a degree sequence (a cohort) need to be compared.`,
	}

	cmd.AddCommand(c.treesListCommand())
	cmd.AddCommand(c.treesCheckCommand())
	return cmd
}

func (c *CLI) treesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <n>",
		Short: "List the free trees on n vertices by cohort",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			free := trees.Free(n)
			cohorts := trees.Cohorts(free)
			for _, co := range cohorts {
				fmt.Println(StyleTitle.Render(formatSequence(co.DegreeSequence)))
				for _, t := range co.Trees {
					printDetail("%s", t.Graph6())
				}
			}
			printNewline()
			printInfo("%s on %d vertices in %s",
				plural(len(free), "tree", "trees"), n, plural(len(cohorts), "cohort", "cohorts"))
			return nil
		},
	}
}

func (c *CLI) treesCheckCommand() *cobra.Command {
	var (
		workers int
		upTo    bool
	)

	cmd := &cobra.Command{
		Use:   "check <n>",
		Short: "Check that trees on n vertices have distinct CSFs",
		Long: `Check that non-isomorphic trees on n vertices have distinct CSFs.

With --up-to every order from 1 to n is checked.

Examples:
  chromatic trees check 12
  chromatic trees check 14 --up-to --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseOrder(args[0])
			if err != nil {
				return err
			}
			if workers == 0 {
				cfg, err := c.config()
				if err != nil {
					return err
				}
				workers = cfg.Workers
			}
			from := n
			if upTo {
				from = 1
			}
			prog := newProgress(c.Logger)
			for order := from; order <= n; order++ {
				if err := c.runTreesCheck(cmd.Context(), order, workers); err != nil {
					return err
				}
			}
			if upTo {
				prog.done(fmt.Sprintf("Checked orders 1 to %d", n))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "trees computed in parallel (0 = one per CPU)")
	cmd.Flags().BoolVar(&upTo, "up-to", false, "check every order from 1 to n")
	return cmd
}

func (c *CLI) runTreesCheck(ctx context.Context, n, workers int) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Checking trees on %d vertices...", n))
	spinner.Start()

	opts := []trees.Option{trees.WithProgress(func(done, total int) {
		spinner.SetMessage(fmt.Sprintf("Checking trees on %d vertices... %d/%d", n, done, total))
	})}
	if workers > 0 {
		opts = append(opts, trees.WithWorkers(workers))
	}
	rep, err := trees.Check(ctx, n, opts...)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Check of n=%d failed", n))
		return err
	}
	spinner.Stop()

	summary := fmt.Sprintf("n=%-2d %s, %s, %s compared",
		n,
		plural(rep.Trees, "tree", "trees"),
		plural(rep.Cohorts, "cohort", "cohorts"),
		plural(rep.Pairs, "pair", "pairs"))
	if rep.Holds() {
		printSuccess("%s %s", summary, StyleDim.Render(fmt.Sprintf("(%s)", rep.Duration.Round(time.Millisecond))))
		return nil
	}
	printError("%s: %s", summary, plural(len(rep.Collisions), "collision", "collisions"))
	for _, col := range rep.Collisions {
		printDetail("%s  %s", col.A.Graph6(), col.B.Graph6())
	}
	return nil
}

func parseOrder(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, cerrors.New(cerrors.ErrCodeInvalidInput, "vertex count must be an integer, got %q", arg)
	}
	if err := cerrors.ValidateOrder(n, maxTreeOrder); err != nil {
		return 0, err
	}
	return n, nil
}

// formatSequence prints a degree sequence compactly, e.g. "3 2 2 1 1 1".
func formatSequence(seq []int) string {
	parts := make([]string, len(seq))
	for i, d := range seq {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, " ")
}
