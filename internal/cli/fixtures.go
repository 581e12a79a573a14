package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/graph"
)

// fixtureInfo is one row of the fixture listing.
type fixtureInfo struct {
	Name   string
	Order  int
	Size   int
	Graph6 string
}

// fixedFixtures describes the named fixtures, skipping the parametric
// families.
func fixedFixtures() []fixtureInfo {
	var out []fixtureInfo
	for _, name := range graph.FixtureNames() {
		if strings.Contains(name, "<") {
			continue
		}
		g, err := graph.Fixture(name)
		if err != nil {
			continue
		}
		out = append(out, fixtureInfo{Name: name, Order: g.Order(), Size: g.Size(), Graph6: g.Graph6()})
	}
	return out
}

// fixturesCommand creates the fixtures command.
func (c *CLI) fixturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "List the built-in graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(fixtureTable(fixedFixtures()))
			printNewline()

			var families []string
			for _, name := range graph.FixtureNames() {
				if strings.Contains(name, "<") {
					families = append(families, name)
				}
			}
			printInfo("Families: %s", strings.Join(families, ", "))
			printNextStep("Compute one", "chromatic compute kite --basis e")
			return nil
		},
	}
}

func fixtureTable(rows []fixtureInfo) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Name, fmt.Sprint(r.Order), fmt.Sprint(r.Size), r.Graph6}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Vertices", "Edges", "graph6").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			default:
				return StyleValue
			}
		}).
		Render()
}
