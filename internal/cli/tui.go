package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FixtureListModel - Interactive fixture selection
// =============================================================================

// FixtureListModel is the bubbletea model behind `compute --pick`.
type FixtureListModel struct {
	Fixtures []fixtureInfo
	Cursor   int
	Selected *fixtureInfo
}

// NewFixtureListModel creates a new fixture list model.
func NewFixtureListModel(fixtures []fixtureInfo) FixtureListModel {
	return FixtureListModel{Fixtures: fixtures}
}

func (m FixtureListModel) Init() tea.Cmd {
	return nil
}

func (m FixtureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Fixtures)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Fixtures) > 0 {
				m.Selected = &m.Fixtures[m.Cursor]
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FixtureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.Fixtures {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, f.Name,
			listDimStyle.Render(fmt.Sprintf("n=%d m=%d  %s", f.Order, f.Size, f.Graph6)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pickFixture runs the picker and returns the chosen fixture name, or ""
// when the user quits.
func pickFixture() (string, error) {
	final, err := tea.NewProgram(NewFixtureListModel(fixedFixtures())).Run()
	if err != nil {
		return "", fmt.Errorf("fixture picker: %w", err)
	}
	if m, ok := final.(FixtureListModel); ok && m.Selected != nil {
		return m.Selected.Name, nil
	}
	return "", nil
}
