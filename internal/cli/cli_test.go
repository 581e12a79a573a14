package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/chromatic/pkg/catalog"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
)

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestComputeCommand(t *testing.T) {
	c, _ := testCLI(t)
	if err := execute(t, c, "compute", "path3", "--basis", "elementary", "--json"); err != nil {
		t.Fatalf("compute: %v", err)
	}
	if err := execute(t, c, "compute", "0-0"); !cerrors.Is(err, cerrors.ErrCodeInvalidGraph) {
		t.Errorf("compute 0-0 error = %v, want INVALID_GRAPH", err)
	}
	if err := execute(t, c, "compute", "k9", "--max-edges", "20"); ExitCode(err) != ExitTooLarge {
		t.Errorf("compute k9 exit = %d, want %d", ExitCode(err), ExitTooLarge)
	}
	if err := execute(t, c, "compute", "2000000000:"); ExitCode(err) != ExitTooLarge {
		t.Errorf("compute 2000000000: exit = %d, want %d", ExitCode(err), ExitTooLarge)
	}
	if err := execute(t, c, "compute", "path8", "--max-vertices", "5"); ExitCode(err) != ExitTooLarge {
		t.Errorf("compute path8 --max-vertices 5 exit = %d, want %d", ExitCode(err), ExitTooLarge)
	}
}

func TestPlotCommand(t *testing.T) {
	c, dir := testCLI(t)
	out := filepath.Join(dir, "p3.dot")
	if err := execute(t, c, "plot", "path3", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("plot: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "0 -- 1;") || !strings.Contains(string(data), "1 -- 2;") {
		t.Errorf("plot output = %s", data)
	}

	err = execute(t, c, "plot", "path3", "-o", filepath.Join(dir, "p3.pdf"))
	if !cerrors.Is(err, cerrors.ErrCodeInvalidFormat) {
		t.Errorf("plot .pdf error = %v, want INVALID_FORMAT", err)
	}
}

func TestCatalogAddAndList(t *testing.T) {
	c, _ := testCLI(t)
	if err := execute(t, c, "catalog", "add", "bowtie", "kite"); err != nil {
		t.Fatalf("catalog add: %v", err)
	}
	if err := execute(t, c, "catalog", "list", "--order", "5"); err != nil {
		t.Fatalf("catalog list: %v", err)
	}

	cfg, err := c.config()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	store, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	recs, err := store.List(ctx, catalog.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("catalog holds %d records, want 2", len(recs))
	}
	if !recs[0].Table.Equal(recs[1].Table) {
		t.Error("bowtie and kite should share a table")
	}
}

func TestConfigPathCommand(t *testing.T) {
	c, _ := testCLI(t)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != c.ConfigPath {
		t.Errorf("config path = %q, want %q", got, c.ConfigPath)
	}
}

func TestFixtureListModel(t *testing.T) {
	m := NewFixtureListModel(fixedFixtures())
	if len(m.Fixtures) == 0 {
		t.Fatal("no fixtures")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(FixtureListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(FixtureListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}
	if !strings.Contains(m.View(), m.Fixtures[1].Name) {
		t.Error("view should list the fixtures")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(FixtureListModel)
	if m.Selected == nil || m.Selected.Name != m.Fixtures[1].Name {
		t.Errorf("selected = %v, want %s", m.Selected, m.Fixtures[1].Name)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"PluralOne", plural(1, "edge", "edges"), "1 edge"},
		{"PluralMany", plural(3, "vertex", "vertices"), "3 vertices"},
		{"PluralZero", plural(0, "edge", "edges"), "0 edges"},
		{"Sequence", formatSequence([]int{3, 2, 2, 1, 1, 1}), "3 2 2 1 1 1"},
		{"EmptySequence", formatSequence(nil), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if line := statsLine(3, 2, 4, true); !strings.Contains(line, "3 vertices") || !strings.Contains(line, iconCached) {
		t.Errorf("statsLine = %q", line)
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		arg  string
		want cerrors.Code
	}{
		{"8", ""},
		{"x", cerrors.ErrCodeInvalidInput},
		{"-1", cerrors.ErrCodeInvalidInput},
		{"99", cerrors.ErrCodeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			_, err := parseOrder(tt.arg)
			if got := cerrors.GetCode(err); got != tt.want {
				t.Errorf("parseOrder(%q) code = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			c, _ := testCLI(t)
			root := c.RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "chromatic") {
				t.Errorf("completion %s script does not mention chromatic", shell)
			}
		})
	}

	c, _ := testCLI(t)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestDomainCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code cerrors.Code
	}{
		{"Glue", []string{"glue", "triangle", "path3", "--no-cache"}, ""},
		{"GlueBadGraph", []string{"glue", "triangle", "0-0"}, cerrors.ErrCodeInvalidGraph},
		{"Fixtures", []string{"fixtures"}, ""},
		{"TreesList", []string{"trees", "list", "6"}, ""},
		{"TreesCheck", []string{"trees", "check", "7", "--up-to", "--workers", "2"}, ""},
		{"TreesTooLarge", []string{"trees", "list", "21"}, cerrors.ErrCodeTooLarge},
		{"CatalogShowMissing", []string{"catalog", "show", "nope"}, cerrors.ErrCodeRecordNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testCLI(t)
			err := execute(t, c, tt.args...)
			if got := cerrors.GetCode(err); got != tt.code {
				t.Errorf("%v: code = %q (err %v), want %q", tt.args, got, err, tt.code)
			}
			if tt.code == "" && err != nil {
				t.Errorf("%v: %v", tt.args, err)
			}
		})
	}
}
