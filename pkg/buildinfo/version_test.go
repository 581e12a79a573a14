package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: dev", "commit: none", "go: go"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	old := Commit
	Commit = "0123456789abcdef"
	t.Cleanup(func() { Commit = old })

	if got, want := Template(), "{{.Name}} dev (0123456, unknown)\n"; got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}
