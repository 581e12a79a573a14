package graph

import (
	"fmt"
	"strings"
)

// Parse reads a graph from any of its textual forms: a JSON object, a
// fixture name, the edge-list DSL, or graph6.
func Parse(s string) (*Graph, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "{"):
		return Unmarshal([]byte(s))
	case isDSL(s):
		return ParseDSL(s)
	}
	if g, err := Fixture(s); err == nil {
		return g, nil
	}
	g, err := ParseGraph6(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not JSON, a fixture, an edge list or graph6: %w", s, err)
	}
	return g, nil
}

func isDSL(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' || r == ',' || r == ':' || r == ' ' || r == '\t':
		default:
			return false
		}
	}
	return true
}
