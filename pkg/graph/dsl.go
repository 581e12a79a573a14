package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// dslGraph is the grammar of the edge-list DSL:
//
//	[n:] chain (, chain)*
//
// where a chain "0-1-2" adds the edges 0-1 and 1-2. Without an explicit
// order the graph has max(vertex)+1 vertices.
type dslGraph struct {
	Order  string      `parser:"@Order?"`
	Chains []*dslChain `parser:"(@@ (',' @@)*)?"`
}

type dslChain struct {
	Vertices []int `parser:"@Int ('-' @Int)*"`
}

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Order", Pattern: `\d+\s*:`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[-,]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var dslParser = participle.MustBuild[dslGraph](
	participle.Lexer(dslLexer),
)

// ParseDSL reads a graph from the edge-list DSL, e.g. "4: 0-1-2-3-0" for
// the 4-cycle or "0-1, 1-2" for the path on three vertices.
func ParseDSL(s string) (*Graph, error) {
	expr, err := dslParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", s, err)
	}

	var edges []Edge
	n := 0
	for _, c := range expr.Chains {
		for i, v := range c.Vertices {
			n = max(n, v+1)
			if i > 0 {
				edges = append(edges, Edge{U: c.Vertices[i-1], V: v})
			}
		}
	}
	if expr.Order != "" {
		order, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(expr.Order, ":")))
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		n = order
	}
	return New(n, edges...)
}
