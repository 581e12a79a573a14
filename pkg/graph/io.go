package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Wire Format
// =============================================================================

// wireGraph is the JSON form of a graph: {"order": 3, "edges": [[0, 1]]}.
type wireGraph struct {
	Order int      `json:"order" bson:"order"`
	Edges [][2]int `json:"edges" bson:"edges"`
}

func toWire(g *Graph) wireGraph {
	out := wireGraph{Order: g.n, Edges: make([][2]int, len(g.edges))}
	for i, e := range g.edges {
		out.Edges[i] = [2]int{e.U, e.V}
	}
	return out
}

func fromWire(w wireGraph) (*Graph, error) {
	edges := make([]Edge, len(w.Edges))
	for i, e := range w.Edges {
		edges[i] = Edge{U: e[0], V: e[1]}
	}
	return New(w.Order, edges...)
}

// MarshalJSON implements json.Marshaler.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(g))
}

// UnmarshalJSON implements json.Unmarshaler. The decoded graph is validated
// like [New].
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w wireGraph
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	parsed, err := fromWire(w)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal encodes g as indented JSON.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a JSON graph.
func Unmarshal(data []byte) (*Graph, error) {
	return Read(bytes.NewReader(data))
}

// WriteFile writes g as JSON to path.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes g as JSON to w.
func Write(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadFile reads a JSON graph from path.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a JSON graph from r.
func Read(r io.Reader) (*Graph, error) {
	var w wireGraph
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromWire(w)
}
