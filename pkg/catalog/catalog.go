// Package catalog persists computed chromatic symmetric functions.
//
// Every record stores a graph by its canonical form together with its
// power-sum table. Records are indexed two ways:
//   - canonical graph6, so isomorphic graphs map to one record
//   - the table's key, so graphs sharing a CSF can be listed together
//
// The second index is what makes the catalog useful for hunting
// non-isomorphic graphs with equal CSFs: [FindEqual] returns every stored
// graph whose table matches.
//
// Three backends implement [Store]:
//   - memory: process-local, used by tests and the API server default
//   - badger: embedded on-disk store, the CLI default
//   - mongo: shared store for multi-instance deployments
//
// [Open] selects one from a [Config].
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chromatic/pkg/csf"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownBackend is returned by Open for an unrecognized backend.
	ErrUnknownBackend = errors.New("unknown catalog backend")
)

// Record is one cataloged graph.
type Record struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Graph6    string     `json:"graph6"`
	Canonical string     `json:"canonical"`
	Order     int        `json:"order"`
	Size      int        `json:"size"`
	TableKey  string     `json:"table_key"`
	Table     *csf.Table `json:"table"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewRecord builds a record for g with a fresh ID.
func NewRecord(name string, g *graph.Graph, t *csf.Table) *Record {
	return newRecord(name, g, graph.CanonicalKey(g), t)
}

func newRecord(name string, g *graph.Graph, canonical string, t *csf.Table) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Graph6:    g.Graph6(),
		Canonical: canonical,
		Order:     g.Order(),
		Size:      g.Size(),
		TableKey:  t.Key(),
		Table:     t,
		CreatedAt: time.Now().UTC(),
	}
}

// Graph decodes the stored graph.
func (r *Record) Graph() (*graph.Graph, error) {
	return graph.ParseGraph6(r.Graph6)
}

// Label returns the record name, or its graph6 when unnamed.
func (r *Record) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Graph6
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	Order int
	// Name matches records whose name contains it, case-insensitively.
	Name  string
	Limit int
}

func (f Filter) match(r *Record) bool {
	if f.Order > 0 && r.Order != f.Order {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

// Store is implemented by every catalog backend.
type Store interface {
	// Put inserts or replaces a record by ID.
	Put(ctx context.Context, r *Record) error
	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)
	// FindByCanonical returns the record for a canonical graph6, or
	// ErrNotFound.
	FindByCanonical(ctx context.Context, canonical string) (*Record, error)
	// FindByTable returns every record whose table key equals key.
	FindByTable(ctx context.Context, key string) ([]*Record, error)
	// List returns matching records ordered by creation time.
	List(ctx context.Context, f Filter) ([]*Record, error)
	// Delete removes the record with id. Missing ids are not an error.
	Delete(ctx context.Context, id string) error
	Close() error
}

// Add stores g and its table unless an isomorphic graph is already
// cataloged, in which case the existing record is returned with
// created=false.
func Add(ctx context.Context, s Store, name string, g *graph.Graph, t *csf.Table) (rec *Record, created bool, err error) {
	canonical, err := graph.Canonical(ctx, g)
	if err != nil {
		return nil, false, err
	}
	return AddCanonical(ctx, s, name, g, canonical, t)
}

// AddCanonical is [Add] for callers that already hold the canonical form
// of g.
func AddCanonical(ctx context.Context, s Store, name string, g *graph.Graph, canonical string, t *csf.Table) (rec *Record, created bool, err error) {
	existing, err := s.FindByCanonical(ctx, canonical)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return nil, false, err
	}
	rec = newRecord(name, g, canonical, t)
	if err := s.Put(ctx, rec); err != nil {
		return nil, false, fmt.Errorf("put record: %w", err)
	}
	return rec, true, nil
}

// FindEqual lists the records whose CSF equals t.
func FindEqual(ctx context.Context, s Store, t *csf.Table) ([]*Record, error) {
	return s.FindByTable(ctx, t.Key())
}

// Collisions groups the records of s that share a table with at least one
// other record. Each group holds pairwise non-isomorphic graphs, since the
// canonical index admits one record per isomorphism class.
func Collisions(ctx context.Context, s Store, f Filter) ([][]*Record, error) {
	f.Limit = 0
	recs, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]*Record)
	var order []string
	for _, r := range recs {
		if _, ok := groups[r.TableKey]; !ok {
			order = append(order, r.TableKey)
		}
		groups[r.TableKey] = append(groups[r.TableKey], r)
	}
	var out [][]*Record
	for _, k := range order {
		if len(groups[k]) > 1 {
			out = append(out, groups[k])
		}
	}
	return out, nil
}
