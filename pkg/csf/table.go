package csf

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/chromatic/pkg/partition"
	"github.com/matzehuels/chromatic/pkg/symfunc"
)

// Term is one entry of a [Table].
type Term struct {
	Partition partition.Partition
	Coeff     int64
}

type entry struct {
	part  partition.Partition
	coeff int64
}

// Table maps partitions of n to signed integer coefficients. It is the
// chromatic symmetric function in the power-sum basis.
//
// Entries whose coefficient cancels to zero are kept, so callers can see
// which partitions occurred. [Table.Equal] ignores them.
type Table struct {
	order   int
	entries map[string]*entry
}

// NewTable returns an empty table for partitions of order.
func NewTable(order int) *Table {
	return &Table{order: order, entries: make(map[string]*entry)}
}

// Order returns n, the integer every key partitions.
func (t *Table) Order() int { return t.order }

// Add adds delta to the coefficient of p, starting from zero when p is
// absent. It panics when p does not partition the table's order.
func (t *Table) Add(p partition.Partition, delta int64) {
	if p.Size() != t.order {
		panic(fmt.Sprintf("csf: partition %v is not a partition of %d", p, t.order))
	}
	t.addKey(p.AppendKey(nil), p, delta)
}

// addKey is the allocation-free path used by the accumulator. p is only
// read when key is new.
func (t *Table) addKey(key []byte, p partition.Partition, delta int64) {
	if e, ok := t.entries[string(key)]; ok {
		e.coeff += delta
		return
	}
	t.entries[string(key)] = &entry{part: p.Clone(), coeff: delta}
}

// Coefficient returns the coefficient of p and whether p has an entry.
func (t *Table) Coefficient(p partition.Partition) (int64, bool) {
	e, ok := t.entries[p.Key()]
	if !ok {
		return 0, false
	}
	return e.coeff, true
}

// Len returns the number of entries, including zero ones.
func (t *Table) Len() int { return len(t.entries) }

// Terms returns every entry ordered lexicographically by partition.
func (t *Table) Terms() []Term {
	out := make([]Term, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, Term{Partition: e.part.Clone(), Coeff: e.coeff})
	}
	slices.SortFunc(out, func(a, b Term) int { return a.Partition.Compare(b.Partition) })
	return out
}

// Merge adds every entry of other into t.
func (t *Table) Merge(other *Table) {
	if other.order != t.order {
		panic(fmt.Sprintf("csf: cannot merge a table of order %d into order %d", other.order, t.order))
	}
	for k, e := range other.entries {
		if mine, ok := t.entries[k]; ok {
			mine.coeff += e.coeff
			continue
		}
		t.entries[k] = &entry{part: e.part.Clone(), coeff: e.coeff}
	}
}

// Equal reports whether both tables have the same order and the same
// non-zero coefficients.
func (t *Table) Equal(other *Table) bool {
	if t.order != other.order {
		return false
	}
	a, b := t.nonZero(), other.nonZero()
	return maps.Equal(a, b)
}

func (t *Table) nonZero() map[string]int64 {
	out := make(map[string]int64, len(t.entries))
	for k, e := range t.entries {
		if e.coeff != 0 {
			out[k] = e.coeff
		}
	}
	return out
}

// Key returns a deterministic string form of the non-zero entries, used to
// find graphs that share a chromatic symmetric function.
func (t *Table) Key() string {
	var buf []byte
	for _, term := range t.Terms() {
		if term.Coeff == 0 {
			continue
		}
		if len(buf) > 0 {
			buf = append(buf, ';')
		}
		buf = term.Partition.AppendKey(buf)
		buf = fmt.Appendf(buf, ":%d", term.Coeff)
	}
	return string(buf)
}

// SymFunc returns the table as a symmetric function in the power-sum basis.
func (t *Table) SymFunc() *symfunc.SymFunc {
	f := symfunc.New(symfunc.Power)
	for _, e := range t.entries {
		f.AddInt(e.part, e.coeff)
	}
	return f
}

// String formats the table like its power-sum symmetric function.
func (t *Table) String() string { return t.SymFunc().String() }

// =============================================================================
// JSON
// =============================================================================

type jsonTable struct {
	Order int              `json:"order"`
	Terms map[string]int64 `json:"terms"`
}

// MarshalJSON encodes the table as {"order": 3, "terms": {"1,1,1": 1, ...}}.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := jsonTable{Order: t.order, Terms: make(map[string]int64, len(t.entries))}
	for k, e := range t.entries {
		out.Terms[k] = e.coeff
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (t *Table) UnmarshalJSON(data []byte) error {
	var in jsonTable
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := NewTable(in.Order)
	for k, c := range in.Terms {
		p, err := partition.Parse(k)
		if err != nil {
			return err
		}
		if p.Size() != in.Order {
			return fmt.Errorf("partition %v is not a partition of %d", p, in.Order)
		}
		out.Add(p, c)
	}
	*t = *out
	return nil
}
