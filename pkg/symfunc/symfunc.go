package symfunc

import (
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/matzehuels/chromatic/pkg/partition"
)

// Term is a single basis element with its coefficient.
type Term struct {
	Partition partition.Partition
	Coeff     *big.Rat
}

// SymFunc is a symmetric function with rational coefficients expressed in a
// single basis. Terms with a zero coefficient are never stored.
//
// The zero value is not usable - use New. A SymFunc is not safe for
// concurrent mutation; the conversion methods never modify the receiver.
type SymFunc struct {
	basis Basis
	terms map[string]Term
}

// New returns the zero function in basis b. It panics on Unknown, which is
// only a conversion target.
func New(b Basis) *SymFunc {
	if b == Unknown || b < Power || b > Unknown {
		panic(fmt.Sprintf("symfunc: cannot build a function in basis %v", b))
	}
	return &SymFunc{basis: b, terms: make(map[string]Term)}
}

// Basis returns the basis the function is expressed in.
func (f *SymFunc) Basis() Basis { return f.basis }

// AddTerm adds c times the basis element indexed by p.
func (f *SymFunc) AddTerm(p partition.Partition, c *big.Rat) {
	if c.Sign() == 0 {
		return
	}
	key := p.Key()
	if t, ok := f.terms[key]; ok {
		sum := new(big.Rat).Add(t.Coeff, c)
		if sum.Sign() == 0 {
			delete(f.terms, key)
			return
		}
		f.terms[key] = Term{Partition: t.Partition, Coeff: sum}
		return
	}
	f.terms[key] = Term{Partition: p.Clone(), Coeff: new(big.Rat).Set(c)}
}

// AddInt adds the integer multiple c of the basis element indexed by p.
func (f *SymFunc) AddInt(p partition.Partition, c int64) {
	f.AddTerm(p, new(big.Rat).SetInt64(c))
}

// Coefficient returns the coefficient of the basis element indexed by p.
// The result is a copy and is zero when the term is absent.
func (f *SymFunc) Coefficient(p partition.Partition) *big.Rat {
	if t, ok := f.terms[p.Key()]; ok {
		return new(big.Rat).Set(t.Coeff)
	}
	return new(big.Rat)
}

// Len returns the number of non-zero terms.
func (f *SymFunc) Len() int { return len(f.terms) }

// IsZero reports whether the function is zero.
func (f *SymFunc) IsZero() bool { return len(f.terms) == 0 }

// Terms returns the non-zero terms ordered by degree, then lexicographically
// by partition. Coefficients are copies.
func (f *SymFunc) Terms() []Term {
	out := make([]Term, 0, len(f.terms))
	for _, t := range f.terms {
		out = append(out, Term{Partition: t.Partition.Clone(), Coeff: new(big.Rat).Set(t.Coeff)})
	}
	slices.SortFunc(out, func(a, b Term) int { return compareTerms(a.Partition, b.Partition) })
	return out
}

// Degrees returns the distinct degrees of the non-zero terms in ascending order.
func (f *SymFunc) Degrees() []int {
	seen := make(map[int]bool)
	var out []int
	for _, t := range f.terms {
		d := t.Partition.Size()
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy.
func (f *SymFunc) Clone() *SymFunc {
	g := New(f.basis)
	for k, t := range f.terms {
		g.terms[k] = Term{Partition: t.Partition.Clone(), Coeff: new(big.Rat).Set(t.Coeff)}
	}
	return g
}

// Add returns f + g in f's basis. g is converted first when the bases differ.
func (f *SymFunc) Add(g *SymFunc) *SymFunc {
	out := f.Clone()
	for _, t := range g.In(f.basis).terms {
		out.AddTerm(t.Partition, t.Coeff)
	}
	return out
}

// Scale returns c·f.
func (f *SymFunc) Scale(c *big.Rat) *SymFunc {
	out := New(f.basis)
	if c.Sign() == 0 {
		return out
	}
	for k, t := range f.terms {
		out.terms[k] = Term{Partition: t.Partition.Clone(), Coeff: new(big.Rat).Mul(t.Coeff, c)}
	}
	return out
}

// Equal reports whether f and g are the same symmetric function, comparing in
// f's basis.
func (f *SymFunc) Equal(g *SymFunc) bool {
	h := g.In(f.basis)
	if len(f.terms) != len(h.terms) {
		return false
	}
	for k, t := range f.terms {
		u, ok := h.terms[k]
		if !ok || t.Coeff.Cmp(u.Coeff) != 0 {
			return false
		}
	}
	return true
}

// String formats the function the way computer algebra systems print it,
// e.g. "p[1, 1, 1] - 3*p[2, 1] + 2*p[3]". The zero function prints as "0".
func (f *SymFunc) String() string {
	terms := f.Terms()
	if len(terms) == 0 {
		return "0"
	}
	var b strings.Builder
	prefix := f.basis.Prefix()
	for i, t := range terms {
		c := t.Coeff
		neg := c.Sign() < 0
		abs := new(big.Rat).Abs(c)
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		if !(abs.IsInt() && abs.Num().IsInt64() && abs.Num().Int64() == 1) {
			b.WriteString(abs.RatString())
			b.WriteString("*")
		}
		b.WriteString(prefix)
		b.WriteString(t.Partition.String())
	}
	return b.String()
}

// In returns f expressed in basis b. Converting to Unknown returns f itself,
// unconverted.
func (f *SymFunc) In(b Basis) *SymFunc {
	if b == Unknown {
		return f
	}
	if b == f.basis {
		return f.Clone()
	}
	out := New(b)
	for deg, coeffs := range f.byDegree() {
		src := transitionFor(f.basis, deg)
		dst := transitionFor(b, deg)
		for k, c := range dst.fromMonomial(src.toMonomial(coeffs)) {
			if c.Sign() != 0 {
				out.AddTerm(dst.parts[k], c)
			}
		}
	}
	return out
}

// Convert returns f in the basis selected by the first character of name.
// Unrecognized names return f unconverted; see ParseBasis.
func Convert(f *SymFunc, name string) *SymFunc {
	return f.In(ParseBasis(name))
}

// byDegree splits the coefficients into dense vectors per degree, indexed by
// the transition ordering of that degree.
func (f *SymFunc) byDegree() map[int][]*big.Rat {
	out := make(map[int][]*big.Rat)
	for _, t := range f.terms {
		d := t.Partition.Size()
		tr := transitionFor(f.basis, d)
		vec, ok := out[d]
		if !ok {
			vec = make([]*big.Rat, len(tr.parts))
			out[d] = vec
		}
		vec[tr.index[t.Partition.Key()]] = t.Coeff
	}
	return out
}

func compareTerms(a, b partition.Partition) int {
	if da, db := a.Size(), b.Size(); da != db {
		return da - db
	}
	return a.Compare(b)
}

// =============================================================================
// JSON
// =============================================================================

type jsonSymFunc struct {
	Basis string            `json:"basis"`
	Terms map[string]string `json:"terms"`
}

// MarshalJSON encodes the function as {"basis": "p", "terms": {"2,1": "-3"}}.
func (f *SymFunc) MarshalJSON() ([]byte, error) {
	out := jsonSymFunc{Basis: f.basis.Prefix(), Terms: make(map[string]string, len(f.terms))}
	for k, t := range f.terms {
		out.Terms[k] = t.Coeff.RatString()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (f *SymFunc) UnmarshalJSON(data []byte) error {
	var in jsonSymFunc
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b := ParseBasis(in.Basis)
	if b == Unknown {
		return fmt.Errorf("unknown basis %q", in.Basis)
	}
	g := New(b)
	for k, v := range in.Terms {
		p, err := partition.Parse(k)
		if err != nil {
			return err
		}
		c, ok := new(big.Rat).SetString(v)
		if !ok {
			return fmt.Errorf("invalid coefficient %q for %s", v, p)
		}
		g.AddTerm(p, c)
	}
	*f = *g
	return nil
}

// Element returns the single basis element b_λ.
func Element(b Basis, p partition.Partition) *SymFunc {
	f := New(b)
	f.AddInt(p, 1)
	return f
}
