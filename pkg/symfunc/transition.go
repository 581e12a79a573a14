package symfunc

import (
	"math/big"
	"sync"

	"github.com/matzehuels/chromatic/pkg/partition"
)

// transition holds the expansion of one basis in the monomial basis for a
// single degree. Row λ of toM is b_λ written in m; fromM is its inverse.
type transition struct {
	basis Basis
	parts []partition.Partition // reverse-lexicographic, shared by all bases
	index map[string]int

	toM [][]*big.Rat

	invOnce sync.Once
	fromM   [][]*big.Rat
}

type transitionKey struct {
	basis  Basis
	degree int
}

var (
	transitionsMu sync.Mutex
	transitions   = make(map[transitionKey]*transition)
)

// transitionFor returns the memoized transition matrix of b in degree n.
func transitionFor(b Basis, n int) *transition {
	key := transitionKey{basis: b, degree: n}

	transitionsMu.Lock()
	defer transitionsMu.Unlock()
	if t, ok := transitions[key]; ok {
		return t
	}
	t := newTransition(b, n)
	transitions[key] = t
	return t
}

func newTransition(b Basis, n int) *transition {
	parts := partition.All(n)
	index := make(map[string]int, len(parts))
	for i, p := range parts {
		index[p.Key()] = i
	}
	t := &transition{basis: b, parts: parts, index: index}
	if b == Monomial {
		return t
	}

	count := coefficientCounter(b)
	t.toM = make([][]*big.Rat, len(parts))
	for i, row := range parts {
		t.toM[i] = make([]*big.Rat, len(parts))
		for j, col := range parts {
			t.toM[i][j] = new(big.Rat).SetInt(count(row, col))
		}
	}
	return t
}

func coefficientCounter(b Basis) func(row, col partition.Partition) *big.Int {
	switch b {
	case Power:
		return powerSumCount
	case Elementary:
		return zeroOneCount
	case Homogeneous:
		return naturalCount
	case Schur:
		return kostkaNumber
	default:
		panic("symfunc: no monomial expansion for " + b.String())
	}
}

// toMonomial maps a coefficient vector in t's basis to the monomial basis.
// Nil entries are zero.
func (t *transition) toMonomial(c []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(t.parts))
	for j := range out {
		out[j] = new(big.Rat)
	}
	if t.basis == Monomial {
		for j, x := range c {
			if x != nil {
				out[j].Set(x)
			}
		}
		return out
	}
	var prod big.Rat
	for i, x := range c {
		if x == nil || x.Sign() == 0 {
			continue
		}
		for j, a := range t.toM[i] {
			if a.Sign() != 0 {
				out[j].Add(out[j], prod.Mul(x, a))
			}
		}
	}
	return out
}

// fromMonomial maps a monomial coefficient vector into t's basis.
func (t *transition) fromMonomial(d []*big.Rat) []*big.Rat {
	if t.basis == Monomial {
		return d
	}
	t.invOnce.Do(func() { t.fromM = invert(t.toM) })

	out := make([]*big.Rat, len(t.parts))
	for k := range out {
		out[k] = new(big.Rat)
	}
	var prod big.Rat
	for j, x := range d {
		if x.Sign() == 0 {
			continue
		}
		for k, a := range t.fromM[j] {
			if a.Sign() != 0 {
				out[k].Add(out[k], prod.Mul(x, a))
			}
		}
	}
	return out
}

// invert returns the inverse of a square non-singular matrix using exact
// Gauss-Jordan elimination. The input is not modified.
func invert(a [][]*big.Rat) [][]*big.Rat {
	n := len(a)
	m := make([][]*big.Rat, n)
	for i := range a {
		m[i] = make([]*big.Rat, 2*n)
		for j := 0; j < n; j++ {
			m[i][j] = new(big.Rat).Set(a[i][j])
		}
		for j := n; j < 2*n; j++ {
			m[i][j] = new(big.Rat)
		}
		m[i][n+i].SetInt64(1)
	}

	var prod big.Rat
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if m[r][col].Sign() != 0 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			panic("symfunc: singular transition matrix")
		}
		m[col], m[pivot] = m[pivot], m[col]

		inv := new(big.Rat).Inv(m[col][col])
		for j := range m[col] {
			m[col][j].Mul(m[col][j], inv)
		}
		for r := 0; r < n; r++ {
			if r == col || m[r][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(m[r][col])
			for j := range m[r] {
				if m[col][j].Sign() != 0 {
					m[r][j].Sub(m[r][j], prod.Mul(factor, m[col][j]))
				}
			}
		}
	}

	out := make([][]*big.Rat, n)
	for i := range m {
		out[i] = m[i][n:]
	}
	return out
}
