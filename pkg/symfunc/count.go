package symfunc

import (
	"math/big"
	"slices"
	"strconv"

	"github.com/matzehuels/chromatic/pkg/partition"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// rowFiller enumerates every way to place one row of size r against the
// remaining column capacities. It mutates caps in place, calls next with the
// reduced capacities, and restores caps before returning.
type rowFiller func(r int, caps []int, next func([]int))

// matrixCount counts the integer matrices whose row sums are rows and whose
// column sums are cols, where fill decides what a single row may look like.
// The count only depends on the multiset of remaining capacities, which is
// what the memo is keyed on.
func matrixCount(rows, cols partition.Partition, fill rowFiller) *big.Int {
	if rows.Size() != cols.Size() {
		return bigZero
	}
	memo := make(map[string]*big.Int)
	var count func(i int, caps []int) *big.Int
	count = func(i int, caps []int) *big.Int {
		if i == len(rows) {
			for _, c := range caps {
				if c != 0 {
					return bigZero
				}
			}
			return bigOne
		}
		key := capsKey(i, caps)
		if v, ok := memo[key]; ok {
			return v
		}
		total := new(big.Int)
		fill(rows[i], caps, func(next []int) {
			total.Add(total, count(i+1, next))
		})
		memo[key] = total
		return total
	}
	return count(0, slices.Clone([]int(cols)))
}

func capsKey(i int, caps []int) string {
	sorted := slices.Clone(caps)
	slices.Sort(sorted)
	buf := strconv.AppendInt(nil, int64(i), 10)
	for _, c := range sorted {
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(c), 10)
	}
	return string(buf)
}

// powerSumCount is R_λμ: the number of ways to send each part of λ to a part
// of μ so that the parts sent to μ_j sum to μ_j.
func powerSumCount(lambda, mu partition.Partition) *big.Int {
	return matrixCount(lambda, mu, func(r int, caps []int, next func([]int)) {
		for j := range caps {
			if caps[j] >= r {
				caps[j] -= r
				next(caps)
				caps[j] += r
			}
		}
	})
}

// zeroOneCount is M_λμ: the number of 0-1 matrices with row sums λ and column
// sums μ.
func zeroOneCount(lambda, mu partition.Partition) *big.Int {
	return matrixCount(lambda, mu, func(r int, caps []int, next func([]int)) {
		var walk func(j, rem int)
		walk = func(j, rem int) {
			if rem == 0 {
				next(caps)
				return
			}
			if len(caps)-j < rem {
				return
			}
			if caps[j] > 0 {
				caps[j]--
				walk(j+1, rem-1)
				caps[j]++
			}
			walk(j+1, rem)
		}
		walk(0, r)
	})
}

// naturalCount is N_λμ: the number of non-negative integer matrices with row
// sums λ and column sums μ.
func naturalCount(lambda, mu partition.Partition) *big.Int {
	return matrixCount(lambda, mu, func(r int, caps []int, next func([]int)) {
		var walk func(j, rem int)
		walk = func(j, rem int) {
			if j == len(caps) {
				if rem == 0 {
					next(caps)
				}
				return
			}
			for x := 0; x <= min(rem, caps[j]); x++ {
				caps[j] -= x
				walk(j+1, rem-x)
				caps[j] += x
			}
		}
		walk(0, r)
	})
}

// kostkaNumber is K_λμ: the number of semistandard Young tableaux of shape λ
// and content μ. The largest entry occupies a horizontal strip, so removing
// it recursively peels one part of μ at a time.
func kostkaNumber(lambda, mu partition.Partition) *big.Int {
	if lambda.Size() != mu.Size() {
		return bigZero
	}
	memo := make(map[string]*big.Int)
	var count func(shape []int, k int) *big.Int
	count = func(shape []int, k int) *big.Int {
		if k == 0 {
			for _, x := range shape {
				if x != 0 {
					return bigZero
				}
			}
			return bigOne
		}
		key := strconv.Itoa(k) + "|" + partition.New(shape...).Key()
		if v, ok := memo[key]; ok {
			return v
		}

		total := new(big.Int)
		inner := make([]int, len(shape))
		var strip func(i, rem int)
		strip = func(i, rem int) {
			if i == len(shape) {
				if rem == 0 {
					total.Add(total, count(slices.Clone(inner), k-1))
				}
				return
			}
			below := 0
			if i+1 < len(shape) {
				below = shape[i+1]
			}
			for x := 0; x <= min(rem, shape[i]-below); x++ {
				inner[i] = shape[i] - x
				strip(i+1, rem-x)
			}
		}
		strip(0, mu[k-1])

		memo[key] = total
		return total
	}
	return count(slices.Clone([]int(lambda)), len(mu))
}
