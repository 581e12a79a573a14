package partition

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidPart is returned by [Parse] when a part is not a positive integer.
var ErrInvalidPart = errors.New("partition parts must be positive integers")

// Partition is an integer partition stored as a non-increasing sequence of
// positive parts. The zero value is the empty partition of 0.
type Partition []int

// New returns the partition with the given parts. Parts are sorted in
// non-increasing order and zero parts are dropped. Negative parts panic,
// since no multiset of component sizes can produce them.
func New(parts ...int) Partition {
	p := make(Partition, 0, len(parts))
	for _, x := range parts {
		if x < 0 {
			panic(fmt.Sprintf("partition: negative part %d", x))
		}
		if x > 0 {
			p = append(p, x)
		}
	}
	slices.SortFunc(p, func(a, b int) int { return b - a })
	return p
}

// Ones returns the partition [1, 1, ..., 1] of n.
func Ones(n int) Partition {
	p := make(Partition, n)
	for i := range p {
		p[i] = 1
	}
	return p
}

// Parse reads a partition from its key ("3,1,1") or its display form
// ("[3, 1, 1]"). The empty string and "[]" denote the empty partition.
func Parse(s string) (Partition, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimSpace(s)
	if s == "" {
		return Partition{}, nil
	}
	fields := strings.Split(s, ",")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		x, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || x <= 0 {
			return nil, fmt.Errorf("parse %q: %w", f, ErrInvalidPart)
		}
		parts = append(parts, x)
	}
	return New(parts...), nil
}

// Key returns the canonical map key: the parts joined by commas.
func (p Partition) Key() string {
	return string(p.AppendKey(nil))
}

// AppendKey appends the key of p to buf. It lets hot loops build keys
// without allocating a fresh string per lookup.
func (p Partition) AppendKey(buf []byte) []byte {
	for i, x := range p {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(x), 10)
	}
	return buf
}

// Size returns the sum of the parts, i.e. the integer being partitioned.
func (p Partition) Size() int {
	n := 0
	for _, x := range p {
		n += x
	}
	return n
}

// Len returns the number of parts.
func (p Partition) Len() int { return len(p) }

// Equal reports whether p and q have the same parts.
func (p Partition) Equal(q Partition) bool { return slices.Equal(p, q) }

// Compare orders partitions lexicographically on their non-increasing form.
// A proper prefix sorts first.
func (p Partition) Compare(q Partition) int { return slices.Compare(p, q) }

// Multiplicities returns how often each part occurs, keyed by part.
func (p Partition) Multiplicities() map[int]int {
	m := make(map[int]int, len(p))
	for _, x := range p {
		m[x]++
	}
	return m
}

// String formats the partition as "[3, 1, 1]".
func (p Partition) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(x))
	}
	b.WriteByte(']')
	return b.String()
}

// Clone returns a copy of p that does not share storage.
func (p Partition) Clone() Partition { return slices.Clone(p) }
