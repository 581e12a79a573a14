package partition

// All returns every partition of n in reverse-lexicographic order: [n] first
// and [1, ..., 1] last. All(0) returns the single empty partition.
func All(n int) []Partition {
	if n < 0 {
		return nil
	}
	var out []Partition
	var walk func(rem, max int, cur Partition)
	walk = func(rem, max int, cur Partition) {
		if rem == 0 {
			out = append(out, cur.Clone())
			return
		}
		for k := min(rem, max); k >= 1; k-- {
			walk(rem-k, k, append(cur, k))
		}
	}
	walk(n, n, make(Partition, 0, n))
	return out
}

// Count returns the number of partitions of n.
func Count(n int) int {
	if n < 0 {
		return 0
	}
	// ways[k] counts partitions of k into parts no larger than the current part.
	ways := make([]int, n+1)
	ways[0] = 1
	for part := 1; part <= n; part++ {
		for k := part; k <= n; k++ {
			ways[k] += ways[k-part]
		}
	}
	return ways[n]
}
