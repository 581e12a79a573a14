// Package partition provides integer partitions, the index set of every
// classical basis of the ring of symmetric functions.
//
// # Representation
//
// A [Partition] is a non-increasing slice of positive integers. [New] sorts
// and drops zero parts, so any multiset of component sizes can be passed in
// directly:
//
//	p := partition.New(1, 3, 1) // [3, 1, 1]
//	p.Size()                    // 5
//	p.Key()                     // "3,1,1"
//
// The [Partition.Key] string is the canonical map key used by coefficient
// tables. The empty partition (the only partition of 0) has the empty key.
//
// # Enumeration
//
// [All] lists the partitions of n in reverse-lexicographic order, starting at
// [n] and ending at [1, 1, ..., 1]. [Count] returns the partition number p(n)
// without materializing the list.
package partition
