// Package trees enumerates unlabelled trees and checks Stanley's tree
// conjecture, which asks whether the chromatic symmetric function
// distinguishes non-isomorphic trees.
//
// Rooted trees are generated as level sequences in the order of Beyer and
// Hedetniemi. [Free] keeps one tree per isomorphism class using a canonical
// encoding rooted at the centre. [Check] groups the free trees by degree
// sequence, which the chromatic symmetric function of a tree determines, and
// compares the functions inside every group with a worker pool.
package trees
