// Package symfunc implements the ring of symmetric functions over the
// rationals in its five classical bases.
//
// # Bases
//
// Every basis is indexed by integer partitions:
//
//   - [Power]: power sums p_λ
//   - [Monomial]: monomial symmetric functions m_λ
//   - [Elementary]: elementary symmetric functions e_λ
//   - [Homogeneous]: complete homogeneous symmetric functions h_λ
//   - [Schur]: Schur functions s_λ
//
// [ParseBasis] selects a basis by the first character of a name ("power",
// "m", "elementary", ...). The match is case sensitive and an unrecognized
// name yields [Unknown]. Converting to [Unknown] returns the function
// unchanged rather than failing.
//
// # Change of basis
//
// [SymFunc.In] converts exactly, with [math/big.Rat] coefficients. Every basis
// element of degree n is expanded in the monomial basis through an integer
// transition matrix:
//
//	p_λ = Σ_μ R_λμ m_μ   R: ordered set partitions of λ's parts summing to μ
//	e_λ = Σ_μ M_λμ m_μ   M: 0-1 matrices with row sums λ, column sums μ
//	h_λ = Σ_μ N_λμ m_μ   N: ℕ-matrices with row sums λ, column sums μ
//	s_λ = Σ_μ K_λμ m_μ   K: Kostka numbers
//
// A conversion multiplies by the source matrix and by the inverse of the
// target matrix. Matrices and inverses are memoized per (basis, degree) and
// are safe for concurrent use.
//
// # Example
//
//	f := symfunc.New(symfunc.Power)
//	f.AddInt(partition.New(1, 1), 1)
//	f.AddInt(partition.New(2), -1)
//	fmt.Println(f.In(symfunc.Elementary)) // 2*e[2]
package symfunc
