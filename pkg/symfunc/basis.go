package symfunc

// Basis identifies one of the classical bases of the symmetric function ring.
type Basis int

const (
	// Power is the power-sum basis p_λ.
	Power Basis = iota
	// Monomial is the monomial basis m_λ.
	Monomial
	// Elementary is the elementary basis e_λ.
	Elementary
	// Homogeneous is the complete homogeneous basis h_λ.
	Homogeneous
	// Schur is the Schur basis s_λ.
	Schur
	// Unknown is returned by ParseBasis for unrecognized names. Converting a
	// function to Unknown leaves it in its current basis.
	Unknown
)

// ParseBasis selects a basis by the first character of name, case sensitive:
// 'p', 'm', 'e', 'h' and 's' select Power, Monomial, Elementary, Homogeneous
// and Schur. Anything else, including the empty string, is Unknown.
func ParseBasis(name string) Basis {
	if name == "" {
		return Unknown
	}
	switch name[0] {
	case 'p':
		return Power
	case 'm':
		return Monomial
	case 'e':
		return Elementary
	case 'h':
		return Homogeneous
	case 's':
		return Schur
	default:
		return Unknown
	}
}

// Prefix returns the one-letter symbol used when printing terms ("p", "m",
// "e", "h", "s"). Unknown has no prefix.
func (b Basis) Prefix() string {
	switch b {
	case Power:
		return "p"
	case Monomial:
		return "m"
	case Elementary:
		return "e"
	case Homogeneous:
		return "h"
	case Schur:
		return "s"
	default:
		return ""
	}
}

// String returns the basis name.
func (b Basis) String() string {
	switch b {
	case Power:
		return "power"
	case Monomial:
		return "monomial"
	case Elementary:
		return "elementary"
	case Homogeneous:
		return "homogeneous"
	case Schur:
		return "schur"
	default:
		return "unknown"
	}
}

// Bases lists the five concrete bases in display order.
func Bases() []Basis {
	return []Basis{Power, Monomial, Elementary, Homogeneous, Schur}
}
