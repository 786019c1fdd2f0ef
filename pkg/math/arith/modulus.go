package arith

import (
	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus and groups the exponentiations performed
// against a fixed prime modulus p.
type Modulus struct {
	// represents modulus p
	*saferith.Modulus
}

// ModulusFromN creates a simple wrapper around a given modulus.
// The modulus is not copied.
func ModulusFromN(n *saferith.Modulus) *Modulus {
	return &Modulus{
		Modulus: n,
	}
}

// Exp returns xᵉ (mod n).
func (n *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	return Exp(x, e, n.Modulus)
}

// ExpMul returns aᵉ⋅bᶠ (mod n).
func (n *Modulus) ExpMul(a, e, b, f *saferith.Nat) *saferith.Nat {
	ae := n.Exp(a, e)
	bf := n.Exp(b, f)
	return ae.ModMul(ae, bf, n.Modulus)
}

// Equal returns true if both moduli represent the same number.
func (n *Modulus) Equal(other *Modulus) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Nat().Eq(other.Nat()) == 1
}
