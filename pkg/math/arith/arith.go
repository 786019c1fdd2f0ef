// Package arith contains the modular arithmetic the proofs are built on.
//
// All values are saferith.Nat, which are unsigned. Subtractions are therefore always
// performed modulo some saferith.Modulus, where they cannot underflow.
package arith

import (
	"github.com/cronokirby/saferith"
)

// Exp returns baseᵉˣᵖᵒⁿᵉⁿᵗ (mod modulus).
//
// The base is reduced first, so any base is accepted.
// The modulus must be odd, which holds for every prime p > 2.
func Exp(base, exponent *saferith.Nat, modulus *saferith.Modulus) *saferith.Nat {
	b := new(saferith.Nat).Mod(base, modulus)
	return new(saferith.Nat).Exp(b, exponent, modulus)
}

// ModSub returns x - y (mod n), for arbitrary x, y.
func ModSub(x, y *saferith.Nat, n *saferith.Modulus) *saferith.Nat {
	xMod := new(saferith.Nat).Mod(x, n)
	yMod := new(saferith.Nat).Mod(y, n)
	return xMod.ModSub(xMod, yMod, n)
}

// ModMul returns x⋅y (mod n), for arbitrary x, y.
func ModMul(x, y *saferith.Nat, n *saferith.Modulus) *saferith.Nat {
	xMod := new(saferith.Nat).Mod(x, n)
	yMod := new(saferith.Nat).Mod(y, n)
	return xMod.ModMul(xMod, yMod, n)
}

// IsInRange returns true if x ∈ [0,…,n-1].
func IsInRange(n *saferith.Modulus, x *saferith.Nat) bool {
	if x == nil {
		return false
	}
	_, _, lt := x.CmpMod(n)
	return lt == 1
}

// IsValidNatModN checks that ints are all in the range [1,…,N-1].
func IsValidNatModN(n *saferith.Modulus, ints ...*saferith.Nat) bool {
	for _, i := range ints {
		if i == nil {
			return false
		}
		if !IsInRange(n, i) {
			return false
		}
		if i.EqZero() == 1 {
			return false
		}
	}
	return true
}

// IsOne returns true if x = 1.
func IsOne(x *saferith.Nat) bool {
	one := new(saferith.Nat).SetUint64(1)
	return x.Eq(one) == 1
}
