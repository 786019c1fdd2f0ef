// Package group holds the public parameters shared by the prover and the verifier.
//
// A group is described by a prime modulus p, a prime q dividing p-1, and two
// generators α, β of the subgroup of order q in ℤₚˣ.
//
// The primality of p and q is a precondition which is never checked here.
// Parameters should come from a standardized group, such as RFC5114.
package group

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
)

// Parameters is an immutable description of a prime-order subgroup of ℤₚˣ.
//
// It is safe to share a *Parameters between any number of goroutines.
// saferith.Modulus exposes no setters, and the generators are only handed out as copies.
type Parameters struct {
	p           *arith.Modulus
	q           *saferith.Modulus
	alpha, beta *saferith.Nat
}

// New returns a new set of group parameters.
//
// The generators are copied, so later changes to alpha or beta are not visible.
// No validation is performed; callers must ensure that p and q are prime,
// that q | p-1, and that α, β both have order q mod p.
// Validate can be used to check everything but primality.
func New(p, q *saferith.Modulus, alpha, beta *saferith.Nat) *Parameters {
	return &Parameters{
		p:     arith.ModulusFromN(p),
		q:     q,
		alpha: cloneNat(alpha),
		beta:  cloneNat(beta),
	}
}

func cloneNat(x *saferith.Nat) *saferith.Nat {
	if x == nil {
		return nil
	}
	return new(saferith.Nat).SetNat(x)
}

// P is the prime modulus.
func (g *Parameters) P() *saferith.Modulus { return g.p.Modulus }

// PExp returns the modulus p with its exponentiation helpers.
// Each call returns a new wrapper around the shared modulus.
func (g *Parameters) PExp() *arith.Modulus { return arith.ModulusFromN(g.p.Modulus) }

// Q is the prime order of the subgroup.
func (g *Parameters) Q() *saferith.Modulus { return g.q }

// Alpha returns a copy of the first generator.
func (g *Parameters) Alpha() *saferith.Nat { return cloneNat(g.alpha) }

// Beta returns a copy of the second generator.
func (g *Parameters) Beta() *saferith.Nat { return cloneNat(g.beta) }

// Validate returns an error if any of the following is true:
//   - p, q, α or β is nil.
//   - q ≥ p.
//   - α or β is not in [2, …, p-1].
//   - α = β.
//   - αᵠ ≠ 1 or βᵠ ≠ 1 (mod p).
//
// Since q is assumed to be prime, the last check implies both generators have order exactly q.
func (g *Parameters) Validate() error {
	if g == nil || g.p == nil || g.p.Modulus == nil || g.q == nil || g.alpha == nil || g.beta == nil {
		return ErrNilFields
	}
	if !arith.IsInRange(g.P(), g.q.Nat()) {
		return ErrOrderTooLarge
	}
	if !arith.IsValidNatModN(g.P(), g.alpha, g.beta) || arith.IsOne(g.alpha) || arith.IsOne(g.beta) {
		return ErrNotInRange
	}
	if g.alpha.Eq(g.beta) == 1 {
		return ErrEqualGenerators
	}
	q := g.q.Nat()
	if !arith.IsOne(g.p.Exp(g.alpha, q)) || !arith.IsOne(g.p.Exp(g.beta, q)) {
		return ErrWrongOrder
	}
	return nil
}

// Equal returns true if both sets of parameters describe the same group.
func (g *Parameters) Equal(other *Parameters) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.p.Equal(other.p) &&
		g.q.Nat().Eq(other.q.Nat()) == 1 &&
		g.alpha.Eq(other.alpha) == 1 &&
		g.beta.Eq(other.beta) == 1
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
//
// Each value is written as a 2 byte length followed by its minimal big-endian encoding.
func (g *Parameters) WriteTo(w io.Writer) (int64, error) {
	if g == nil {
		return 0, io.ErrUnexpectedEOF
	}
	nAll := int64(0)
	var length [2]byte
	for _, x := range []*big.Int{g.P().Big(), g.q.Big(), g.alpha.Big(), g.beta.Big()} {
		b := x.Bytes()
		binary.BigEndian.PutUint16(length[:], uint16(len(b)))
		n, err := w.Write(length[:])
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
		n, err = w.Write(b)
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Parameters) Domain() string {
	return "Chaum-Pedersen Group Parameters"
}
