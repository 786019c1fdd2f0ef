package group

import (
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/internal/params"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
	"golang.org/x/crypto/sha3"
)

// DeriveBeta returns β = αᵉ (mod p).
//
// When α has order q, so does β, unless e ≡ 0 (mod q), which gives β = 1,
// or e ≡ 1 (mod q), which gives β = α. Both are rejected with ErrDegenerateExponent.
func DeriveBeta(p, q *saferith.Modulus, alpha, e *saferith.Nat) (*saferith.Nat, error) {
	if p == nil || q == nil || alpha == nil || e == nil {
		return nil, ErrNilFields
	}
	eq := new(saferith.Nat).Mod(e, q)
	if eq.EqZero() == 1 || arith.IsOne(eq) {
		return nil, ErrDegenerateExponent
	}
	return arith.Exp(alpha, eq, p), nil
}

// ExponentFromLabel expands label with SHAKE256 and reduces the output mod q.
//
// At least params.DeriveBytes are read, and StatParam bits more than the size of q
// for larger moduli, such as the order of a generated group.
func ExponentFromLabel(q *saferith.Modulus, label string) *saferith.Nat {
	n := (q.BitLen() + params.StatParam + 7) / 8
	if n < params.DeriveBytes {
		n = params.DeriveBytes
	}
	buf := make([]byte, n)
	sha3.ShakeSum256(buf, []byte(label))
	e := new(saferith.Nat).SetBytes(buf)
	return e.Mod(e, q)
}

// DeriveBetaFromLabel returns β = αᵉ (mod p) with e = SHAKE256(label) mod q.
//
// This lets anyone recompute β from α and a public label.
func DeriveBetaFromLabel(p, q *saferith.Modulus, alpha *saferith.Nat, label string) (*saferith.Nat, error) {
	return DeriveBeta(p, q, alpha, ExponentFromLabel(q, label))
}
