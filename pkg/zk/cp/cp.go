// Package zkcp implements the interactive Chaum-Pedersen proof of equality of discrete logarithms.
//
// The prover knows x such that y₁ = αˣ and y₂ = βˣ (mod p), and convinces the verifier
// in three moves:
//
//	prover → verifier:  r₁ = αᵏ, r₂ = βᵏ       for a fresh k ∈ ℤq
//	verifier → prover:  c ∈ ℤq
//	prover → verifier:  s = k - c⋅x (mod q)
//
// The verifier accepts iff r₁ = αˢ⋅y₁ᶜ and r₂ = βˢ⋅y₂ᶜ (mod p).
//
// The free functions in this package implement each move statelessly.
// Prover and Verifier wrap them in sessions which enforce the order of the moves.
package zkcp

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/sample"
)

type (
	Public struct {
		// Y1 = αˣ mod p
		Y1 *saferith.Nat
		// Y2 = βˣ mod p
		Y2 *saferith.Nat
	}
	Private struct {
		// X = x ∈ ℤq
		X *saferith.Nat
	}
)

type Commitment struct {
	// R1 = αᵏ mod p
	R1 *saferith.Nat
	// R2 = βᵏ mod p
	R2 *saferith.Nat
}

type Response struct {
	// S = k - c⋅x mod q
	S *saferith.Nat
}

// NewPublic computes the public values y₁ = αˣ, y₂ = βˣ (mod p) tied to the secret x.
//
// They only depend on x, and can be reused across sessions.
func NewPublic(g *group.Parameters, private Private) Public {
	p := g.PExp()
	return Public{
		Y1: p.Exp(g.Alpha(), private.X),
		Y2: p.Exp(g.Beta(), private.X),
	}
}

// NewSecret samples a witness x uniformly in ℤq.
func NewSecret(rand io.Reader, g *group.Parameters) Private {
	return Private{X: sample.ModN(rand, g.Q())}
}

// NewNonce samples a nonce k uniformly in ℤq.
//
// A nonce must never be used for more than one challenge:
// two responses s, s' for the same k and distinct challenges reveal x.
func NewNonce(rand io.Reader, g *group.Parameters) *saferith.Nat {
	return sample.ModN(rand, g.Q())
}

// NewChallenge samples a challenge c uniformly in ℤq.
func NewChallenge(rand io.Reader, g *group.Parameters) *saferith.Nat {
	return sample.ModN(rand, g.Q())
}

// Commit computes the first message r₁ = αᵏ, r₂ = βᵏ (mod p).
func Commit(g *group.Parameters, k *saferith.Nat) *Commitment {
	p := g.PExp()
	return &Commitment{
		R1: p.Exp(g.Alpha(), k),
		R2: p.Exp(g.Beta(), k),
	}
}

// Respond computes s = k - c⋅x (mod q).
//
// The difference is computed in ℤq, so it cannot underflow even though saferith.Nat is unsigned,
// and s is always in [0,…,q-1]. When k ≥ c⋅x the result equals (k - c⋅x) mod q, and otherwise
// it equals q - ((c⋅x - k) mod q) reduced mod q.
func Respond(g *group.Parameters, k, c, x *saferith.Nat) *Response {
	q := g.Q()
	cx := arith.ModMul(c, x, q)
	return &Response{S: arith.ModSub(k, cx, q)}
}

// VerifyValues returns true iff
//
//	r₁ = αˢ⋅y₁ᶜ (mod p), and
//	r₂ = βˢ⋅y₂ᶜ (mod p).
//
// Values outside of their domain (r₁, r₂, y₁, y₂ ∉ [1,…,p-1] or c, s ∉ [0,…,q-1]) are rejected.
// Returning false is the expected outcome for an invalid proof, and is not an error.
func VerifyValues(g *group.Parameters, r1, r2, y1, y2, c, s *saferith.Nat) bool {
	if g == nil {
		return false
	}
	if !arith.IsValidNatModN(g.P(), r1, r2, y1, y2) {
		return false
	}
	if !arith.IsInRange(g.Q(), c) || !arith.IsInRange(g.Q(), s) {
		return false
	}

	p := g.PExp()
	// αˢ⋅y₁ᶜ (mod p)
	rhs1 := p.ExpMul(g.Alpha(), s, y1, c)
	// βˢ⋅y₂ᶜ (mod p)
	rhs2 := p.ExpMul(g.Beta(), s, y2, c)

	return (r1.Eq(rhs1) & r2.Eq(rhs2)) == 1
}

// Verify checks the response to challenge c, for the commitment and public values.
func (public Public) Verify(g *group.Parameters, commitment *Commitment, c *saferith.Nat, response *Response) bool {
	if commitment == nil || response == nil {
		return false
	}
	return VerifyValues(g, commitment.R1, commitment.R2, public.Y1, public.Y2, c, response.S)
}
