// Package zkdleq implements the interactive Chaum-Pedersen proof over an elliptic curve.
//
// The prover knows x such that Y₁ = x⋅G and Y₂ = x⋅H, and convinces the verifier in three moves:
//
//	prover → verifier:  R₁ = k⋅G, R₂ = k⋅H     for a fresh k ∈ ℤₙ
//	verifier → prover:  c ∈ ℤₙ
//	prover → verifier:  s = k - c⋅x (mod n)
//
// The verifier accepts iff R₁ = s⋅G + c⋅Y₁ and R₂ = s⋅H + c⋅Y₂.
package zkdleq

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/chaum-pedersen/internal/params"
	"github.com/taurusgroup/chaum-pedersen/pkg/hash"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/curve"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/sample"
)

// DefaultLabel is the label from which DefaultBases derives H.
const DefaultLabel = "chaum-pedersen/secp256k1/H"

var ErrHashToCurve = errors.New("zkdleq: failed to hash label onto the curve")

// Bases holds the two generators. Nobody may know log_G(H).
type Bases struct {
	G curve.Point
	H curve.Point
}

// NewBases returns the base point of group as G, and derives H from label.
func NewBases(group curve.Curve, label string) (*Bases, error) {
	h, err := hashToPoint(group, label)
	if err != nil {
		return nil, err
	}
	return &Bases{G: group.NewBasePoint(), H: h}, nil
}

// DefaultBases returns the bases over secp256k1 derived from DefaultLabel.
func DefaultBases() *Bases {
	b, err := NewBases(curve.Secp256k1{}, DefaultLabel)
	if err != nil {
		panic(err)
	}
	return b
}

// Curve returns the group the bases belong to.
func (b *Bases) Curve() curve.Curve {
	return b.G.Curve()
}

// hashToPoint uses try-and-increment: the digest of (label, counter) is used as the
// x coordinate of a compressed point, until one lies on the curve.
func hashToPoint(group curve.Curve, label string) (curve.Point, error) {
	h := hash.New(&hash.BytesWithDomain{TheDomain: "Generator Label", Bytes: []byte(label)})
	var counter [4]byte
	for i := uint32(0); i < params.MaxSampleIterations; i++ {
		binary.BigEndian.PutUint32(counter[:], i)
		attempt := h.Clone()
		if err := attempt.WriteAny(&hash.BytesWithDomain{TheDomain: "Counter", Bytes: counter[:]}); err != nil {
			return nil, fmt.Errorf("zkdleq: %w", err)
		}
		compressed := make([]byte, 33)
		compressed[0] = 2
		copy(compressed[1:], attempt.Sum()[:32])
		p := group.NewPoint()
		if err := p.UnmarshalBinary(compressed); err == nil && !p.IsIdentity() {
			return p, nil
		}
	}
	return nil, ErrHashToCurve
}

type (
	Public struct {
		// Y1 = x⋅G
		Y1 curve.Point
		// Y2 = x⋅H
		Y2 curve.Point
	}
	Private struct {
		X curve.Scalar
	}
)

type Commitment struct {
	// R1 = k⋅G
	R1 curve.Point
	// R2 = k⋅H
	R2 curve.Point
}

type Response struct {
	// S = k - c⋅x mod n
	S curve.Scalar
}

// NewPublic returns Y₁ = x⋅G and Y₂ = x⋅H.
func NewPublic(b *Bases, private Private) Public {
	return Public{
		Y1: private.X.Act(b.G),
		Y2: private.X.Act(b.H),
	}
}

// NewSecret samples the witness x uniformly in ℤₙ.
func NewSecret(rand io.Reader, b *Bases) Private {
	return Private{X: sample.Scalar(rand, b.Curve())}
}

// NewNonce samples k uniformly in ℤₙ. It must answer a single challenge.
func NewNonce(rand io.Reader, b *Bases) curve.Scalar {
	return sample.Scalar(rand, b.Curve())
}

// NewChallenge samples the verifier's challenge c uniformly in ℤₙ.
func NewChallenge(rand io.Reader, b *Bases) curve.Scalar {
	return sample.Scalar(rand, b.Curve())
}

// Commit returns the prover's first message R₁ = k⋅G, R₂ = k⋅H.
func Commit(b *Bases, k curve.Scalar) *Commitment {
	return &Commitment{
		R1: k.Act(b.G),
		R2: k.Act(b.H),
	}
}

// Respond computes s = k - c⋅x (mod n).
func Respond(k, c, x curve.Scalar) *Response {
	group := k.Curve()
	cx := group.NewScalar().Set(c).Mul(x)
	return &Response{S: group.NewScalar().Set(k).Sub(cx)}
}

// Verify returns true iff R₁ = s⋅G + c⋅Y₁ and R₂ = s⋅H + c⋅Y₂.
//
// Missing values and identity public points are rejected.
// The commitment may be the identity, which an honest prover sends when k = 0.
func (public Public) Verify(b *Bases, commitment *Commitment, c curve.Scalar, response *Response) bool {
	if b == nil || commitment == nil || response == nil || c == nil || response.S == nil {
		return false
	}
	if commitment.R1 == nil || commitment.R2 == nil {
		return false
	}
	for _, p := range []curve.Point{public.Y1, public.Y2} {
		if p == nil || p.IsIdentity() {
			return false
		}
	}

	s := response.S
	// s⋅G + c⋅Y₁
	rhs1 := s.Act(b.G).Add(c.Act(public.Y1))
	// s⋅H + c⋅Y₂
	rhs2 := s.Act(b.H).Add(c.Act(public.Y2))
	return commitment.R1.Equal(rhs1) && commitment.R2.Equal(rhs2)
}
