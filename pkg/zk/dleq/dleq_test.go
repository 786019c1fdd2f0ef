package zkdleq

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/curve"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/sample"
)

func scalar(x uint64) curve.Scalar {
	return curve.Secp256k1{}.NewScalar().SetNat(new(saferith.Nat).SetUint64(x))
}

func TestBases(t *testing.T) {
	b := DefaultBases()
	assert.True(t, b.G.Equal(curve.Secp256k1{}.NewBasePoint()))
	assert.False(t, b.H.IsIdentity())
	assert.False(t, b.H.Equal(b.G))

	b2, err := NewBases(curve.Secp256k1{}, DefaultLabel)
	require.NoError(t, err)
	assert.True(t, b.H.Equal(b2.H), "H must be deterministic")

	b3, err := NewBases(curve.Secp256k1{}, "another label")
	require.NoError(t, err)
	assert.False(t, b.H.Equal(b3.H))
}

func TestPass(t *testing.T) {
	b := DefaultBases()
	for i := 0; i < 10; i++ {
		private := NewSecret(rand.Reader, b)
		public := NewPublic(b, private)
		k := NewNonce(rand.Reader, b)
		commitment := Commit(b, k)
		c := NewChallenge(rand.Reader, b)
		response := Respond(k, c, private.X)
		assert.True(t, public.Verify(b, commitment, c, response), "failed passing test")
	}
}

func TestPass_ZeroNonce(t *testing.T) {
	b := DefaultBases()
	private := NewSecret(rand.Reader, b)
	public := NewPublic(b, private)
	zero := scalar(0)
	commitment := Commit(b, zero)
	require.True(t, commitment.R1.IsIdentity())
	require.True(t, commitment.R2.IsIdentity())

	c := NewChallenge(rand.Reader, b)
	assert.True(t, public.Verify(b, commitment, c, Respond(zero, c, private.X)), "an honest proof with k = 0 should pass")
	wrong := curve.Secp256k1{}.NewScalar().Set(private.X).Add(scalar(1))
	assert.False(t, public.Verify(b, commitment, c, Respond(zero, c, wrong)))
}

func TestRespond(t *testing.T) {
	// k = 7, c = 4, x = 6 gives s = -17 ≡ n - 17
	s := Respond(scalar(7), scalar(4), scalar(6)).S
	assert.True(t, s.Add(scalar(17)).IsZero())

	s = Respond(scalar(30), scalar(4), scalar(6)).S
	assert.True(t, s.Equal(scalar(6)))
}

func TestFail(t *testing.T) {
	b := DefaultBases()
	private := NewSecret(rand.Reader, b)
	public := NewPublic(b, private)
	k := NewNonce(rand.Reader, b)
	commitment := Commit(b, k)
	c := NewChallenge(rand.Reader, b)

	wrong := curve.Secp256k1{}.NewScalar().Set(private.X).Add(scalar(1))
	assert.False(t, public.Verify(b, commitment, c, Respond(k, c, wrong)), "proof with the wrong secret should fail")

	// y₂ for another exponent than y₁
	mixed := Public{Y1: public.Y1, Y2: wrong.Act(b.H)}
	assert.False(t, mixed.Verify(b, commitment, c, Respond(k, c, private.X)))

	// a different challenge
	response := Respond(k, c, private.X)
	other := curve.Secp256k1{}.NewScalar().Set(c).Add(scalar(1))
	assert.False(t, public.Verify(b, commitment, other, response))
}

func TestRejectIdentity(t *testing.T) {
	b := DefaultBases()
	zero := scalar(0)
	public := NewPublic(b, Private{X: zero})
	require.True(t, public.Y1.IsIdentity())

	k := NewNonce(rand.Reader, b)
	c := NewChallenge(rand.Reader, b)
	assert.False(t, public.Verify(b, Commit(b, k), c, Respond(k, c, zero)), "proof should not accept identity point")

	private := NewSecret(rand.Reader, b)
	public = NewPublic(b, private)
	assert.False(t, public.Verify(b, &Commitment{R1: Commit(b, k).R1}, c, Respond(k, c, private.X)))
	assert.False(t, public.Verify(b, nil, c, Respond(k, c, private.X)))
	assert.False(t, public.Verify(b, Commit(b, k), nil, Respond(k, c, private.X)))
	assert.False(t, public.Verify(nil, Commit(b, k), c, Respond(k, c, private.X)))
}

func TestTranscript_Marshal(t *testing.T) {
	b := DefaultBases()
	transcript, accepted := Run(rand.Reader, b, NewSecret(rand.Reader, b))
	require.True(t, accepted)

	out, err := cbor.Marshal(transcript)
	require.NoError(t, err, "failed to marshal transcript")
	transcript2 := &Transcript{}
	require.NoError(t, cbor.Unmarshal(out, transcript2), "failed to unmarshal transcript")
	assert.True(t, transcript2.Verify(b))
	assert.True(t, transcript.Challenge.Equal(transcript2.Challenge))

	_, err = (&Transcript{}).MarshalBinary()
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestRun_WrongStatement(t *testing.T) {
	b := DefaultBases()
	x, _ := sample.ScalarPointPair(rand.Reader, b.Curve())
	transcript, accepted := Run(rand.Reader, b, Private{X: x})
	require.True(t, accepted)

	transcript.Public.Y2 = transcript.Public.Y2.Add(b.H)
	assert.False(t, transcript.Verify(b))
}

func BenchmarkVerify(b *testing.B) {
	bases := DefaultBases()
	transcript, _ := Run(rand.Reader, bases, NewSecret(rand.Reader, bases))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		transcript.Verify(bases)
	}
}
