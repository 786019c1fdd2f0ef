package zkcp

import (
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/hash"
	"github.com/taurusgroup/chaum-pedersen/pkg/pool"
)

// Transcript holds every value exchanged during one session.
//
// Anyone holding the group parameters can check it with Verify, but since the challenge
// was chosen interactively, it only convinces the party that chose c.
type Transcript struct {
	Public     Public
	Commitment *Commitment
	Challenge  *saferith.Nat
	Response   *Response
}

// Verify returns true if the transcript is an accepting conversation.
func (t *Transcript) Verify(g *group.Parameters) bool {
	if t == nil {
		return false
	}
	return t.Public.Verify(g, t.Commitment, t.Challenge, t.Response)
}

// Digest returns a blake3 digest identifying the transcript, suitable for logs.
//
// It returns nil if the transcript is incomplete.
func (t *Transcript) Digest(g *group.Parameters) []byte {
	if t == nil || t.Commitment == nil || t.Challenge == nil || t.Response == nil || t.Response.S == nil {
		return nil
	}
	if t.Public.Y1 == nil || t.Public.Y2 == nil || t.Commitment.R1 == nil || t.Commitment.R2 == nil {
		return nil
	}
	h := sessionHash(g, t.Public)
	if err := h.WriteAny(t.Commitment,
		&hash.BytesWithDomain{TheDomain: "Challenge", Bytes: natBytes(t.Challenge)},
		&hash.BytesWithDomain{TheDomain: "Response", Bytes: natBytes(t.Response.S)},
	); err != nil {
		return nil
	}
	return h.Sum()
}

// sessionHash binds the group and the statement being proven.
func sessionHash(g *group.Parameters, public Public) *hash.Hash {
	return hash.New(g, &public)
}

// VerifyBatch verifies each transcript, in parallel if pl is not nil.
//
// The i-th result is the outcome of transcripts[i].Verify(g).
func VerifyBatch(pl *pool.Pool, g *group.Parameters, transcripts []*Transcript) []bool {
	results := pl.Parallelize(len(transcripts), func(i int) interface{} {
		return transcripts[i].Verify(g)
	})
	out := make([]bool, len(results))
	for i, r := range results {
		out[i] = r.(bool)
	}
	return out
}
