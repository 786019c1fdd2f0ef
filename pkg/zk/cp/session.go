package zkcp

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/hash"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
)

// Prover drives the prover's side of a single session:
//
//	PhaseUninitiated → PhaseCommitted → PhaseChallenged → PhaseResponded
//
// Calling a method out of order returns ErrWrongPhase.
// The secret and the nonce never leave the Prover.
//
// A Prover must not be shared between goroutines; concurrent sessions each use their own.
type Prover struct {
	group   *group.Parameters
	rand    io.Reader
	private Private
	public  Public

	phase      Phase
	k          *saferith.Nat
	commitment *Commitment
	challenge  *saferith.Nat
	response   *Response

	// set if the verifier committed to its challenge before the session started
	challengeCommitment hash.Commitment
}

// NewProver starts a session proving knowledge of private.X.
//
// rand is used to sample the nonce, and must be cryptographically secure.
func NewProver(rand io.Reader, g *group.Parameters, private Private) *Prover {
	return NewProverWithPublic(rand, g, private, NewPublic(g, private))
}

// NewProverWithPublic is like NewProver, but reuses public values computed earlier for the same secret.
func NewProverWithPublic(rand io.Reader, g *group.Parameters, private Private, public Public) *Prover {
	return &Prover{
		group:   g,
		rand:    rand,
		private: private,
		public:  public,
	}
}

// Public returns y₁, y₂, which the verifier needs to know.
func (p *Prover) Public() Public { return p.public }

// Phase returns the current phase of the session.
func (p *Prover) Phase() Phase { return p.phase }

// ExpectChallenge records the verifier's commitment to its challenge.
//
// It must be called before Commit, and makes ReceiveChallenge reject any challenge
// which does not open the commitment.
func (p *Prover) ExpectChallenge(c hash.Commitment) error {
	if p.phase != PhaseUninitiated || p.challengeCommitment != nil {
		return wrongPhase("ExpectChallenge", p.phase)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("zkcp: %w", err)
	}
	p.challengeCommitment = c
	return nil
}

// Commit samples a fresh nonce k and returns r₁ = αᵏ, r₂ = βᵏ.
func (p *Prover) Commit() (*Commitment, error) {
	if p.phase != PhaseUninitiated {
		return nil, wrongPhase("Commit", p.phase)
	}
	p.k = NewNonce(p.rand, p.group)
	p.commitment = Commit(p.group, p.k)
	p.phase = PhaseCommitted
	return p.commitment, nil
}

// ReceiveChallenge stores the verifier's challenge c.
//
// If ExpectChallenge was called, d must open the commitment to c, otherwise d is ignored.
func (p *Prover) ReceiveChallenge(c *saferith.Nat, d hash.Decommitment) error {
	if p.phase != PhaseCommitted {
		return wrongPhase("ReceiveChallenge", p.phase)
	}
	if c == nil {
		return ErrNilValue
	}
	if !arith.IsInRange(p.group.Q(), c) {
		return ErrChallengeRange
	}
	if p.challengeCommitment != nil {
		if !sessionHash(p.group, p.public).Decommit(p.challengeCommitment, d, challengeData(c)) {
			return ErrChallengeMismatch
		}
	}
	p.challenge = c
	p.phase = PhaseChallenged
	return nil
}

// Respond returns s = k - c⋅x (mod q).
//
// The nonce is erased afterwards, so that the commitment can never answer a second challenge.
func (p *Prover) Respond() (*Response, error) {
	if p.phase != PhaseChallenged {
		return nil, wrongPhase("Respond", p.phase)
	}
	p.response = Respond(p.group, p.k, p.challenge, p.private.X)
	p.k.SetUint64(0)
	p.k = nil
	p.phase = PhaseResponded
	return p.response, nil
}

// Transcript returns the messages of a completed session.
func (p *Prover) Transcript() (*Transcript, error) {
	if p.phase != PhaseResponded {
		return nil, wrongPhase("Transcript", p.phase)
	}
	return &Transcript{
		Public:     p.public,
		Commitment: p.commitment,
		Challenge:  p.challenge,
		Response:   p.response,
	}, nil
}

// Verifier drives the verifier's side of a single session:
//
//	PhaseUninitiated → PhaseCommitted → PhaseChallenged → PhaseVerified
//
// Calling a method out of order returns ErrWrongPhase.
type Verifier struct {
	group  *group.Parameters
	rand   io.Reader
	public Public

	phase        Phase
	commitment   *Commitment
	challenge    *saferith.Nat
	decommitment hash.Decommitment
	response     *Response
	accepted     bool
}

// NewVerifier starts a session checking a proof for the public values y₁, y₂.
//
// rand is used to sample the challenge, and must be unpredictable to the prover.
func NewVerifier(rand io.Reader, g *group.Parameters, public Public) *Verifier {
	return &Verifier{
		group:  g,
		rand:   rand,
		public: public,
	}
}

// Phase returns the current phase of the session.
func (v *Verifier) Phase() Phase { return v.phase }

// CommitChallenge samples the challenge before the prover commits, and returns a commitment to it.
//
// The commitment is sent to the prover, who will only accept the challenge which opens it.
// This is optional; without it the challenge is sampled in Challenge.
func (v *Verifier) CommitChallenge() (hash.Commitment, error) {
	if v.phase != PhaseUninitiated || v.challenge != nil {
		return nil, wrongPhase("CommitChallenge", v.phase)
	}
	c := NewChallenge(v.rand, v.group)
	commitment, decommitment, err := sessionHash(v.group, v.public).Commit(v.rand, challengeData(c))
	if err != nil {
		return nil, fmt.Errorf("zkcp: failed to commit to challenge: %w", err)
	}
	v.challenge = c
	v.decommitment = decommitment
	return commitment, nil
}

// ReceiveCommitment stores the prover's first message r₁, r₂.
func (v *Verifier) ReceiveCommitment(commitment *Commitment) error {
	if v.phase != PhaseUninitiated {
		return wrongPhase("ReceiveCommitment", v.phase)
	}
	if commitment == nil || commitment.R1 == nil || commitment.R2 == nil {
		return ErrNilValue
	}
	v.commitment = commitment
	v.phase = PhaseCommitted
	return nil
}

// Challenge returns the challenge c for the prover, and the decommitment opening
// the commitment returned by CommitChallenge, if it was called.
func (v *Verifier) Challenge() (*saferith.Nat, hash.Decommitment, error) {
	if v.phase != PhaseCommitted {
		return nil, nil, wrongPhase("Challenge", v.phase)
	}
	if v.challenge == nil {
		v.challenge = NewChallenge(v.rand, v.group)
	}
	v.phase = PhaseChallenged
	return v.challenge, v.decommitment, nil
}

// Verify checks the prover's response, and returns whether the proof is accepted.
//
// A rejected proof is not an error; errors are only returned for misuse or malformed messages.
func (v *Verifier) Verify(response *Response) (bool, error) {
	if v.phase != PhaseChallenged {
		return false, wrongPhase("Verify", v.phase)
	}
	if response == nil || response.S == nil {
		return false, ErrNilValue
	}
	v.response = response
	v.accepted = v.public.Verify(v.group, v.commitment, v.challenge, response)
	v.phase = PhaseVerified
	return v.accepted, nil
}

// Accepted returns true if the session was verified successfully.
func (v *Verifier) Accepted() bool {
	return v.phase == PhaseVerified && v.accepted
}

// Transcript returns the messages of a verified session.
func (v *Verifier) Transcript() (*Transcript, error) {
	if v.phase != PhaseVerified {
		return nil, wrongPhase("Transcript", v.phase)
	}
	return &Transcript{
		Public:     v.public,
		Commitment: v.commitment,
		Challenge:  v.challenge,
		Response:   v.response,
	}, nil
}

func challengeData(c *saferith.Nat) *hash.BytesWithDomain {
	return &hash.BytesWithDomain{TheDomain: "Challenge", Bytes: natBytes(c)}
}

// Run executes a complete session between a local prover and verifier,
// with the verifier committing to its challenge first.
//
// It returns the verifier's transcript, and whether it accepted.
func Run(rand io.Reader, g *group.Parameters, private Private) (*Transcript, bool, error) {
	prover := NewProver(rand, g, private)
	verifier := NewVerifier(rand, g, prover.Public())

	challengeCommitment, err := verifier.CommitChallenge()
	if err != nil {
		return nil, false, err
	}
	if err = prover.ExpectChallenge(challengeCommitment); err != nil {
		return nil, false, err
	}

	commitment, err := prover.Commit()
	if err != nil {
		return nil, false, err
	}
	if err = verifier.ReceiveCommitment(commitment); err != nil {
		return nil, false, err
	}

	c, d, err := verifier.Challenge()
	if err != nil {
		return nil, false, err
	}
	if err = prover.ReceiveChallenge(c, d); err != nil {
		return nil, false, err
	}

	response, err := prover.Respond()
	if err != nil {
		return nil, false, err
	}
	accepted, err := verifier.Verify(response)
	if err != nil {
		return nil, false, err
	}

	transcript, err := verifier.Transcript()
	if err != nil {
		return nil, false, err
	}
	return transcript, accepted, nil
}
