package zkdleq

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/curve"
)

var ErrNilValue = errors.New("zkdleq: transcript contains a nil value")

// Transcript holds every value exchanged during one session.
type Transcript struct {
	Public     Public
	Commitment *Commitment
	Challenge  curve.Scalar
	Response   *Response
}

// Verify returns true if the transcript is an accepting conversation for the bases.
func (t *Transcript) Verify(b *Bases) bool {
	if t == nil {
		return false
	}
	return t.Public.Verify(b, t.Commitment, t.Challenge, t.Response)
}

type transcriptMarshal struct {
	Y1, Y2, R1, R2 *curve.MarshallablePoint
	C, S           *curve.MarshallableScalar
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Transcript) MarshalBinary() ([]byte, error) {
	if t == nil || t.Commitment == nil || t.Response == nil {
		return nil, ErrNilValue
	}
	if t.Public.Y1 == nil || t.Public.Y2 == nil || t.Commitment.R1 == nil || t.Commitment.R2 == nil ||
		t.Challenge == nil || t.Response.S == nil {
		return nil, ErrNilValue
	}
	return cbor.Marshal(&transcriptMarshal{
		Y1: curve.NewMarshallablePoint(t.Public.Y1),
		Y2: curve.NewMarshallablePoint(t.Public.Y2),
		R1: curve.NewMarshallablePoint(t.Commitment.R1),
		R2: curve.NewMarshallablePoint(t.Commitment.R2),
		C:  curve.NewMarshallableScalar(t.Challenge),
		S:  curve.NewMarshallableScalar(t.Response.S),
	})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Transcript) UnmarshalBinary(data []byte) error {
	var tm transcriptMarshal
	if err := cbor.Unmarshal(data, &tm); err != nil {
		return fmt.Errorf("zkdleq: failed to unmarshal transcript: %w", err)
	}
	if tm.Y1 == nil || tm.Y2 == nil || tm.R1 == nil || tm.R2 == nil || tm.C == nil || tm.S == nil {
		return ErrNilValue
	}
	*t = Transcript{
		Public:     Public{Y1: tm.Y1.Point, Y2: tm.Y2.Point},
		Commitment: &Commitment{R1: tm.R1.Point, R2: tm.R2.Point},
		Challenge:  tm.C.Scalar,
		Response:   &Response{S: tm.S.Scalar},
	}
	return nil
}

// Run executes a complete local session proving knowledge of private.X.
func Run(rand io.Reader, b *Bases, private Private) (*Transcript, bool) {
	public := NewPublic(b, private)
	k := NewNonce(rand, b)
	commitment := Commit(b, k)
	c := NewChallenge(rand, b)
	response := Respond(k, c, private.X)
	transcript := &Transcript{
		Public:     public,
		Commitment: commitment,
		Challenge:  c,
		Response:   response,
	}
	return transcript, transcript.Verify(b)
}
