package zkcp

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
)

// natBytes returns the minimal big-endian encoding of x, so that equal values
// encode identically whatever their announced length.
func natBytes(x *saferith.Nat) []byte {
	return x.Big().Bytes()
}

func natFromBytes(b []byte) *saferith.Nat {
	return new(saferith.Nat).SetBytes(b)
}

// writeNats writes each value as a 2 byte length followed by its minimal big-endian encoding.
func writeNats(w io.Writer, xs ...*saferith.Nat) (int64, error) {
	nAll := int64(0)
	var length [2]byte
	for _, x := range xs {
		if x == nil {
			return nAll, io.ErrUnexpectedEOF
		}
		b := natBytes(x)
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

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (public *Public) WriteTo(w io.Writer) (int64, error) {
	return writeNats(w, public.Y1, public.Y2)
}

// Domain implements hash.WriterToWithDomain.
func (*Public) Domain() string {
	return "Chaum-Pedersen Public"
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (c *Commitment) WriteTo(w io.Writer) (int64, error) {
	return writeNats(w, c.R1, c.R2)
}

// Domain implements hash.WriterToWithDomain.
func (*Commitment) Domain() string {
	return "Chaum-Pedersen Commitment"
}

type (
	publicMarshal struct {
		Y1, Y2 []byte
	}
	commitmentMarshal struct {
		R1, R2 []byte
	}
	responseMarshal struct {
		S []byte
	}
	transcriptMarshal struct {
		Public     publicMarshal
		Commitment commitmentMarshal
		Challenge  []byte
		Response   responseMarshal
	}
)

func (public Public) marshal() (publicMarshal, error) {
	if public.Y1 == nil || public.Y2 == nil {
		return publicMarshal{}, ErrNilValue
	}
	return publicMarshal{Y1: natBytes(public.Y1), Y2: natBytes(public.Y2)}, nil
}

// Missing fields decode to 0, which verification rejects.
func (pm publicMarshal) unmarshal() Public {
	return Public{Y1: natFromBytes(pm.Y1), Y2: natFromBytes(pm.Y2)}
}

func (c *Commitment) marshal() (commitmentMarshal, error) {
	if c == nil || c.R1 == nil || c.R2 == nil {
		return commitmentMarshal{}, ErrNilValue
	}
	return commitmentMarshal{R1: natBytes(c.R1), R2: natBytes(c.R2)}, nil
}

func (cm commitmentMarshal) unmarshal() *Commitment {
	return &Commitment{R1: natFromBytes(cm.R1), R2: natFromBytes(cm.R2)}
}

func (r *Response) marshal() (responseMarshal, error) {
	if r == nil || r.S == nil {
		return responseMarshal{}, ErrNilValue
	}
	return responseMarshal{S: natBytes(r.S)}, nil
}

func (rm responseMarshal) unmarshal() *Response {
	return &Response{S: natFromBytes(rm.S)}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (public Public) MarshalBinary() ([]byte, error) {
	pm, err := public.marshal()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&pm)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (public *Public) UnmarshalBinary(data []byte) error {
	var pm publicMarshal
	if err := cbor.Unmarshal(data, &pm); err != nil {
		return fmt.Errorf("zkcp: failed to unmarshal public: %w", err)
	}
	*public = pm.unmarshal()
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Commitment) MarshalBinary() ([]byte, error) {
	cm, err := c.marshal()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&cm)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *Commitment) UnmarshalBinary(data []byte) error {
	var cm commitmentMarshal
	if err := cbor.Unmarshal(data, &cm); err != nil {
		return fmt.Errorf("zkcp: failed to unmarshal commitment: %w", err)
	}
	*c = *cm.unmarshal()
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *Response) MarshalBinary() ([]byte, error) {
	rm, err := r.marshal()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&rm)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Response) UnmarshalBinary(data []byte) error {
	var rm responseMarshal
	if err := cbor.Unmarshal(data, &rm); err != nil {
		return fmt.Errorf("zkcp: failed to unmarshal response: %w", err)
	}
	*r = *rm.unmarshal()
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Transcript) MarshalBinary() ([]byte, error) {
	if t == nil || t.Challenge == nil {
		return nil, ErrNilValue
	}
	pm, err := t.Public.marshal()
	if err != nil {
		return nil, err
	}
	cm, err := t.Commitment.marshal()
	if err != nil {
		return nil, err
	}
	rm, err := t.Response.marshal()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&transcriptMarshal{
		Public:     pm,
		Commitment: cm,
		Challenge:  natBytes(t.Challenge),
		Response:   rm,
	})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Transcript) UnmarshalBinary(data []byte) error {
	var tm transcriptMarshal
	if err := cbor.Unmarshal(data, &tm); err != nil {
		return fmt.Errorf("zkcp: failed to unmarshal transcript: %w", err)
	}
	*t = Transcript{
		Public:     tm.Public.unmarshal(),
		Commitment: tm.Commitment.unmarshal(),
		Challenge:  natFromBytes(tm.Challenge),
		Response:   tm.Response.unmarshal(),
	}
	return nil
}
