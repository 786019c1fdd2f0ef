package group

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
)

type parametersMarshal struct {
	P, Q        []byte
	Alpha, Beta []byte
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (g *Parameters) MarshalBinary() ([]byte, error) {
	if g == nil || g.p == nil || g.q == nil || g.alpha == nil || g.beta == nil {
		return nil, ErrNilFields
	}
	return cbor.Marshal(&parametersMarshal{
		P:     g.P().Bytes(),
		Q:     g.q.Bytes(),
		Alpha: g.alpha.Bytes(),
		Beta:  g.beta.Bytes(),
	})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The decoded parameters are not validated.
func (g *Parameters) UnmarshalBinary(data []byte) error {
	var pm parametersMarshal
	if err := cbor.Unmarshal(data, &pm); err != nil {
		return fmt.Errorf("group: failed to unmarshal parameters: %w", err)
	}
	if len(pm.P) == 0 || len(pm.Q) == 0 || len(pm.Alpha) == 0 || len(pm.Beta) == 0 {
		return ErrNilFields
	}
	decoded, err := fromNats(
		new(saferith.Nat).SetBytes(pm.P),
		new(saferith.Nat).SetBytes(pm.Q),
		new(saferith.Nat).SetBytes(pm.Alpha),
		new(saferith.Nat).SetBytes(pm.Beta),
	)
	if err != nil {
		return err
	}
	*g = *decoded
	return nil
}

// fromNats builds parameters from decoded values, rejecting moduli which saferith cannot represent.
func fromNats(p, q, alpha, beta *saferith.Nat) (*Parameters, error) {
	if p.EqZero() == 1 || q.EqZero() == 1 {
		return nil, ErrZeroModulus
	}
	return New(saferith.ModulusFromNat(p), saferith.ModulusFromNat(q), alpha, beta), nil
}
