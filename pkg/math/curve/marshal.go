package curve

import (
	"github.com/fxamacker/cbor/v2"
)

// MarshallableScalar wraps a Scalar so that it can be encoded with cbor.
//
// Decoding requires the Scalar field to be initialized with a value of the right curve.
type MarshallableScalar struct {
	Scalar Scalar
}

func NewMarshallableScalar(s Scalar) *MarshallableScalar {
	return &MarshallableScalar{Scalar: s}
}

func (m *MarshallableScalar) MarshalCBOR() ([]byte, error) {
	data, err := m.Scalar.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(data)
}

func (m *MarshallableScalar) UnmarshalCBOR(data []byte) error {
	var bytes []byte
	if err := cbor.Unmarshal(data, &bytes); err != nil {
		return err
	}
	if m.Scalar == nil {
		m.Scalar = Secp256k1{}.NewScalar()
	}
	return m.Scalar.UnmarshalBinary(bytes)
}

// MarshallablePoint wraps a Point so that it can be encoded with cbor.
type MarshallablePoint struct {
	Point Point
}

func NewMarshallablePoint(p Point) *MarshallablePoint {
	return &MarshallablePoint{Point: p}
}

func (m *MarshallablePoint) MarshalCBOR() ([]byte, error) {
	data, err := m.Point.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(data)
}

func (m *MarshallablePoint) UnmarshalCBOR(data []byte) error {
	var bytes []byte
	if err := cbor.Unmarshal(data, &bytes); err != nil {
		return err
	}
	if m.Point == nil {
		m.Point = Secp256k1{}.NewPoint()
	}
	return m.Point.UnmarshalBinary(bytes)
}
