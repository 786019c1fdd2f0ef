package curve

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marshalTester struct {
	S *MarshallableScalar
	P *MarshallablePoint
}

func TestMarshall(t *testing.T) {
	s := marshalTester{
		S: NewMarshallableScalar(Secp256k1{}.NewScalar().SetNat(new(saferith.Nat).SetUint64(0xED))),
		P: NewMarshallablePoint(Secp256k1{}.NewBasePoint()),
	}
	data, err := cbor.Marshal(s)
	require.NoError(t, err)
	var s2 marshalTester
	err = cbor.Unmarshal(data, &s2)
	require.NoError(t, err)
	assert.True(t, s.S.Scalar.Equal(s2.S.Scalar))
	assert.True(t, s.P.Point.Equal(s2.P.Point))
}

func TestMarshallIdentity(t *testing.T) {
	id := Secp256k1{}.NewPoint()
	data, err := id.MarshalBinary()
	require.NoError(t, err)
	p := Secp256k1{}.NewBasePoint()
	require.NoError(t, p.UnmarshalBinary(data))
	assert.True(t, p.IsIdentity())
}

func TestBasePoint(t *testing.T) {
	group := Secp256k1{}
	g := group.NewBasePoint()
	two := group.NewScalar().SetNat(new(saferith.Nat).SetUint64(2))
	assert.True(t, g.Add(g).Equal(two.ActOnBase()))
	assert.True(t, two.Act(g).Equal(two.ActOnBase()))
}

func TestPoint_Negate(t *testing.T) {
	g := Secp256k1{}.NewBasePoint()
	assert.True(t, g.Add(g.Negate()).IsIdentity())
	assert.True(t, g.Sub(g).IsIdentity())
	assert.False(t, g.IsIdentity())
}

func TestScalar_Arithmetic(t *testing.T) {
	group := Secp256k1{}
	a := group.NewScalar().SetNat(new(saferith.Nat).SetUint64(7))
	b := group.NewScalar().SetNat(new(saferith.Nat).SetUint64(4))
	c := group.NewScalar().Set(a).Sub(b)
	assert.True(t, c.Equal(group.NewScalar().SetNat(new(saferith.Nat).SetUint64(3))))

	// 4 - 7 = -3
	d := group.NewScalar().Set(b).Sub(a)
	assert.True(t, d.Add(c).IsZero())

	// the order reduces to zero
	assert.True(t, group.NewScalar().SetNat(group.Order().Nat()).IsZero())
}
