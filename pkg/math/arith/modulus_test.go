package arith

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func natFromHex(t testing.TB, s string) *saferith.Nat {
	n, err := new(saferith.Nat).SetHex(s)
	require.NoError(t, err)
	return n
}

func TestExp_Toy(t *testing.T) {
	p := saferith.ModulusFromUint64(23)
	cases := []struct {
		base, exp, want uint64
	}{
		{4, 6, 2},
		{9, 6, 3},
		{4, 7, 8},
		{9, 7, 4},
		{4, 0, 1},
		{4, 11, 1},
		// base larger than the modulus is reduced first
		{27, 6, 2},
	}
	for _, c := range cases {
		got := Exp(new(saferith.Nat).SetUint64(c.base), new(saferith.Nat).SetUint64(c.exp), p)
		assert.Equal(t, c.want, got.Big().Uint64(), "%d^%d mod 23", c.base, c.exp)
	}
}

func TestExp_MatchesBig(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	pNat := natFromHex(t, pHex)
	p := saferith.ModulusFromNat(pNat)
	buf := make([]byte, 128)
	for i := 0; i < 20; i++ {
		r.Read(buf)
		x := new(saferith.Nat).SetBytes(buf)
		r.Read(buf[:20])
		e := new(saferith.Nat).SetBytes(buf[:20])

		want := new(big.Int).Exp(x.Big(), e.Big(), pNat.Big())
		got := Exp(x, e, p)
		assert.Equal(t, 0, want.Cmp(got.Big()), "exponentiation should agree with math/big")
	}
}

func TestExp_Deterministic(t *testing.T) {
	p := ModulusFromN(saferith.ModulusFromNat(natFromHex(t, pHex)))
	x := natFromHex(t, "A4D1CBD5C3FD3412")
	e := natFromHex(t, "F518AA8781A8DF27")
	assert.True(t, p.Exp(x, e).Eq(p.Exp(x, e)) == 1)
}

func TestModulus_ExpMul(t *testing.T) {
	p := ModulusFromN(saferith.ModulusFromUint64(23))
	// 4⁵ ⋅ 2⁴ = 1024 ⋅ 16 ≡ 12 ⋅ 16 ≡ 8 (mod 23)
	got := p.ExpMul(
		new(saferith.Nat).SetUint64(4), new(saferith.Nat).SetUint64(5),
		new(saferith.Nat).SetUint64(2), new(saferith.Nat).SetUint64(4))
	assert.Equal(t, uint64(8), got.Big().Uint64())
}

func TestModSub(t *testing.T) {
	q := saferith.ModulusFromUint64(11)
	r := mrand.New(mrand.NewSource(1))
	for i := 0; i < 200; i++ {
		x, y := r.Uint64()%1000, r.Uint64()%1000
		got := ModSub(new(saferith.Nat).SetUint64(x), new(saferith.Nat).SetUint64(y), q)
		want := new(big.Int).Sub(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
		want.Mod(want, big.NewInt(11))
		assert.Equal(t, want.Uint64(), got.Big().Uint64(), "%d - %d mod 11", x, y)
	}
}

func TestIsValidNatModN(t *testing.T) {
	n := saferith.ModulusFromUint64(23)
	assert.True(t, IsValidNatModN(n, new(saferith.Nat).SetUint64(1), new(saferith.Nat).SetUint64(22)))
	assert.False(t, IsValidNatModN(n, new(saferith.Nat).SetUint64(0)))
	assert.False(t, IsValidNatModN(n, new(saferith.Nat).SetUint64(23)))
	assert.False(t, IsValidNatModN(n, nil))
	assert.True(t, IsInRange(n, new(saferith.Nat).SetUint64(0)))
}

func TestModulus_Equal(t *testing.T) {
	a := ModulusFromN(saferith.ModulusFromUint64(23))
	b := ModulusFromN(saferith.ModulusFromUint64(23))
	c := ModulusFromN(saferith.ModulusFromUint64(29))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func BenchmarkExp(b *testing.B) {
	r := mrand.New(mrand.NewSource(0))
	p := ModulusFromN(saferith.ModulusFromNat(natFromHex(b, pHex)))
	buf := make([]byte, 20)
	x := natFromHex(b, "A4D1CBD5C3FD34126765A442EFB99905F8104DD258AC507FD6406CFF14266D31")
	e := new(saferith.Nat)
	for i := 0; i < b.N; i++ {
		r.Read(buf)
		e.SetBytes(buf)
		p.Exp(x, e)
	}
}

const pHex = "B10B8F96A080E01DDE92DE5EAE5D54EC52C99FBCFB06A3C69A6A9DCA52D23B616073E28675A23D189838EF1E2EE652C013ECB4AEA906112324975C3CD49B83BFACCBDD7D90C4BD7098488E9C219A73724EFFD6FAE5644738FAA31A4FF55BCCC0A151AF5F0DC8B4BD45BF37DF365C1A65E68CFDA76D4DA708DF1FB2BC2E4A4371"
