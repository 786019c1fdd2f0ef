package hash

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_WriteAny(t *testing.T) {
	var err error

	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			err = h.WriteAny(v)
			if err != nil {
				return err
			}
		}
		return nil
	}

	assert.NoError(t, testFunc(new(saferith.Nat).SetUint64(35)))
	assert.NoError(t, testFunc(saferith.ModulusFromUint64(23)))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc(&BytesWithDomain{TheDomain: "test", Bytes: []byte{1}}))

	var i *saferith.Nat
	assert.Error(t, testFunc(i))
	assert.Error(t, testFunc(35))

	assert.NoError(t, testFunc(new(saferith.Nat).SetUint64(35), []byte{1, 4, 6}))
}

func TestHash_DomainSeparation(t *testing.T) {
	h1 := New()
	require.NoError(t, h1.WriteAny([]byte{1, 2}, []byte{3}))
	h2 := New()
	require.NoError(t, h2.WriteAny([]byte{1}, []byte{2, 3}))
	assert.False(t, bytes.Equal(h1.Sum(), h2.Sum()), "splitting the same bytes differently should change the digest")

	h3 := New()
	require.NoError(t, h3.WriteAny(&BytesWithDomain{TheDomain: "a", Bytes: []byte{1}}))
	h4 := New()
	require.NoError(t, h4.WriteAny(&BytesWithDomain{TheDomain: "b", Bytes: []byte{1}}))
	assert.False(t, bytes.Equal(h3.Sum(), h4.Sum()), "domains should separate equal data")
}

func TestHash_Clone(t *testing.T) {
	h := New()
	require.NoError(t, h.WriteAny([]byte("session")))
	c := h.Clone()
	assert.Equal(t, h.Sum(), c.Sum())
	require.NoError(t, c.WriteAny([]byte("more")))
	assert.NotEqual(t, h.Sum(), c.Sum())
}

func TestHash_Commit(t *testing.T) {
	h := New()
	x := new(saferith.Nat).SetUint64(4)
	c, d, err := h.Commit(rand.Reader, x)
	require.NoError(t, err)
	assert.NoError(t, c.Validate())
	assert.NoError(t, d.Validate())

	assert.True(t, h.Decommit(c, d, x))
	assert.False(t, h.Decommit(c, d, new(saferith.Nat).SetUint64(5)), "different data should not decommit")

	d[0] ^= 1
	assert.False(t, h.Decommit(c, d, x), "tampered decommitment should fail")
	assert.False(t, h.Decommit(c[:10], d, x), "short commitment should fail")
}

func TestHash_Commit_Source(t *testing.T) {
	h := New()
	x := new(saferith.Nat).SetUint64(4)
	seed := bytes.Repeat([]byte{7}, 32)

	c1, d1, err := h.Commit(bytes.NewReader(seed), x)
	require.NoError(t, err)
	c2, d2, err := h.Commit(bytes.NewReader(seed), x)
	require.NoError(t, err)
	assert.Equal(t, seed, []byte(d1))
	assert.Equal(t, d1, d2)
	assert.Equal(t, c1, c2)
	assert.True(t, h.Decommit(c1, d1, x))

	_, _, err = h.Commit(bytes.NewReader(seed[:16]), x)
	assert.Error(t, err, "a short source should fail")
}
