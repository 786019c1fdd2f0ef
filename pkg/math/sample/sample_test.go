package sample

import (
	"bytes"
	"crypto/rand"
	"errors"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/curve"
	"github.com/taurusgroup/chaum-pedersen/pkg/pool"
)

func TestModN(t *testing.T) {
	n := saferith.ModulusFromUint64(3 * 11 * 65519)
	x := ModN(rand.Reader, n)
	_, _, lt := x.CmpMod(n)
	if lt != 1 {
		t.Errorf("ModN generated a number >= %v: %v", x, n)
	}
}

func TestModN_Small(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	n := saferith.ModulusFromUint64(11)
	counts := make([]int, 11)
	for i := 0; i < 11000; i++ {
		x := ModN(r, n).Big().Uint64()
		if !assert.Less(t, x, uint64(11)) {
			return
		}
		counts[x]++
	}
	// each value should show up, roughly 1000 times
	for v, c := range counts {
		assert.Greater(t, c, 800, "value %d is under-represented", v)
		assert.Less(t, c, 1200, "value %d is over-represented", v)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestModN_FailingReader(t *testing.T) {
	n := saferith.ModulusFromUint64(11)
	assert.PanicsWithValue(t, ErrMaxIterations, func() { ModN(failingReader{}, n) })
}

func TestModN_Deterministic(t *testing.T) {
	n := saferith.ModulusFromUint64(65519)
	seed := bytes.Repeat([]byte{0x42, 0x17}, 64)
	a := ModN(bytes.NewReader(seed), n)
	b := ModN(bytes.NewReader(seed), n)
	assert.True(t, a.Eq(b) == 1, "the same randomness should give the same sample")
}

func TestScalarPointPair(t *testing.T) {
	group := curve.Secp256k1{}
	x, X := ScalarPointPair(rand.Reader, group)
	assert.True(t, x.ActOnBase().Equal(X))
}

const safePrimeProbabilityIterations = 20

func TestSafePrime(t *testing.T) {
	pl := pool.NewPool(0)
	defer pl.TearDown()
	for _, tt := range []struct {
		pl   *pool.Pool
		bits int
	}{{nil, 64}, {pl, 128}, {pl, 130}} {
		p := SafePrime(rand.Reader, tt.pl, tt.bits).Big()
		assert.Equal(t, tt.bits, p.BitLen())
		if !p.ProbablyPrime(safePrimeProbabilityIterations) {
			t.Error("SafePrime generated a non prime number: ", p)
		}
		q := new(big.Int).Rsh(p, 1)
		if !q.ProbablyPrime(safePrimeProbabilityIterations) {
			t.Error("p isn't safe because (p - 1) / 2 isn't prime", q)
		}
	}
	assert.Panics(t, func() { SafePrime(rand.Reader, nil, MinSafePrimeBits-1) })
}

func TestPrimes(t *testing.T) {
	assert.Equal(t, []uint32{3, 5, 7, 11, 13, 17, 19, 23, 29}, primes(30))
}

// This exists to save the results of functions we want to benchmark, to avoid
// having them optimized away.
var resultNat *saferith.Nat

func BenchmarkModN(b *testing.B) {
	b.StopTimer()
	nBytes := make([]byte, 20)
	_, _ = rand.Read(nBytes)
	nBytes[0] |= 0x80
	n := saferith.ModulusFromBytes(nBytes)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		resultNat = ModN(rand.Reader, n)
	}
}

func BenchmarkSafePrime(b *testing.B) {
	for i := 0; i < b.N; i++ {
		resultNat = SafePrime(rand.Reader, nil, 256)
	}
}
