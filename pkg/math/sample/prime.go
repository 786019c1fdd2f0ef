package sample

import (
	"io"
	"math"
	"math/big"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/pkg/pool"
)

// primes generates an array containing all the odd prime numbers < below
func primes(below uint32) []uint32 {
	sieve := make([]bool, below)
	for i := 2; i < len(sieve); i++ {
		sieve[i] = true
	}
	for p := 2; p*p < len(sieve); p++ {
		if !sieve[p] {
			continue
		}
		for i := p << 1; i < len(sieve); i += p {
			sieve[i] = false
		}
	}
	// there are approximately N / log N primes below N
	nF := float64(below)
	out := make([]uint32, 0, int(nF/math.Log(nF)))
	for p := uint32(3); p < below; p++ {
		if sieve[p] {
			out = append(out, p)
		}
	}
	return out
}

// The number of numbers to check after our initial prime guess
const sieveSize = 1 << 18

// The upper bound on the prime numbers used for sieving
const primeBound = 1 << 20

// MinSafePrimeBits is the smallest size accepted by SafePrime.
// Below it, the sieve could eliminate the candidates themselves.
const MinSafePrimeBits = 32

// the number of Miller-Rabin iterations used to check q
const safePrimalityIterations = 20

var (
	thePrimes  []uint32
	initPrimes sync.Once
)

var sievePool = sync.Pool{
	New: func() interface{} {
		sieve := make([]bool, sieveSize)
		return &sieve
	},
}

// trySafePrime looks for a safe prime of exactly bits bits in a window after a random
// starting point, and returns nil if the window contains none.
func trySafePrime(rand io.Reader, bits int) *saferith.Nat {
	initPrimes.Do(func() {
		thePrimes = primes(primeBound)
	})

	bytes := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, bytes); err != nil {
		return nil
	}
	excess := uint(len(bytes)*8 - bits)
	bytes[0] &= 0xff >> excess
	// set the top two bits, so that p has exactly bits bits
	bytes[0] |= 0xC0 >> excess
	// p = 2q + 1 with q odd implies p = 3 mod 4
	bytes[len(bytes)-1] |= 3
	base := new(big.Int).SetBytes(bytes)

	// sieve[i] tracks the candidacy of base + i
	sievePtr := sievePool.Get().(*[]bool)
	sieve := *sievePtr
	defer sievePool.Put(sievePtr)
	for i := 0; i < len(sieve); i++ {
		sieve[i] = true
	}
	for i := 1; i+2 < len(sieve); i += 4 {
		sieve[i] = false
		sieve[i+1] = false
		sieve[i+2] = false
	}
	remainder := new(big.Int)
	for _, prime := range thePrimes {
		// x = 0 mod r means x isn't prime, and x = 1 mod r means (x - 1) / 2 isn't.
		remainder.SetUint64(uint64(prime))
		remainder.Mod(base, remainder)
		r := int(remainder.Uint64())
		primeInt := int(prime)
		firstMultiple := primeInt - r
		if r == 0 {
			firstMultiple = 0
		}
		for i := firstMultiple; i+1 < len(sieve); i += primeInt {
			sieve[i] = false
			sieve[i+1] = false
		}
	}

	p := new(big.Int)
	q := new(big.Int)
	for delta := 0; delta < len(sieve); delta++ {
		if !sieve[delta] {
			continue
		}
		p.SetUint64(uint64(delta))
		p.Add(p, base)
		if p.BitLen() > bits {
			return nil
		}
		// q = (p - 1) / 2 is the check most likely to fail
		q.Rsh(p, 1)
		if !q.ProbablyPrime(safePrimalityIterations) {
			continue
		}
		// a single iteration suffices once q is prime
		if !p.ProbablyPrime(0) {
			continue
		}
		return new(saferith.Nat).SetBig(p, bits)
	}
	return nil
}

// SafePrime returns a prime p of exactly bits bits such that (p - 1) / 2 is also prime.
//
// The search runs on every worker of pl, or on the current thread if pl is nil.
// bits must be at least MinSafePrimeBits.
func SafePrime(rand io.Reader, pl *pool.Pool, bits int) *saferith.Nat {
	if bits < MinSafePrimeBits {
		panic("sample.SafePrime: bits is too small")
	}
	reader := pool.NewLockedReader(rand)
	results := pl.Search(1, func() interface{} {
		p := trySafePrime(reader, bits)
		// a nil *saferith.Nat is not a nil interface{}
		if p == nil {
			return nil
		}
		return p
	})
	return results[0].(*saferith.Nat)
}
