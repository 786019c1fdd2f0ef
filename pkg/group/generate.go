package group

import (
	"errors"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/internal/params"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/arith"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/sample"
	"github.com/taurusgroup/chaum-pedersen/pkg/pool"
)

// MinGenerateBits is the smallest modulus accepted by Generate.
const MinGenerateBits = 64

var ErrBitsTooSmall = errors.New("group: modulus size is too small")

// Generate returns fresh parameters where p = 2q + 1 is a safe prime of the given size.
//
// α = h² (mod p) for a random h, which generates the subgroup of quadratic residues of order q,
// and β = αᵉ for a random e ∉ {0, 1}, so that nobody learns log_α(β).
// The expensive prime search runs on pl.
func Generate(rand io.Reader, pl *pool.Pool, bits int) (*Parameters, error) {
	if bits < MinGenerateBits {
		return nil, ErrBitsTooSmall
	}
	pNat := sample.SafePrime(rand, pl, bits)
	qBig := new(big.Int).Rsh(pNat.Big(), 1)
	p := saferith.ModulusFromNat(pNat)
	q := saferith.ModulusFromNat(new(saferith.Nat).SetBig(qBig, qBig.BitLen()))

	var alpha *saferith.Nat
	for i := 0; ; i++ {
		if i == params.MaxSampleIterations {
			return nil, sample.ErrMaxIterations
		}
		h := sample.ModN(rand, p)
		alpha = new(saferith.Nat).ModMul(h, h, p)
		// h² has order q, unless h = 0 or h = ±1
		if alpha.EqZero() != 1 && !arith.IsOne(alpha) {
			break
		}
	}

	for i := 0; i < params.MaxSampleIterations; i++ {
		beta, err := DeriveBeta(p, q, alpha, sample.ModN(rand, q))
		if errors.Is(err, ErrDegenerateExponent) {
			continue
		}
		if err != nil {
			return nil, err
		}
		g := New(p, q, alpha, beta)
		if err = g.Validate(); err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, sample.ErrMaxIterations
}
