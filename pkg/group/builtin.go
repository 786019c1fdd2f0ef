package group

import (
	"fmt"
	"sort"

	"github.com/cronokirby/saferith"
)

const (
	// NameToy is the textbook group p = 23, q = 11, α = 4, β = 9.
	// It offers no security and is only meant for tests and examples.
	NameToy = "toy"
	// NameRFC5114 is the 1024-bit MODP group with a 160-bit prime order subgroup
	// from RFC5114, section 2.1.
	NameRFC5114 = "rfc5114-1024-160"

	// RFC5114BetaLabel is the label from which β is derived for the RFC5114 group.
	RFC5114BetaLabel = "chaum-pedersen/rfc5114-1024-160/beta"
)

const (
	rfc5114P = "B10B8F96A080E01DDE92DE5EAE5D54EC52C99FBCFB06A3C69A6A9DCA52D23B61" +
		"6073E28675A23D189838EF1E2EE652C013ECB4AEA906112324975C3CD49B83BF" +
		"ACCBDD7D90C4BD7098488E9C219A73724EFFD6FAE5644738FAA31A4FF55BCCC0" +
		"A151AF5F0DC8B4BD45BF37DF365C1A65E68CFDA76D4DA708DF1FB2BC2E4A4371"
	rfc5114G = "A4D1CBD5C3FD34126765A442EFB99905F8104DD258AC507FD6406CFF14266D31" +
		"266FEA1E5C41564B777E690F5504F213160217B4B01B886A5E91547F9E2749F4" +
		"D7FBD7D3B9A92EE1909D0D2263F80A76A6A24C087A091F531DBF0A0169B6A28A" +
		"D662A4D18E73AFA32D779D5918D08BC8858F4DCEF97C2A24855E6EEB22B3B2E5"
	rfc5114Q = "F518AA8781A8DF278ABA4E7D64B7CB9D49462353"
)

var builtins = map[string]func() *Parameters{
	NameToy:     Toy,
	NameRFC5114: RFC5114,
}

var rfc5114 *Parameters

func init() {
	p := saferith.ModulusFromNat(mustHex(rfc5114P))
	q := saferith.ModulusFromNat(mustHex(rfc5114Q))
	alpha := mustHex(rfc5114G)
	beta, err := DeriveBetaFromLabel(p, q, alpha, RFC5114BetaLabel)
	if err != nil {
		panic(fmt.Sprintf("group: failed to derive RFC5114 beta: %v", err))
	}
	rfc5114 = New(p, q, alpha, beta)
}

func mustHex(s string) *saferith.Nat {
	n, err := new(saferith.Nat).SetHex(s)
	if err != nil {
		panic(fmt.Sprintf("group: invalid hex constant: %v", err))
	}
	return n
}

// Toy returns the group p = 23, q = 11, α = 4, β = 9.
func Toy() *Parameters {
	return New(
		saferith.ModulusFromUint64(23),
		saferith.ModulusFromUint64(11),
		new(saferith.Nat).SetUint64(4),
		new(saferith.Nat).SetUint64(9),
	)
}

// RFC5114 returns the 1024-bit MODP group with 160-bit prime order subgroup of RFC5114.
//
// α is the generator g of the RFC, and β = αᵉ where e is derived from RFC5114BetaLabel.
// The returned value is shared, which is fine since Parameters is immutable.
func RFC5114() *Parameters {
	return rfc5114
}

// ByName returns the built-in group with the given name.
func ByName(name string) (*Parameters, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	return f(), nil
}

// Names lists the names accepted by ByName.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
