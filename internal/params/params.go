package params

const (
	SecParam  = 256
	SecBytes  = SecParam / 8
	StatParam = 80

	// DigestLengthBytes is the length of the output of hash.Hash.Sum.
	DigestLengthBytes = SecBytes * 2 // 64

	// MaxSampleIterations bounds the number of times we retry a failing entropy source.
	MaxSampleIterations = 255

	// DeriveBytes is the minimum number of SHAKE256 output bytes reduced modulo q when deriving
	// an exponent from a label. Longer outputs are used once q exceeds 8⋅DeriveBytes - StatParam bits.
	DeriveBytes = 64

	// BitsGroupModulus is the default size of a generated safe prime.
	BitsGroupModulus = 1024
)
