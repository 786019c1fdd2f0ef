package hash

import (
	"bytes"
	"fmt"
	"io"

	"github.com/taurusgroup/chaum-pedersen/internal/params"
)

// Commitment is a digest binding a party to some values before they are revealed.
type Commitment []byte

// Decommitment is the random string which opens a Commitment together with the committed values.
type Decommitment []byte

// WriteTo implements the io.WriterTo interface for Commitment.
func (c Commitment) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c)
	return int64(n), err
}

// Domain implements WriterToWithDomain, and separates this type within hash.Hash.
func (Commitment) Domain() string {
	return "Commitment"
}

// Validate returns an error if the commitment is not exactly DigestLengthBytes long.
func (c Commitment) Validate() error {
	if l := len(c); l != DigestLengthBytes {
		return fmt.Errorf("hash: commitment has length %d, expected %d", l, DigestLengthBytes)
	}
	return nil
}

// WriteTo implements the io.WriterTo interface for Decommitment.
func (d Decommitment) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d)
	return int64(n), err
}

// Domain implements WriterToWithDomain, and separates this type within hash.Hash.
func (Decommitment) Domain() string {
	return "Decommitment"
}

// Validate returns an error if the decommitment is not exactly params.SecBytes long.
func (d Decommitment) Validate() error {
	if l := len(d); l != params.SecBytes {
		return fmt.Errorf("hash: decommitment has length %d, expected %d", l, params.SecBytes)
	}
	return nil
}

// Commit returns h(state, data..., d) for a fresh decommitment d of params.SecBytes bytes read from rand.
//
// The receiver is not modified, so the same Hash can be reused to open the commitment with Decommit.
func (hash *Hash) Commit(rand io.Reader, data ...interface{}) (Commitment, Decommitment, error) {
	decommitment := make(Decommitment, params.SecBytes)
	if _, err := io.ReadFull(rand, decommitment); err != nil {
		return nil, nil, fmt.Errorf("hash: failed to sample decommitment: %w", err)
	}
	commitment, err := hash.commitment(decommitment, data)
	if err != nil {
		return nil, nil, err
	}
	return commitment, decommitment, nil
}

// Decommit returns true if c = h(state, data..., d).
// Malformed commitments or decommitments are rejected without hashing.
func (hash *Hash) Decommit(c Commitment, d Decommitment, data ...interface{}) bool {
	if c.Validate() != nil || d.Validate() != nil {
		return false
	}
	computed, err := hash.commitment(d, data)
	if err != nil {
		return false
	}
	return bytes.Equal(computed, c)
}

func (hash *Hash) commitment(d Decommitment, data []interface{}) (Commitment, error) {
	h := hash.Clone()
	for _, item := range data {
		if err := h.WriteAny(item); err != nil {
			return nil, fmt.Errorf("hash: failed to write committed data: %w", err)
		}
	}
	if err := h.WriteAny(d); err != nil {
		return nil, err
	}
	return h.Sum(), nil
}
