package group

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cronokirby/saferith"
)

// ParametersTOML is the TOML representation of Parameters.
// All values are hexadecimal.
type ParametersTOML struct {
	Name  string `toml:"name,omitempty"`
	P     string `toml:"p"`
	Q     string `toml:"q"`
	Alpha string `toml:"alpha"`
	Beta  string `toml:"beta"`
}

// TOML returns a struct that can be marshalled using a TOML-encoding library.
func (g *Parameters) TOML() interface{} {
	return &ParametersTOML{
		P:     g.P().Big().Text(16),
		Q:     g.q.Big().Text(16),
		Alpha: g.alpha.Big().Text(16),
		Beta:  g.beta.Big().Text(16),
	}
}

// TOMLValue returns an empty TOML-compatible interface value.
func (g *Parameters) TOMLValue() interface{} {
	return &ParametersTOML{}
}

// FromTOML constructs the parameters from an unmarshalled structure from TOML.
//
// The decoded parameters are not validated.
func (g *Parameters) FromTOML(i interface{}) error {
	gt, ok := i.(*ParametersTOML)
	if !ok {
		return errors.New("group: can't decode toml from non ParametersTOML struct")
	}
	var values [4]*saferith.Nat
	for idx, s := range []string{gt.P, gt.Q, gt.Alpha, gt.Beta} {
		n, err := natFromHexString(s)
		if err != nil {
			return err
		}
		values[idx] = n
	}
	decoded, err := fromNats(values[0], values[1], values[2], values[3])
	if err != nil {
		return err
	}
	*g = *decoded
	return nil
}

// LoadTOML reads parameters from a TOML file.
//
// The parameters are validated with Validate, so that malformed files fail fast.
func LoadTOML(path string) (*Parameters, error) {
	var gt ParametersTOML
	if _, err := toml.DecodeFile(path, &gt); err != nil {
		return nil, fmt.Errorf("group: failed to read %s: %w", path, err)
	}
	g := new(Parameters)
	if err := g.FromTOML(&gt); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("group: invalid parameters in %s: %w", path, err)
	}
	return g, nil
}

// SaveTOML writes the parameters to w in the format read by LoadTOML.
// The name is only informative and may be empty.
func (g *Parameters) SaveTOML(w io.Writer, name string) error {
	gt := g.TOML().(*ParametersTOML)
	gt.Name = name
	return toml.NewEncoder(w).Encode(gt)
}

func natFromHexString(s string) (*saferith.Nat, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if s == "" {
		return nil, ErrNilFields
	}
	x, ok := new(big.Int).SetString(s, 16)
	if !ok || x.Sign() < 0 {
		return nil, fmt.Errorf("group: invalid hexadecimal value %q", s)
	}
	return new(saferith.Nat).SetBig(x, x.BitLen()), nil
}
