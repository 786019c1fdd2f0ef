package main

import (
	"crypto/rand"
	"fmt"

	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/pool"
	"github.com/urfave/cli/v2"
)

// loadGroup returns the group from --group-file if set, or the built-in named by --group.
func loadGroup(c *cli.Context) (*group.Parameters, error) {
	if path := c.String(groupFileFlag.Name); path != "" {
		return group.LoadTOML(path)
	}
	return group.ByName(c.String(groupFlag.Name))
}

func groupName(c *cli.Context) string {
	if name := c.String(nameFlag.Name); name != "" {
		return name
	}
	if c.String(groupFileFlag.Name) != "" {
		return ""
	}
	return c.String(groupFlag.Name)
}

func showGroupCmd(c *cli.Context) error {
	g, err := loadGroup(c)
	if err != nil {
		return err
	}
	return g.SaveTOML(output, groupName(c))
}

func deriveGroupCmd(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	g, err := loadGroup(c)
	if err != nil {
		return err
	}
	label := c.String(labelFlag.Name)
	beta, err := group.DeriveBetaFromLabel(g.P(), g.Q(), g.Alpha(), label)
	if err != nil {
		return fmt.Errorf("deriving beta from %q: %w", label, err)
	}
	derived := group.New(g.P(), g.Q(), g.Alpha(), beta)
	if err = derived.Validate(); err != nil {
		return fmt.Errorf("derived group is invalid: %w", err)
	}
	l.Debugw("derived beta", "label", label, "beta", beta.Big().Text(16))
	return derived.SaveTOML(output, c.String(nameFlag.Name))
}

func generateGroupCmd(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	l = l.Named("generate")
	bits := c.Int(bitsFlag.Name)
	pl := pool.NewPool(0)
	defer pl.TearDown()

	l.Infow("searching for a safe prime", "bits", bits, "workers", pl.Workers())
	g, err := group.Generate(rand.Reader, pl, bits)
	if err != nil {
		return fmt.Errorf("generating a %d bit group: %w", bits, err)
	}
	return g.SaveTOML(output, c.String(nameFlag.Name))
}

func listGroupsCmd(c *cli.Context) error {
	for _, name := range group.Names() {
		g, err := group.ByName(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%s\tp: %d bits\tq: %d bits\n", name, g.P().BitLen(), g.Q().BitLen())
	}
	return nil
}
