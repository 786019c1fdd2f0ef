// Command chaumpedersen runs interactive Chaum-Pedersen sessions between a local
// prover and verifier, and manages the group parameters they use.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/taurusgroup/chaum-pedersen/internal/log"
	"github.com/taurusgroup/chaum-pedersen/internal/params"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/urfave/cli/v2"
)

// output receives the results of the commands; logs go to stderr.
var output io.Writer = os.Stdout

// Automatically set through -ldflags
// Example: go install -ldflags "-X main.version=`git describe --tags` -X main.gitCommit=`git rev-parse HEAD`"
var (
	version   = "master"
	gitCommit = "none"
)

var groupFlag = &cli.StringFlag{
	Name:  "group",
	Value: group.NameRFC5114,
	Usage: fmt.Sprintf("Name of the built-in group to use, one of %v.", group.Names()),
}

var groupFileFlag = &cli.StringFlag{
	Name:  "group-file",
	Usage: "Read the group from a TOML file with hexadecimal p, q, alpha and beta. Takes precedence over --group.",
}

var sessionsFlag = &cli.IntFlag{
	Name:  "sessions",
	Value: 1,
	Usage: "Number of sessions to run concurrently.",
}

var secretFlag = &cli.StringFlag{
	Name:  "secret",
	Usage: "Hexadecimal secret x shared by all sessions. A fresh secret is sampled per session if empty.",
}

var curveFlag = &cli.BoolFlag{
	Name:  "secp256k1",
	Usage: "Run the proof over secp256k1 instead of a multiplicative group. --group is ignored.",
}

var labelFlag = &cli.StringFlag{
	Name:     "label",
	Usage:    "Label from which the exponent of beta is derived.",
	Required: true,
}

var nameFlag = &cli.StringFlag{
	Name:  "name",
	Usage: "Informative name written in the TOML output.",
}

var bitsFlag = &cli.IntFlag{
	Name:  "bits",
	Value: params.BitsGroupModulus,
	Usage: "Size of the safe prime p of the generated group.",
}

var verboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "If set, verbosity is at the debug level. Overrides --log-level.",
}

var logLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Usage: "One of debug, info, warn or error. Defaults to $CHAUM_PEDERSEN_LOG, or info.",
}

var jsonFlag = &cli.BoolFlag{
	Name:  "json",
	Usage: "Log in JSON instead of the console format.",
}

// CLI returns the application, so that tests can run it with their own arguments.
func CLI() *cli.App {
	return &cli.App{
		Name:    "chaumpedersen",
		Version: version,
		Usage:   "interactive zero-knowledge proofs of equality of discrete logarithms",
		Flags:   []cli.Flag{verboseFlag, logLevelFlag, jsonFlag},
		Commands: []*cli.Command{
			{
				Name:  "group",
				Usage: "Inspect and derive group parameters.",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the selected group as TOML.",
						Flags:  []cli.Flag{groupFlag, groupFileFlag, nameFlag},
						Action: showGroupCmd,
					},
					{
						Name:   "derive",
						Usage:  "Replace beta of the selected group by alpha^e, with e derived from a label.",
						Flags:  []cli.Flag{groupFlag, groupFileFlag, labelFlag, nameFlag},
						Action: deriveGroupCmd,
					},
					{
						Name:   "generate",
						Usage:  "Generate a group over a fresh safe prime p = 2q + 1.",
						Flags:  []cli.Flag{bitsFlag, nameFlag},
						Action: generateGroupCmd,
					},
					{
						Name:   "list",
						Usage:  "List the built-in groups.",
						Action: listGroupsCmd,
					},
				},
			},
			{
				Name:   "run",
				Usage:  "Run interactive sessions between a local prover and verifier.",
				Flags:  []cli.Flag{groupFlag, groupFileFlag, sessionsFlag, secretFlag, curveFlag},
				Action: runCmd,
			},
		},
	}
}

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(output, "chaumpedersen %v (commit %v)\n", version, gitCommit)
	}
	if err := CLI().Run(os.Args); err != nil {
		l := log.DefaultLogger()
		l.Errorw("command failed", "err", err)
		_ = l.Sync()
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) (log.Logger, error) {
	level := log.DefaultLevel
	if name := c.String(logLevelFlag.Name); name != "" {
		var err error
		if level, err = log.ParseLevel(name); err != nil {
			return nil, err
		}
	}
	if c.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	return log.New(nil, level, c.Bool(jsonFlag.Name)), nil
}
