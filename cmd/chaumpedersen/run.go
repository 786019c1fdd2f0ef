package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/chaum-pedersen/internal/log"
	"github.com/taurusgroup/chaum-pedersen/pkg/group"
	"github.com/taurusgroup/chaum-pedersen/pkg/hash"
	"github.com/taurusgroup/chaum-pedersen/pkg/math/curve"
	"github.com/taurusgroup/chaum-pedersen/pkg/pool"
	zkcp "github.com/taurusgroup/chaum-pedersen/pkg/zk/cp"
	zkdleq "github.com/taurusgroup/chaum-pedersen/pkg/zk/dleq"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// session runs the i-th session, and returns the digest of its transcript and whether it was accepted.
type session func(ctx context.Context, i int) (digest []byte, accepted bool, err error)

func runCmd(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	l = l.Named("run")
	defer func() { _ = l.Sync() }()

	n := c.Int(sessionsFlag.Name)
	if n < 1 {
		return fmt.Errorf("--%s must be at least 1, got %d", sessionsFlag.Name, n)
	}
	secret, err := parseSecret(c.String(secretFlag.Name))
	if err != nil {
		return err
	}

	// every session samples its nonce and challenge from the same source
	r := pool.NewLockedReader(rand.Reader)

	var results []bool
	if c.Bool(curveFlag.Name) {
		l = l.With("curve", curve.Secp256k1{}.Name())
		results, err = runSessions(c.Context, l, n, curveSessions(r, zkdleq.DefaultBases(), secret))
		if err != nil {
			return err
		}
	} else {
		g, err := loadGroup(c)
		if err != nil {
			return err
		}
		l = l.With("p_bits", g.P().BitLen(), "q_bits", g.Q().BitLen())
		transcripts := make([]*zkcp.Transcript, n)
		results, err = runSessions(c.Context, l, n, groupSessions(r, g, secret, transcripts))
		if err != nil {
			return err
		}
		if err = audit(l, g, transcripts, results); err != nil {
			return err
		}
	}

	accepted := 0
	for _, ok := range results {
		if ok {
			accepted++
		}
	}
	fmt.Fprintf(output, "%d/%d sessions accepted\n", accepted, n)
	if accepted != n {
		return fmt.Errorf("%d of %d sessions rejected", n-accepted, n)
	}
	return nil
}

// audit verifies the recorded transcripts once more, in parallel, and fails if
// any outcome differs from what the verifier decided during the session.
func audit(l log.Logger, g *group.Parameters, transcripts []*zkcp.Transcript, results []bool) error {
	pl := pool.NewPool(0)
	defer pl.TearDown()
	for i, ok := range zkcp.VerifyBatch(pl, g, transcripts) {
		if ok != results[i] {
			l.Errorw("transcript audit failed", "session", i, "live", results[i], "replayed", ok)
			return fmt.Errorf("session %d: transcript does not reproduce the verifier's decision", i)
		}
	}
	l.Debugw("transcripts audited", "count", len(transcripts), "workers", pl.Workers())
	return nil
}

// runSessions runs n sessions concurrently, and returns whether each was accepted.
//
// A rejected proof is logged, not returned as an error.
func runSessions(ctx context.Context, l log.Logger, n int, run session) ([]bool, error) {
	results := make([]bool, n)
	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			digest, accepted, err := run(ctx, i)
			if err != nil {
				l.Errorw("session failed", "session", i, "err", err)
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = accepted
			sl := l.With("session", i, "transcript", hex.EncodeToString(digest))
			if accepted {
				sl.Infow("proof accepted")
			} else {
				sl.Warnw("proof rejected")
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// groupSessions runs zkcp sessions over g, recording the i-th transcript in transcripts[i].
func groupSessions(r io.Reader, g *group.Parameters, secret *saferith.Nat, transcripts []*zkcp.Transcript) session {
	return func(ctx context.Context, i int) ([]byte, bool, error) {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		private := zkcp.NewSecret(r, g)
		if secret != nil {
			private.X = new(saferith.Nat).Mod(secret, g.Q())
		}
		transcript, accepted, err := zkcp.Run(r, g, private)
		if err != nil {
			return nil, false, err
		}
		transcripts[i] = transcript
		return transcript.Digest(g), accepted, nil
	}
}

// curveSessions runs zkdleq sessions over secp256k1.
func curveSessions(r io.Reader, b *zkdleq.Bases, secret *saferith.Nat) session {
	return func(ctx context.Context, i int) ([]byte, bool, error) {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		private := zkdleq.NewSecret(r, b)
		if secret != nil {
			private.X = b.Curve().NewScalar().SetNat(secret)
		}
		transcript, accepted := zkdleq.Run(r, b, private)
		data, err := transcript.MarshalBinary()
		if err != nil {
			return nil, false, err
		}
		h := hash.New()
		if err = h.WriteAny(data); err != nil {
			return nil, false, err
		}
		return h.Sum(), accepted, nil
	}
}

// parseSecret reads a hexadecimal secret, returning nil if s is empty.
func parseSecret(s string) (*saferith.Nat, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, nil
	}
	x, ok := new(big.Int).SetString(s, 16)
	if !ok || x.Sign() < 0 {
		return nil, fmt.Errorf("--%s: invalid hexadecimal value %q", secretFlag.Name, s)
	}
	return new(saferith.Nat).SetBig(x, x.BitLen()), nil
}
