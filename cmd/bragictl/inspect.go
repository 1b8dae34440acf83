package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/danmuck/bragi"
	"github.com/danmuck/bragi/internal/observability"
)

func readArgFile(c *cli.Context) ([]byte, error) {
	if len(c.Args()) != 1 {
		return nil, cli.NewExitError("expected exactly one file argument", 2)
	}
	raw, err := os.ReadFile(c.Args().First())
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", c.Args().First())
	}
	return raw, nil
}

func peekCommand(c *cli.Context) error {
	raw, err := readArgFile(c)
	if err != nil {
		return err
	}
	return peek(c.App.Writer, raw, c.Int("head-size"))
}

func dumpCommand(c *cli.Context) error {
	raw, err := readArgFile(c)
	if err != nil {
		return err
	}
	limits := bragi.FrameLimits{MaxTailBytes: uint32(c.Uint("max-tail"))}
	return dump(c.App.Writer, raw, c.Int("head-size"), limits)
}

// peek prints the preamble of the first message in raw and checks that
// the file holds at least the head and the announced tail.
func peek(out io.Writer, raw []byte, headSize int) error {
	p, err := bragi.ReadPreamble(bytes.NewReader(raw))
	if err != nil {
		observability.RecordInspect("peek", 0, 0, false)
		return errors.Wrap(err, "peek preamble")
	}
	fmt.Fprintf(out, "%s %d\n", cyan("id:"), p.ID())
	fmt.Fprintf(out, "%s %d\n", cyan("tail_size:"), p.TailSize())

	need := headSize + int(p.TailSize())
	if len(raw) < need {
		observability.RecordInspect("peek", min(len(raw), headSize), 0, false)
		fmt.Fprintf(out, "%s file has %d bytes, head+tail needs %d\n", yellow("short:"), len(raw), need)
		return bragi.ErrTruncated
	}
	observability.RecordInspect("peek", headSize, int(p.TailSize()), true)
	if extra := len(raw) - need; extra > 0 {
		fmt.Fprintf(out, "%s %d bytes follow the first message\n", cyan("trailing:"), extra)
	}
	return nil
}

// dump walks raw as a stream of head/tail frames, refusing tails longer
// than limits allow.
func dump(out io.Writer, raw []byte, headSize int, limits bragi.FrameLimits) error {
	r := bytes.NewReader(raw)
	for i := 0; r.Len() > 0; i++ {
		offset := len(raw) - r.Len()
		head, tail, err := bragi.ReadFrameLimits(r, headSize, limits)
		if err != nil {
			observability.RecordInspect("dump", 0, 0, false)
			return errors.Wrapf(err, "frame %d at offset %d", i, offset)
		}
		observability.RecordInspect("dump", len(head), len(tail), true)
		p, err := bragi.PreambleFromBytes(head)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s offset=%d id=%d tail_size=%d\n", green(fmt.Sprintf("frame %d", i)), offset, p.ID(), p.TailSize())
		fmt.Fprintln(out, cyan("head:"))
		fmt.Fprint(out, hex.Dump(head))
		if len(tail) > 0 {
			fmt.Fprintln(out, cyan("tail:"))
			fmt.Fprint(out, hex.Dump(tail))
		}
	}
	return nil
}
