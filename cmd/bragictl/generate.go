package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/danmuck/bragi/internal/compiler"
	"github.com/danmuck/bragi/internal/config"
)

type invoker interface {
	Invoke(ctx context.Context, req compiler.Request) (compiler.Result, error)
}

func generateCommand(c *cli.Context) error {
	var (
		reqs    []compiler.Request
		timeout = config.DefaultTimeout
	)
	if len(c.Args()) > 0 {
		if c.String("output") == "" {
			return cli.NewExitError("--output is required when sources are given", 2)
		}
		reqs = []compiler.Request{{
			Compiler: c.String("compiler"),
			Sources:  []string(c.Args()),
			Output:   c.String("output"),
			Language: c.String("language"),
		}}
	} else {
		cfg, err := config.LoadManifest(c.String("manifest"))
		if err != nil {
			return err
		}
		reqs = cfg.Requests()
		timeout = cfg.Timeout
	}
	return runGenerate(context.Background(), c.App.Writer, compiler.NewInvoker(nil), reqs, timeout, c.Bool("force"))
}

// runGenerate invokes the compiler for each request in order and stops
// at the first failure. Each run gets its own timeout.
func runGenerate(ctx context.Context, out io.Writer, inv invoker, reqs []compiler.Request, timeout time.Duration, force bool) error {
	if len(reqs) == 0 {
		fmt.Fprintln(out, yellow("no bindings to generate"))
		return nil
	}
	for _, req := range reqs {
		label := strings.Join(req.Sources, ",") + " -> " + req.Output
		if !force {
			stale, err := compiler.Stale(req)
			if err != nil {
				return err
			}
			if !stale {
				log.Debug().Str("output", req.Output).Msg("bindings up to date")
				fmt.Fprintf(out, "%s %s\n", cyan("up-to-date"), label)
				continue
			}
		}

		runCtx, cancel := context.WithTimeout(ctx, timeout)
		res, err := inv.Invoke(runCtx, req)
		cancel()
		if err != nil {
			fmt.Fprintf(out, "%s %s\n", red("failed"), label)
			var cerr *compiler.Error
			if errors.As(err, &cerr) {
				return cli.NewExitError(cerr.Error(), 1)
			}
			return err
		}
		fmt.Fprintf(out, "%s %s (%s)\n", green("generated"), label, res.Duration.Round(time.Millisecond))
	}
	return nil
}
