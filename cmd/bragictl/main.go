package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/danmuck/bragi"
	"github.com/danmuck/bragi/internal/config"
	"github.com/danmuck/bragi/internal/logging"
	"github.com/danmuck/bragi/internal/observability"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bragictl"
	app.Usage = "generate bragi bindings and inspect encoded messages"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log at debug level",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable coloured output",
		},
		cli.StringFlag{
			Name:  "metrics-textfile",
			Usage: "write prometheus metrics to this file on exit",
		},
	}
	app.Before = func(c *cli.Context) error {
		logging.ConfigureRuntime()
		if c.GlobalBool("verbose") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		if c.GlobalBool("no-color") {
			disableColor()
		}
		return nil
	}
	app.After = func(c *cli.Context) error {
		if path := c.GlobalString("metrics-textfile"); path != "" {
			return observability.WriteTextfile(path)
		}
		return nil
	}
	manifestFlag := cli.StringFlag{
		Name:  "manifest, m",
		Value: config.DefaultManifestName,
		Usage: "path to the build manifest",
	}
	headSizeFlag := cli.IntFlag{
		Name:  "head-size",
		Value: 128,
		Usage: "HEAD_SIZE of the messages in the file",
	}
	app.Commands = []cli.Command{
		cli.Command{
			Name:      "generate",
			Usage:     "run the schema compiler for every manifest binding, or for the given sources",
			ArgsUsage: "[source...]",
			Action:    generateCommand,
			Flags: []cli.Flag{
				manifestFlag,
				cli.StringFlag{
					Name:  "output, o",
					Usage: "output path when sources are given on the command line",
				},
				cli.StringFlag{
					Name:  "language, l",
					Value: config.DefaultLanguage,
					Usage: "target language when sources are given on the command line",
				},
				cli.StringFlag{
					Name:  "compiler",
					Value: config.DefaultCompiler,
					Usage: "compiler binary when sources are given on the command line",
				},
				cli.BoolFlag{
					Name:  "force, f",
					Usage: "regenerate even when outputs are newer than their sources",
				},
			},
		},
		cli.Command{
			Name:      "peek",
			Usage:     "print the preamble of an encoded message without decoding it",
			ArgsUsage: "<file>",
			Action:    peekCommand,
			Flags:     []cli.Flag{headSizeFlag},
		},
		cli.Command{
			Name:      "dump",
			Usage:     "hex dump every head/tail frame in a message stream",
			ArgsUsage: "<file>",
			Action:    dumpCommand,
			Flags: []cli.Flag{
				headSizeFlag,
				cli.UintFlag{
					Name:  "max-tail",
					Value: uint(bragi.DefaultFrameLimits().MaxTailBytes),
					Usage: "largest tail a frame may announce, 0 for no limit",
				},
			},
		},
		cli.Command{
			Name:  "config",
			Usage: "manage the build manifest",
			Subcommands: []cli.Command{
				cli.Command{
					Name:   "init",
					Usage:  "write a starter manifest",
					Action: configInitCommand,
					Flags: []cli.Flag{
						manifestFlag,
						cli.BoolFlag{
							Name:  "force, f",
							Usage: "overwrite an existing manifest",
						},
					},
				},
				cli.Command{
					Name:   "validate",
					Usage:  "load and validate a manifest",
					Action: configValidateCommand,
					Flags:  []cli.Flag{manifestFlag},
				},
			},
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("bragictl failed")
		os.Exit(1)
	}
}
