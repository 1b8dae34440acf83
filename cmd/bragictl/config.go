package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/danmuck/bragi/internal/config"
)

func configInitCommand(c *cli.Context) error {
	path := c.String("manifest")
	if err := config.WriteTemplate(path, c.Bool("force")); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s %s\n", green("wrote"), path)
	return nil
}

func configValidateCommand(c *cli.Context) error {
	path := c.String("manifest")
	cfg, err := config.LoadManifest(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s %s (%d bindings)\n", green("valid"), path, len(cfg.Bindings))
	return nil
}
