package main

import (
	"fmt"
	"os"

	"github.com/lox/fivecrowns/internal/config"
	"github.com/lox/fivecrowns/internal/fileutil"
)

type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a configuration file with the default settings"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

type ConfigInitCmd struct {
	File  string `arg:"" optional:"" default:"${config_file}" type:"path" help:"File to write"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	if _, err := os.Stat(c.File); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", c.File)
	}
	if err := fileutil.WriteFileAtomic(c.File, config.Default().Encode(), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	out := g.Stdout
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintf(out, "Wrote %s\n", c.File)
	return err
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	_, err = e.out.Write(e.cfg.Encode())
	return err
}
