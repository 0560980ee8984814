package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/lox/fivecrowns/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals Globals `embed:""`

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Analyze  AnalyzeCmd       `cmd:"" help:"Group a hand into books and runs and score the leftovers"`
	Discard  DiscardCmd       `cmd:"" help:"Suggest which card to discard"`
	Draw     DrawCmd          `cmd:"" help:"Suggest whether to take the visible discard"`
	Simulate SimulateCmd      `cmd:"" help:"Play solitaire rounds with the advisor and report statistics"`
	Explore  ExploreCmd       `cmd:"" help:"Explore hands interactively"`
	Config   ConfigCmd        `cmd:"" help:"Manage the configuration file"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("crowns"),
		kong.Description("Five Crowns hand analysis and advice"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFilename,
		},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
