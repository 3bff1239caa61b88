package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Play blackjack at an interactive table"`
	Train   TrainCmd         `cmd:"" help:"Train the learning agent against the dealer"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack table with scripted and learning bot players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
