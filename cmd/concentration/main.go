package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Serve the browser game"`
	Play    PlayCmd          `cmd:"" help:"Play in the terminal"`
	Presets PresetsCmd       `cmd:"" help:"List difficulty presets"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("concentration"),
		kong.Description("Memory matching card game"),
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
