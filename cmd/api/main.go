package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `short:"c" type:"path" help:"Optional YAML config file; environment variables override it"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" default:"1" help:"Run the game server (default)"`
	Show    ShowCmd          `cmd:"" help:"Print the persisted board"`
	Reset   ResetCmd         `cmd:"" help:"Clear the persisted board"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("four-chain"),
		kong.Description("Shared four-in-a-row board served over HTTP and WebSocket"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
