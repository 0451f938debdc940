package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Server  ServerCmd        `cmd:"" help:"Host a game"`
	Client  ClientCmd        `cmd:"" help:"Join a game interactively"`
	Bot     BotCmd           `cmd:"" help:"Join a game as an automatic player"`
	Demo    DemoCmd          `cmd:"" help:"Play a local game between automatic players"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("acquire"),
		kong.Description("Hotel chain board game server and client"),
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
