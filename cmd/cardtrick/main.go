package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lox/cardtrick/trick"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Encode     EncodeCmd        `cmd:"" help:"Choose and order four cards of a five-card hand"`
	Decode     DecodeCmd        `cmd:"" help:"Name the hidden card from four shown cards"`
	Verify     VerifyCmd        `cmd:"" help:"Check a strategy against every hand, or a sample"`
	Properties PropertiesCmd    `cmd:"" help:"Check the gap strategy's structural properties"`
	Serve      ServeCmd         `cmd:"" help:"Run a magician that answers over a websocket"`
	Perform    PerformCmd       `cmd:"" help:"Deal hands and play them against a magician"`
	Strategies StrategiesCmd    `cmd:"" help:"List the available strategies"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardtrick"),
		kong.Description("The five-card trick: show four cards, name the fifth"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"strategies": strings.Join(strategyNames(), ","),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func strategyNames() []string {
	var names []string
	for _, s := range trick.Strategies() {
		names = append(names, s.Name())
	}
	return names
}
