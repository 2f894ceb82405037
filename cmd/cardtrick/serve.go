package main

import (
	"github.com/lox/cardtrick/internal/magician"
	"github.com/lox/cardtrick/trick"
)

// ServeCmd runs the magician.
type ServeCmd struct {
	Addr     string `short:"a" help:"Address to bind to (overrides config)"`
	Port     int    `help:"Port to listen on (overrides config)"`
	Strategy string `short:"s" help:"Strategy to decode with (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	settings := *cfg.Magician
	if c.Addr != "" {
		settings.Address = c.Addr
	}
	if c.Port != 0 {
		settings.Port = c.Port
	}
	if c.Strategy != "" {
		settings.Strategy = c.Strategy
	}
	s, err := trick.Lookup(settings.Strategy)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	return magician.NewServer(s, logger).ListenAndServe(ctx, settings.ListenAddress())
}
