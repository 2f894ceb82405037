package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/cardtrick/internal/assistant"
	"github.com/lox/cardtrick/internal/deck"
	"github.com/lox/cardtrick/internal/randutil"
	"github.com/lox/cardtrick/trick"
)

// PerformCmd plays hands against a running magician.
type PerformCmd struct {
	URL      string        `short:"u" help:"Magician websocket URL (overrides config)"`
	Strategy string        `short:"s" help:"Strategy to encode with (overrides config)"`
	Hands    int           `short:"n" help:"Number of hands to deal (overrides config)"`
	Timeout  time.Duration `help:"Time to wait for each reveal (overrides config)"`
	Seed     *int64        `help:"Deterministic seed for dealing (optional)"`
}

func (c *PerformCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	settings := *cfg.Assistant
	if c.URL != "" {
		settings.URL = c.URL
	}
	if c.Strategy != "" {
		settings.Strategy = c.Strategy
	}
	if c.Hands > 0 {
		settings.Hands = c.Hands
	}
	timeout, err := settings.TimeoutDuration()
	if err != nil {
		return err
	}
	if c.Timeout > 0 {
		timeout = c.Timeout
	}
	s, err := trick.Lookup(settings.Strategy)
	if err != nil {
		return err
	}

	seed, rng := randutil.FromFlag(c.Seed)
	logger.Info("Dealing hands", "hands", settings.Hands, "seed", seed)

	ctx, cancel := signalContext(logger)
	defer cancel()

	client, err := assistant.Dial(ctx, assistant.Config{
		URL:      settings.URL,
		Strategy: s,
		Timeout:  timeout,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	tally, err := client.Perform(ctx, deck.New(rng), settings.Hands)
	if tally != nil {
		printTally(s, seed, tally)
	}
	if err != nil {
		return err
	}
	if tally.Correct != tally.Hands {
		return fmt.Errorf("magician named %d of %d hidden cards", tally.Correct, tally.Hands)
	}
	return nil
}

func printTally(s trick.Strategy, seed int64, t *assistant.Tally) {
	out := os.Stdout
	header(out, fmt.Sprintf("Performance (%s, seed %d)", s.Name(), seed))
	for _, r := range t.Results {
		label := fmt.Sprintf("hand %d", r.ID)
		switch {
		case r.Err != nil:
			row(out, label, renderCards(r.Hand)+" "+failStyle.Render("✗ "+r.Err.Error()))
		case r.Correct():
			row(out, label, renderCards(r.Selection[:])+" → "+renderCard(r.Reveal)+" "+okStyle.Render("✓"))
		default:
			row(out, label, renderCards(r.Selection[:])+" → "+renderCard(r.Reveal)+" "+
				failStyle.Render("✗ hidden "+r.Hidden.String()))
		}
	}
	row(out, "correct", fmt.Sprintf("%d of %d", t.Correct, t.Hands))
	if t.Incorrect > 0 || t.Failed > 0 {
		row(out, "wrong", fmt.Sprint(t.Incorrect))
		row(out, "failed", fmt.Sprint(t.Failed))
	}
}
