package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/lox/cardtrick/trick"
)

// EncodeCmd shows four cards of a hand in order.
type EncodeCmd struct {
	Strategy string   `short:"s" default:"gap" enum:"${strategies}" help:"Strategy to encode with (${enum})"`
	Cards    []string `arg:"" help:"Five cards, e.g. '3c 4c Tc 5s Ac' or card numbers 0-51"`
}

func (c *EncodeCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}
	s, err := trick.Lookup(c.Strategy)
	if err != nil {
		return err
	}
	hand, err := trick.ParseCards(c.Cards...)
	if err != nil {
		return err
	}

	sel, err := s.Encode(hand)
	if err != nil {
		return err
	}
	hidden := hand[0]
	for _, card := range hand {
		if !sel.Set().Has(card) {
			hidden = card
		}
	}

	out := os.Stdout
	header(out, "Encode ("+s.Name()+")")
	row(out, "hand", renderCards(hand)+" "+numbers(hand))
	row(out, "show", renderCards(sel[:])+" "+numbers(sel[:]))
	row(out, "hidden", renderCard(hidden))
	if _, ok := s.(trick.GapStrategy); ok {
		sorted := slices.Sorted(slices.Values(hand))
		if c, err := trick.Classify(sorted); err == nil {
			row(out, "case", c.String())
			row(out, "gaps", fmt.Sprint(trick.Gaps(sorted)))
		}
	}
	return nil
}

// DecodeCmd names the card hidden behind four shown cards.
type DecodeCmd struct {
	Strategy string   `short:"s" default:"gap" enum:"${strategies}" help:"Strategy to decode with (${enum})"`
	Cards    []string `arg:"" help:"Four shown cards in order, e.g. '5c 6c Ts Ac'"`
}

func (c *DecodeCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}
	s, err := trick.Lookup(c.Strategy)
	if err != nil {
		return err
	}
	cards, err := trick.ParseCards(c.Cards...)
	if err != nil {
		return err
	}
	sel, err := trick.NewSelection(cards)
	if err != nil {
		return err
	}

	card, err := s.Decode(sel)
	if err != nil {
		return err
	}

	out := os.Stdout
	header(out, "Decode ("+s.Name()+")")
	row(out, "shown", renderCards(sel[:])+" "+numbers(sel[:]))
	row(out, "hidden", renderCard(card)+" "+numbers([]trick.Card{card}))
	return nil
}

// StrategiesCmd lists the built-in strategies.
type StrategiesCmd struct{}

var strategyHelp = map[string]string{
	"gap":        "drops a card by gap parity and ranks the other four's order (default)",
	"suit":       "keeps two cards of a shared suit and counts forward up to six ranks",
	"complement": "drops by card parity and finds the hidden card among 48 complements",
}

func (c *StrategiesCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}
	out := os.Stdout
	header(out, "Strategies")
	for _, s := range trick.Strategies() {
		row(out, s.Name(), strategyHelp[s.Name()])
	}
	return nil
}
