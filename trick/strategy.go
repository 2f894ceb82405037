// Package trick implements the five-card trick: the assistant shows four of
// five dealt cards in a chosen order and the magician names the fifth.
package trick

import (
	"fmt"
	"slices"
)

// Selection is the ordered four cards the assistant shows.
type Selection [SelectionSize]Card

// Sorted returns the selection's cards in ascending order.
func (s Selection) Sorted() [SelectionSize]Card {
	out := [SelectionSize]Card(s)
	slices.Sort(out[:])
	return out
}

// Set returns the selection as a card set.
func (s Selection) Set() CardSet {
	return NewCardSet(s[:]...)
}

func (s Selection) String() string {
	return FormatCards(s[:])
}

// NewSelection checks that cards holds four distinct in-range cards.
func NewSelection(cards []Card) (Selection, error) {
	if _, err := validate(cards, SelectionSize); err != nil {
		return Selection{}, err
	}
	return Selection(cards), nil
}

// Strategy is one way for the assistant and magician to agree on the trick.
// Implementations are stateless and safe for concurrent use.
type Strategy interface {
	// Name identifies the strategy in configuration and reports.
	Name() string

	// Encode picks and orders four cards of a five-card hand.
	Encode(hand []Card) (Selection, error)

	// Decode names the card the assistant kept back.
	Decode(sel Selection) (Card, error)
}

// Default is the strategy behind Encode and Decode.
var Default Strategy = GapStrategy{}

var registry = []Strategy{GapStrategy{}, SuitStrategy{}, ComplementStrategy{}}

// Strategies returns every built-in strategy, the default first.
func Strategies() []Strategy {
	return slices.Clone(registry)
}

// Lookup finds a built-in strategy by name.
func Lookup(name string) (Strategy, error) {
	for _, s := range registry {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Encode picks and orders four of the five cards in hand using the default
// strategy.
func Encode(hand []Card) (Selection, error) {
	return Default.Encode(hand)
}

// Decode names the missing card of a selection made by Encode.
func Decode(sel Selection) (Card, error) {
	return Default.Decode(sel)
}

// sortedHand validates a five-card hand and returns it in ascending order.
func sortedHand(hand []Card) ([HandSize]Card, error) {
	set, err := validate(hand, HandSize)
	if err != nil {
		return [HandSize]Card{}, err
	}
	return [HandSize]Card(set.Cards()), nil
}
