// Package deck deals trick hands from a shuffled 52-card deck.
package deck

import (
	rand "math/rand/v2"

	"github.com/lox/cardtrick/trick"
)

// Deck represents a standard 52-card deck
type Deck struct {
	cards [trick.NumCards]trick.Card
	next  int
	rng   *rand.Rand
}

// New creates a new shuffled deck with explicit RNG
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	for i := range d.cards {
		d.cards[i] = trick.Card(i)
	}
	d.Shuffle()
	return d
}

// Shuffle gathers every card back and shuffles using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck, or nil if fewer than n remain
func (d *Deck) Deal(n int) []trick.Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]trick.Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealHand reshuffles when the deck runs low and deals five cards.
func (d *Deck) DealHand() []trick.Card {
	if d.CardsRemaining() < trick.HandSize {
		d.Shuffle()
	}
	return d.Deal(trick.HandSize)
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
