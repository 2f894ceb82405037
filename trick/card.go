package trick

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// NumCards is the size of the deck. Cards are the integers [0, NumCards).
const NumCards = 52

// NumRanks is the number of ranks in each suit.
const NumRanks = 13

// HandSize and SelectionSize fix the trick to five dealt cards, four shown.
const (
	HandSize      = 5
	SelectionSize = 4
)

// Card is a single card in [0, 52). The suit is card/13 and the rank is
// card%13, so 0 is the two of clubs and 51 is the ace of spades.
type Card uint8

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from rank (0-12 for 2-A) and suit (0-3)
func NewCard(rank, suit uint8) Card {
	return Card(suit*NumRanks + rank)
}

// Valid reports whether the card is inside the deck.
func (c Card) Valid() bool {
	return c < NumCards
}

// Rank returns the rank of the card (0-12)
func (c Card) Rank() uint8 {
	return uint8(c) % NumRanks
}

// Suit returns the suit of the card (0-3)
func (c Card) Suit() uint8 {
	return uint8(c) / NumRanks
}

// String returns the string representation (e.g., "As", "Kh")
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// ParseCard parses either the two character form ("As", "tc") or a decimal
// card number ("51").
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= NumCards {
			return 0, &InputError{Err: ErrCardRange, Detail: s}
		}
		return Card(n), nil
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}

	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a list of card tokens. Tokens may also be packed
// together without separators ("3c4c9sAc").
func ParseCards(tokens ...string) ([]Card, error) {
	var cards []Card
	for _, tok := range tokens {
		for _, field := range strings.FieldsFunc(tok, func(r rune) bool { return r == ',' || r == ' ' }) {
			if _, err := strconv.Atoi(field); err != nil && len(field) > 2 && len(field)%2 == 0 {
				for i := 0; i < len(field); i += 2 {
					c, err := ParseCard(field[i : i+2])
					if err != nil {
						return nil, err
					}
					cards = append(cards, c)
				}
				continue
			}
			c, err := ParseCard(field)
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
		}
	}
	return cards, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// CardSet is a set of cards, one bit per card.
type CardSet uint64

// NewCardSet creates a set from multiple cards
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s.Add(c)
	}
	return s
}

// Add adds a card to the set
func (s *CardSet) Add(c Card) {
	*s |= 1 << c
}

// Has checks if the set contains a specific card
func (s CardSet) Has(c Card) bool {
	return s&(1<<c) != 0
}

// Count returns the number of cards in the set
func (s CardSet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// Cards returns the members in ascending order.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Count())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		out = append(out, Card(bits.TrailingZeros64(rest)))
	}
	return out
}

// FormatCards joins cards with spaces, e.g. "3c 4c 9s Ac".
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
