package trick

import (
	"fmt"
	"slices"
)

// SuitStrategy uses the suits directly. Five cards always hold two of one
// suit, and of two distinct ranks one is at most six steps (mod 13) below
// the other. The lower card goes first to name the suit and a base rank;
// the ordering of the other three encodes the step from 1 to 6.
type SuitStrategy struct{}

func (SuitStrategy) Name() string { return "suit" }

func (SuitStrategy) Encode(hand []Card) (Selection, error) {
	sorted, err := sortedHand(hand)
	if err != nil {
		return Selection{}, err
	}

	suit := commonSuit(sorted)
	var pair []Card
	for _, c := range sorted {
		if c.Suit() == suit {
			pair = append(pair, c)
			if len(pair) == 2 {
				break
			}
		}
	}
	first, dropped, step := orderByStep(pair[0], pair[1])

	three := make([]Card, 0, 3)
	for _, c := range sorted {
		if c != first && c != dropped {
			three = append(three, c)
		}
	}

	var sel Selection
	sel[0] = first
	copy(sel[1:], Unrank(three, step-1))
	return sel, nil
}

func (SuitStrategy) Decode(sel Selection) (Card, error) {
	if _, err := validate(sel[:], SelectionSize); err != nil {
		return 0, err
	}
	first := sel[0]
	step := Rank(sel[1:]) + 1
	card := NewCard((first.Rank()+uint8(step))%NumRanks, first.Suit())
	if slices.Contains(sel[:], card) {
		return 0, fmt.Errorf("%w: %s names a shown card", ErrNotEncoded, sel)
	}
	return card, nil
}

// commonSuit returns the suit held most often, lowest suit first on ties.
func commonSuit(cards [HandSize]Card) uint8 {
	var counts [4]int
	for _, c := range cards {
		counts[c.Suit()]++
	}
	best := uint8(0)
	for s := uint8(1); s < 4; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

// orderByStep orders two cards of one suit so that the second is the first
// plus step ranks (mod 13), with step in [1, 6].
func orderByStep(a, b Card) (first, second Card, step int) {
	up := (int(b.Rank()) - int(a.Rank()) + NumRanks) % NumRanks
	down := NumRanks - up
	if up <= down {
		return a, b, up
	}
	return b, a, down
}
