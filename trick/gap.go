package trick

import (
	"fmt"
	"slices"
)

// GapStrategy hides the dropped card in the parity of the gaps between the
// shown cards. At least one of the five gaps of a hand is odd, since they
// sum to 47. The assistant drops a card whose removal merges two gaps into
// an odd one and leaves a four-card pattern the magician can recognise; the
// ordering then picks the dropped card out of that pattern's candidate list.
type GapStrategy struct{}

// dropIndex maps each five-card case to the position, in the rotated hand,
// of the card to hold back.
var dropIndex = map[Pattern]int{
	Case01011: 4, // merges the two odd gaps at the end
	Case11111: 1, // merges the first two odd gaps
	Case00001: 3, // merges the two even gaps before the odd one
	Case00111: 4, // merges the two odd gaps at the end
}

func (GapStrategy) Name() string { return "gap" }

func (g GapStrategy) Encode(hand []Card) (Selection, error) {
	sorted, err := sortedHand(hand)
	if err != nil {
		return Selection{}, err
	}
	drop, four := g.split(sorted)

	idx := slices.Index(Candidates(four), drop)
	if idx < 0 {
		panic(fmt.Sprintf("trick: gap strategy dropped %s from %s but it is not a candidate",
			drop, FormatCards(sorted[:])))
	}
	return Selection(Unrank(four[:], idx)), nil
}

// split chooses the card to hold back and returns it with the other four in
// ascending order.
func (GapStrategy) split(sorted [HandSize]Card) (Card, [SelectionSize]Card) {
	c, err := Classify(sorted[:])
	if err != nil {
		panic(fmt.Sprintf("trick: unclassified hand: %v", err))
	}
	rotated := Rotate(sorted[:], c.Rotation)
	i := dropIndex[c.Pattern]
	drop := rotated[i]

	var four [SelectionSize]Card
	copy(four[:], slices.Delete(rotated, i, i+1))
	slices.Sort(four[:])
	return drop, four
}

func (GapStrategy) Decode(sel Selection) (Card, error) {
	if _, err := validate(sel[:], SelectionSize); err != nil {
		return 0, err
	}
	candidates := Candidates(sel.Sorted())
	idx := Rank(sel[:])
	if idx >= len(candidates) {
		return 0, fmt.Errorf("%w: %s has %d candidates, order %d", ErrNotEncoded, sel, len(candidates), idx)
	}
	return candidates[idx], nil
}
