package trick

// ComplementStrategy numbers the 48 cards not shown from 0 to 47. The
// ordering carries the number halved; the low bit comes from the parity of
// the even cards shown, which the choice between dropping the lowest or the
// second lowest card always makes come out right.
type ComplementStrategy struct{}

func (ComplementStrategy) Name() string { return "complement" }

func (ComplementStrategy) Encode(hand []Card) (Selection, error) {
	sorted, err := sortedHand(hand)
	if err != nil {
		return Selection{}, err
	}

	// Dropping s[k] leaves k shown cards below it, so its number among the
	// unseen cards is s[k]-k. That has the right low bit when k is 1 for an
	// even count of even cards and 0 otherwise.
	k := 1 - countEven(sorted[:])%2
	dropped := sorted[k]
	n := int(dropped) - k

	four := make([]Card, 0, SelectionSize)
	four = append(four, sorted[:k]...)
	four = append(four, sorted[k+1:]...)
	return Selection(Unrank(four, n/2)), nil
}

func (ComplementStrategy) Decode(sel Selection) (Card, error) {
	if _, err := validate(sel[:], SelectionSize); err != nil {
		return 0, err
	}
	n := 2*Rank(sel[:]) + countEven(sel[:])%2

	// Map the number back onto the deck, skipping shown cards in ascending
	// order.
	for _, c := range sel.Sorted() {
		if n >= int(c) {
			n++
		}
	}
	return Card(n), nil
}

func countEven(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c%2 == 0 {
			n++
		}
	}
	return n
}
