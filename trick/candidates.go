package trick

// evenOffsets and oddOffsets select which cards inside a gap are listed,
// measured as the forward distance from the card that opens the gap.
const (
	oddOffsets  = 1
	evenOffsets = 2
)

// Candidates lists, in a fixed order, the cards the gap strategy could have
// dropped from a hand whose other four cards are sorted. The order depends
// on sorted alone, so the encoder and decoder build the same list. The list
// never holds more than 24 cards, one per ordering of four.
//
// Sets whose gaps are all even are never produced by the encoder and get an
// empty list.
func Candidates(sorted [SelectionSize]Card) []Card {
	c, err := Classify(sorted[:])
	if err != nil {
		return nil
	}
	r := Rotate(sorted[:], c.Rotation)

	out := make([]Card, 0, Factorial(SelectionSize))
	switch c.Pattern {
	case Case0101:
		out = appendBetween(out, r[1], r[2], evenOffsets)
		out = appendBetween(out, r[3], r[0], evenOffsets)
	case Case0011:
		out = appendBetween(out, r[2], r[3], oddOffsets)
		out = appendBetween(out, r[3], r[0], evenOffsets)
	case Case1111:
		out = appendBetween(out, r[0], r[1], evenOffsets)
	}
	return out
}

// appendBetween appends every second card strictly inside the circular gap
// from start to end, beginning first cards past start.
func appendBetween(dst []Card, start, end Card, first int) []Card {
	hi := int(end)
	if hi < int(start) {
		hi += NumCards
	}
	for v := int(start) + first; v < hi; v += 2 {
		dst = append(dst, Card(v%NumCards))
	}
	return dst
}
