package trick

import (
	"testing"

	"github.com/lox/cardtrick/internal/combin"
)

// forEachSubset calls fn with every k-card subset of the deck in ascending
// order. The slice is reused between calls.
func forEachSubset(k int, fn func(index int, cards []Card)) {
	cards := make([]Card, k)
	combin.Each(NumCards, k, func(i int, c []int) bool {
		for j, v := range c {
			cards[j] = Card(v)
		}
		fn(i, cards)
		return true
	})
}

func skipExhaustive(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping exhaustive check in short mode")
	}
}
