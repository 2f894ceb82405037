package trick

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		four [4]Card
		want []Card
	}{
		{"alternating odd gaps", [4]Card{3, 4, 12, 47}, []Card{6, 8, 10, 49, 51, 1}},
		{"adjacent odd gaps", [4]Card{6, 10, 20, 47}, []Card{7, 9, 12, 14, 16, 18}},
		{"all odd single-card gaps", [4]Card{0, 2, 4, 6}, []Card{}},
		{"all odd wide gap", [4]Card{0, 10, 12, 14}, []Card{2, 4, 6, 8}},
		{"all even gaps", [4]Card{0, 1, 2, 3}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.four))
		})
	}
}

func TestCandidatesDeterministic(t *testing.T) {
	t.Parallel()
	four := [4]Card{6, 10, 20, 47}
	first := Candidates(four)
	for range 10 {
		assert.Equal(t, first, Candidates(four))
	}
}

func TestCandidatesBoundAllFourCardSets(t *testing.T) {
	skipExhaustive(t)
	t.Parallel()

	longest := 0
	forEachSubset(SelectionSize, func(i int, cards []Card) {
		four := [4]Card(cards)
		list := Candidates(four)
		if len(list) > 24 {
			t.Fatalf("set %d %v: %d candidates", i, cards, len(list))
		}
		shown := NewCardSet(cards...)
		var listed CardSet
		for _, c := range list {
			if !c.Valid() || shown.Has(c) || listed.Has(c) {
				t.Fatalf("set %d %v: bad candidate %d in %v", i, cards, c, list)
			}
			listed.Add(c)
		}
		longest = max(longest, len(list))
	})
	assert.Equal(t, 24, longest, "the bound should be tight")
}
