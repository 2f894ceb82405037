package trick

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaps(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{0, 3, 3, 34, 7}, Gaps([]Card{3, 4, 8, 12, 47}))
	assert.Equal(t, []int{0, 0, 0, 0, 47}, Gaps([]Card{0, 1, 2, 3, 4}))
	assert.Equal(t, []int{12, 12, 12, 7, 4}, Gaps([]Card{0, 13, 26, 39, 47}))
	assert.Equal(t, []int{51}, Gaps([]Card{9}))
}

func TestPattern(t *testing.T) {
	t.Parallel()
	p, err := ParsePattern("01101")
	require.NoError(t, err)
	assert.Equal(t, "01101", p.String())
	assert.True(t, p.Odd(1))
	assert.False(t, p.Odd(0))
	assert.Equal(t, Case01011, p.Rotate(3))
	assert.Equal(t, p, p.Rotate(5))
	assert.Equal(t, p, PatternOf([]int{0, 3, 3, 34, 7}))

	_, err = ParsePattern("0120")
	assert.Error(t, err)
	_, err = ParsePattern("")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards []Card
		want  Case
	}{
		{"mixed hand", []Card{3, 4, 8, 12, 47}, Case{Case01011, 3}},
		{"run of five", []Card{0, 1, 2, 3, 4}, Case{Case00001, 0}},
		{"spread hand", []Card{0, 13, 26, 39, 47}, Case{Case00001, 4}},
		{"three odd in a row", []Card{0, 2, 4, 6, 7}, Case{Case00111, 3}},
		{"all odd gaps", []Card{0, 2, 4, 6, 8}, Case{Case11111, 0}},
		{"four alternating", []Card{3, 4, 12, 47}, Case{Case0101, 0}},
		{"four adjacent odd", []Card{6, 10, 20, 47}, Case{Case0011, 2}},
		{"four all odd", []Card{0, 2, 4, 6}, Case{Case1111, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.cards)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Pattern, PatternOf(Gaps(tt.cards)).Rotate(got.Rotation))
		})
	}
}

func TestClassifyRejects(t *testing.T) {
	t.Parallel()

	_, err := Classify([]Card{0, 1, 2, 3})
	assert.True(t, errors.Is(err, ErrNoParityCase), "all-even gaps: %v", err)

	_, err = Classify([]Card{0, 1, 2})
	assert.True(t, errors.Is(err, ErrCardCount))
}

func TestRotate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Card{12, 47, 3, 4, 8}, Rotate([]Card{3, 4, 8, 12, 47}, 3))
	assert.Equal(t, []int{1, 2, 3}, Rotate([]int{1, 2, 3}, 0))
}

func TestGapInvariantsAllHands(t *testing.T) {
	skipExhaustive(t)
	t.Parallel()

	counts := make(map[Pattern]int)
	forEachSubset(HandSize, func(i int, cards []Card) {
		gaps := Gaps(cards)
		sum := 0
		for _, g := range gaps {
			sum += g
		}
		if sum != 47 {
			t.Fatalf("hand %d %v: gaps sum to %d", i, cards, sum)
		}
		c, err := Classify(cards)
		if err != nil {
			t.Fatalf("hand %d %v: %v", i, cards, err)
		}
		counts[c.Pattern]++
	})

	total := 0
	for _, p := range fiveCardCases {
		assert.Positive(t, counts[p], "case %s never seen", p)
		total += counts[p]
	}
	assert.Equal(t, 2598960, total)
}

func TestGapInvariantsAllFourCardSets(t *testing.T) {
	skipExhaustive(t)
	t.Parallel()

	unclassified := 0
	forEachSubset(SelectionSize, func(i int, cards []Card) {
		gaps := Gaps(cards)
		sum, odd := 0, 0
		for _, g := range gaps {
			sum += g
			odd += g % 2
		}
		if sum != 48 {
			t.Fatalf("set %d %v: gaps sum to %d", i, cards, sum)
		}
		_, err := Classify(cards)
		switch {
		case odd == 0:
			if !errors.Is(err, ErrNoParityCase) {
				t.Fatalf("set %d %v: all-even gaps classified", i, cards)
			}
			unclassified++
		case err != nil:
			t.Fatalf("set %d %v: %v", i, cards, err)
		}
	})
	assert.Positive(t, unclassified)
}
