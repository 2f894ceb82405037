package trick

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		strategy Strategy
		hand     []Card
		want     Selection
		hidden   Card
	}{
		{"gap mixed hand", GapStrategy{}, []Card{3, 4, 8, 12, 47}, Selection{3, 4, 47, 12}, 8},
		{"gap unsorted input", GapStrategy{}, []Card{47, 8, 3, 12, 4}, Selection{3, 4, 47, 12}, 8},
		{"gap run of five", GapStrategy{}, []Card{0, 1, 2, 3, 4}, Selection{0, 1, 2, 4}, 3},
		{"gap spread hand", GapStrategy{}, []Card{0, 13, 26, 39, 47}, Selection{13, 0, 39, 47}, 26},
		{"gap all odd gaps", GapStrategy{}, []Card{0, 2, 4, 6, 8}, Selection{0, 4, 6, 8}, 2},
		{"gap top of deck", GapStrategy{}, []Card{47, 48, 49, 50, 51}, Selection{47, 48, 49, 51}, 50},
		{"suit mixed hand", SuitStrategy{}, []Card{3, 4, 8, 12, 47}, Selection{3, 8, 12, 47}, 4},
		{"suit spread hand", SuitStrategy{}, []Card{0, 13, 26, 39, 47}, Selection{47, 26, 0, 13}, 39},
		{"complement mixed hand", ComplementStrategy{}, []Card{3, 4, 8, 12, 47}, Selection{4, 8, 47, 12}, 3},
		{"complement run of five", ComplementStrategy{}, []Card{0, 1, 2, 3, 4}, Selection{1, 2, 3, 4}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := tt.strategy.Encode(tt.hand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel)

			got, err := tt.strategy.Decode(sel)
			require.NoError(t, err)
			assert.Equal(t, tt.hidden, got)
		})
	}
}

func TestDefaultStrategy(t *testing.T) {
	t.Parallel()
	sel, err := Encode([]Card{3, 4, 8, 12, 47})
	require.NoError(t, err)
	assert.Equal(t, "5c 6c Ts Ac", sel.String())

	card, err := Decode(sel)
	require.NoError(t, err)
	assert.Equal(t, Card(8), card)
}

func TestEncodeRejectsMalformedHands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		hand []Card
		want error
	}{
		{"too few", []Card{1, 2, 3, 4}, ErrCardCount},
		{"too many", []Card{1, 2, 3, 4, 5, 6}, ErrCardCount},
		{"empty", nil, ErrCardCount},
		{"duplicate", []Card{1, 2, 3, 4, 4}, ErrDuplicateCard},
		{"out of range", []Card{1, 2, 3, 4, 52}, ErrCardRange},
	}
	for _, s := range Strategies() {
		for _, tt := range tests {
			t.Run(s.Name()+"/"+tt.name, func(t *testing.T) {
				_, err := s.Encode(tt.hand)
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.want), "got %v", err)

				var inputErr *InputError
				assert.True(t, errors.As(err, &inputErr))
			})
		}
	}
}

func TestDecodeRejectsMalformedSelections(t *testing.T) {
	t.Parallel()
	for _, s := range Strategies() {
		_, err := s.Decode(Selection{1, 2, 2, 3})
		assert.True(t, errors.Is(err, ErrDuplicateCard), "%s: %v", s.Name(), err)

		_, err = s.Decode(Selection{1, 2, 3, 60})
		assert.True(t, errors.Is(err, ErrCardRange), "%s: %v", s.Name(), err)
	}
}

func TestGapDecodeRejectsForeignSelections(t *testing.T) {
	t.Parallel()

	// All gaps even: no hand leaves these four behind.
	_, err := GapStrategy{}.Decode(Selection{0, 1, 2, 3})
	assert.True(t, errors.Is(err, ErrNotEncoded), "got %v", err)

	// Four candidates, but the ordering asks for the twenty-fourth.
	_, err = GapStrategy{}.Decode(Selection{14, 12, 10, 0})
	assert.True(t, errors.Is(err, ErrNotEncoded), "got %v", err)
}

func TestSuitDecodeRejectsShownCard(t *testing.T) {
	t.Parallel()
	// First card 2c with step 1 names 3c, which is already shown.
	_, err := SuitStrategy{}.Decode(Selection{0, 1, 20, 30})
	assert.True(t, errors.Is(err, ErrNotEncoded), "got %v", err)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"gap", "suit", "complement"} {
		s, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
	_, err := Lookup("barry")
	assert.True(t, errors.Is(err, ErrUnknownStrategy))

	all := Strategies()
	require.Len(t, all, 3)
	assert.Equal(t, Default.Name(), all[0].Name())
}

func TestNewSelection(t *testing.T) {
	t.Parallel()
	sel, err := NewSelection([]Card{12, 3, 47, 4})
	require.NoError(t, err)
	assert.Equal(t, [4]Card{3, 4, 12, 47}, sel.Sorted())
	assert.Equal(t, Selection{12, 3, 47, 4}, sel)
	assert.Equal(t, 4, sel.Set().Count())

	_, err = NewSelection([]Card{1, 2, 3})
	assert.True(t, errors.Is(err, ErrCardCount))
}

func TestRoundTripAllHands(t *testing.T) {
	skipExhaustive(t)
	for _, s := range Strategies() {
		t.Run(s.Name(), func(t *testing.T) {
			t.Parallel()
			forEachSubset(HandSize, func(i int, hand []Card) {
				sel, err := s.Encode(hand)
				if err != nil {
					t.Fatalf("hand %d %v: %v", i, hand, err)
				}
				held := NewCardSet(hand...)
				shown := sel.Set()
				if shown.Count() != 4 || shown&held != shown {
					t.Fatalf("hand %d %v: selection %v is not four cards of the hand", i, hand, sel)
				}
				got, err := s.Decode(sel)
				if err != nil {
					t.Fatalf("hand %d %v: decode %v: %v", i, hand, sel, err)
				}
				if shown|NewCardSet(got) != held || shown.Has(got) {
					t.Fatalf("hand %d %v: %v decoded to %v", i, hand, sel, got)
				}
			})
		})
	}
}
