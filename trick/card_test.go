package trick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardLayout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		card Card
		suit uint8
		rank uint8
		str  string
	}{
		{0, Clubs, 0, "2c"},
		{12, Clubs, 12, "Ac"},
		{13, Diamonds, 0, "2d"},
		{30, Hearts, 4, "6h"},
		{51, Spades, 12, "As"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.suit, tt.card.Suit(), "suit of %d", tt.card)
		assert.Equal(t, tt.rank, tt.card.Rank(), "rank of %d", tt.card)
		assert.Equal(t, tt.str, tt.card.String())
		assert.Equal(t, tt.card, NewCard(tt.rank, tt.suit))
	}
	assert.Equal(t, "??", Card(52).String())
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{name: "ace of spades", input: "As", want: 51},
		{name: "lower case", input: "tc", want: 8},
		{name: "upper suit", input: "KD", want: 24},
		{name: "number", input: "47", want: 47},
		{name: "zero", input: "0", want: 0},
		{name: "number out of range", input: "52", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "too long", input: "Asd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	t.Parallel()
	for c := Card(0); c < NumCards; c++ {
		got, err := ParseCard(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	got, err := ParseCards("3c", "4c,9s", "Ac")
	require.NoError(t, err)
	assert.Equal(t, []Card{1, 2, 46, 12}, got)

	got, err = ParseCards("3c4c9sAc")
	require.NoError(t, err)
	assert.Equal(t, []Card{1, 2, 46, 12}, got)

	got, err = ParseCards("3 4 8 12 47")
	require.NoError(t, err)
	assert.Equal(t, []Card{3, 4, 8, 12, 47}, got)

	_, err = ParseCards("3c4x")
	assert.Error(t, err)
}

func TestCardSet(t *testing.T) {
	t.Parallel()
	s := NewCardSet(47, 3, 12)
	assert.Equal(t, 3, s.Count())
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(4))
	s.Add(51)
	s.Add(0)
	assert.Equal(t, []Card{0, 3, 12, 47, 51}, s.Cards())
	assert.Equal(t, "2c 5c Ac Ts As", FormatCards(s.Cards()))
}
