package wire

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardtrick/trick"
)

func TestSelectionJSON(t *testing.T) {
	t.Parallel()
	msg := NewSelection(7, trick.Selection{3, 4, 47, 12})

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"selection","id":7,"cards":["5c","6c","Ts","Ac"]}`, string(data))

	var decoded Message
	require.NoError(t, json.Unmarshal(data, &decoded))
	sel, err := decoded.Selection()
	require.NoError(t, err)
	assert.Equal(t, trick.Selection{3, 4, 47, 12}, sel)
}

func TestRevealJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(NewReveal(7, 8))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"reveal","id":7,"card":"Tc"}`, string(data))

	var decoded Message
	require.NoError(t, json.Unmarshal([]byte(`{"type":"reveal","id":2,"card":"tc"}`), &decoded))
	card, err := decoded.Reveal()
	require.NoError(t, err)
	assert.Equal(t, trick.Card(8), card)
}

func TestErrorReply(t *testing.T) {
	t.Parallel()
	msg := NewError(3, trick.ErrNotEncoded)
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","id":3,"error":"trick: selection is not an encoder output"}`, string(data))

	_, err = msg.Reveal()
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, uint64(3), remote.ID)
	assert.Contains(t, err.Error(), "selection 3")
}

func TestWrongDirection(t *testing.T) {
	t.Parallel()
	_, err := NewReveal(1, 0).Selection()
	assert.ErrorIs(t, err, ErrUnexpectedType)

	_, err = NewSelection(1, trick.Selection{0, 1, 2, 3}).Reveal()
	assert.ErrorIs(t, err, ErrUnexpectedType)
}

func TestBadSelection(t *testing.T) {
	t.Parallel()
	dup := &Message{Type: TypeSelection, Cards: []string{"2c", "2c", "3c", "4c"}}
	_, err := dup.Selection()
	assert.ErrorIs(t, err, trick.ErrDuplicateCard)

	short := &Message{Type: TypeSelection, Cards: []string{"2c", "3c"}}
	_, err = short.Selection()
	assert.ErrorIs(t, err, trick.ErrCardCount)
}
