// Package wire defines the JSON messages the assistant and magician
// exchange over a websocket.
package wire

import (
	"errors"
	"fmt"

	"github.com/lox/cardtrick/trick"
)

// MessageType identifies the type of message
type MessageType string

const (
	// Assistant -> Magician
	TypeSelection MessageType = "selection"

	// Magician -> Assistant
	TypeReveal MessageType = "reveal"
	TypeError  MessageType = "error"
)

// Message is the single envelope used in both directions. Cards is set on
// selections, Card on reveals and Error on errors.
type Message struct {
	Type  MessageType `json:"type"`
	ID    uint64      `json:"id"`
	Cards []string    `json:"cards,omitempty"`
	Card  string      `json:"card,omitempty"`
	Error string      `json:"error,omitempty"`
}

// ErrUnexpectedType is returned when a message arrives in the wrong
// direction or with an unknown type.
var ErrUnexpectedType = errors.New("wire: unexpected message type")

// NewSelection builds the message the assistant sends for one hand.
func NewSelection(id uint64, sel trick.Selection) *Message {
	cards := make([]string, len(sel))
	for i, c := range sel {
		cards[i] = c.String()
	}
	return &Message{Type: TypeSelection, ID: id, Cards: cards}
}

// NewReveal builds the magician's answer to selection id.
func NewReveal(id uint64, card trick.Card) *Message {
	return &Message{Type: TypeReveal, ID: id, Card: card.String()}
}

// NewError builds an error reply to message id.
func NewError(id uint64, err error) *Message {
	return &Message{Type: TypeError, ID: id, Error: err.Error()}
}

// Selection parses the cards of a selection message.
func (m *Message) Selection() (trick.Selection, error) {
	if m.Type != TypeSelection {
		return trick.Selection{}, fmt.Errorf("%w: %q", ErrUnexpectedType, m.Type)
	}
	cards, err := trick.ParseCards(m.Cards...)
	if err != nil {
		return trick.Selection{}, err
	}
	return trick.NewSelection(cards)
}

// Reveal returns the card named by a reveal message, or the magician's
// error for an error message.
func (m *Message) Reveal() (trick.Card, error) {
	switch m.Type {
	case TypeReveal:
		return trick.ParseCard(m.Card)
	case TypeError:
		return 0, &RemoteError{ID: m.ID, Message: m.Error}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedType, m.Type)
	}
}

// RemoteError is an error reported by the other end of the connection.
type RemoteError struct {
	ID      uint64
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("magician rejected selection %d: %s", e.ID, e.Message)
}
