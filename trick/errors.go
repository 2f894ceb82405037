package trick

import (
	"errors"
	"fmt"
)

var (
	// ErrCardCount is returned when a hand or selection has the wrong number of cards.
	ErrCardCount = errors.New("trick: wrong number of cards")

	// ErrCardRange is returned for a card outside [0, 52).
	ErrCardRange = errors.New("trick: card out of range")

	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("trick: duplicate card")

	// ErrNotEncoded is returned by a decoder given four cards that no hand
	// encodes to under its strategy.
	ErrNotEncoded = errors.New("trick: selection is not an encoder output")

	// ErrNoParityCase is returned by Classify when no rotation of the gap
	// parities matches a reference pattern.
	ErrNoParityCase = errors.New("trick: no parity case matches")

	// ErrUnknownStrategy is returned by Lookup.
	ErrUnknownStrategy = errors.New("trick: unknown strategy")
)

// InputError describes a malformed hand or selection.
type InputError struct {
	Err    error
	Detail string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// validate checks that cards has exactly n distinct members in range and
// returns them as a set.
func validate(cards []Card, n int) (CardSet, error) {
	if len(cards) != n {
		return 0, &InputError{Err: ErrCardCount, Detail: fmt.Sprintf("got %d, want %d", len(cards), n)}
	}
	var set CardSet
	for _, c := range cards {
		if !c.Valid() {
			return 0, &InputError{Err: ErrCardRange, Detail: fmt.Sprintf("%d", c)}
		}
		if set.Has(c) {
			return 0, &InputError{Err: ErrDuplicateCard, Detail: c.String()}
		}
		set.Add(c)
	}
	return set, nil
}
