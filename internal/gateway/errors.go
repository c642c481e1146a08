package gateway

import (
	"errors"
	"fmt"
)

// Intent validation failures. Reported to the sender only; the
// connection stays open and nothing is persisted.
var (
	ErrMalformedIntent = errors.New("message must have either a receiver or room, not both or neither")
	ErrEmptyContent    = errors.New("message content is empty")
)

// PersistenceError wraps a store write failure. The sender gets a
// single error event and may retry the same intent; no broadcast has
// happened.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist message: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
