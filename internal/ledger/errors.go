package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an edit or delete targets an unknown identifier.
var ErrNotFound = errors.New("not found")

// ValidationError reports the first input rule that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DuplicateIDError reports a uniqueness violation on tender or transaction ids.
type DuplicateIDError struct {
	Kind string // "tender" or "transaction"
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s id %s already exists", e.Kind, e.ID)
}

// PersistenceError wraps a failure of the gateway to load or save the document.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s document: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SaveResult reports whether the snapshot taken after a mutation reached the
// gateway. A failed save never rolls back the in-memory change.
type SaveResult struct {
	Err error
}

// Saved reports whether the snapshot was persisted.
func (r SaveResult) Saved() bool {
	return r.Err == nil
}
