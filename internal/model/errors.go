package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIntent is returned for malformed intents. Storage is never touched.
	ErrInvalidIntent = errors.New("invalid transaction intent")

	// ErrReferenceNotFound is returned when a referenced account, category or
	// book does not exist or belongs to another book.
	ErrReferenceNotFound = errors.New("referenced record not found")

	// ErrNotFound is returned when the targeted record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageFailure is returned when an atomic unit could not be committed.
	ErrStorageFailure = errors.New("storage failure")

	// ErrValidation is returned for malformed books, accounts and categories.
	ErrValidation = errors.New("validation failed")

	ErrDuplicate    = errors.New("record already exists")
	ErrAccountInUse = errors.New("account has a balance or postings")
)

// IntentError describes why an intent was rejected. Index is the position
// of the intent inside a batch, or -1 for a single intent.
type IntentError struct {
	Index  int
	Field  string
	Reason string
}

func (e *IntentError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid intent #%d: %s: %s", e.Index+1, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid intent: %s: %s", e.Field, e.Reason)
}

func (e *IntentError) Unwrap() error {
	return ErrInvalidIntent
}

// IsClientError reports errors caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidIntent) ||
		errors.Is(err, ErrReferenceNotFound) ||
		errors.Is(err, ErrValidation)
}
