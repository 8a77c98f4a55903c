package service

import (
	"errors"
	"fmt"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

var taxonomy = []error{
	model.ErrInvalidIntent,
	model.ErrReferenceNotFound,
	model.ErrNotFound,
	model.ErrStorageFailure,
	model.ErrValidation,
	model.ErrDuplicate,
	model.ErrAccountInUse,
}

// translate maps store errors onto the ledger error taxonomy. Errors that
// already carry a taxonomy sentinel pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range taxonomy {
		if errors.Is(err, target) {
			return err
		}
	}

	switch {
	case errors.Is(err, store.ErrForeignKey):
		return fmt.Errorf("%w: %w", model.ErrReferenceNotFound, err)
	case errors.Is(err, store.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", model.ErrNotFound, err)
	case errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%w: %w", model.ErrDuplicate, err)
	default:
		return fmt.Errorf("%w: %w", model.ErrStorageFailure, err)
	}
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrNotFound, fmt.Sprintf(format, args...))
}

func referenceNotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrReferenceNotFound, fmt.Sprintf(format, args...))
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", model.ErrValidation, err)
}

// withIndex stamps the batch position onto an intent error. Other errors
// are wrapped with the position so the caller can still match them.
func withIndex(err error, index int) error {
	var ie *model.IntentError
	if errors.As(err, &ie) {
		return &model.IntentError{Index: index, Field: ie.Field, Reason: ie.Reason}
	}
	return fmt.Errorf("intent #%d: %w", index+1, err)
}
