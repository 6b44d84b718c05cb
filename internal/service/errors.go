package service

import (
	"errors"

	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

// errAnonymous is returned when a mutation is attempted without a viewer.
var errAnonymous = domainerrors.Unauthorized("authentication credentials were not provided")

// fromStore translates a store sentinel into the domain taxonomy, keeping
// the store's message. Errors that are not store errors pass through.
func fromStore(err error) error {
	var se *store.Error
	if !errors.As(err, &se) {
		return err
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(se.Message).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflict(se.Message).WithCause(err)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation(se.Message).WithCause(err)
	}
	return err
}

// requireViewer rejects anonymous callers of a mutation.
func requireViewer(viewerID string) error {
	if viewerID == "" {
		return errAnonymous
	}
	return nil
}
