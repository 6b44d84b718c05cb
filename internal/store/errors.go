package store

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a persistence error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same status code, so
// errors.Is(ErrNotFound.WithMessage("x"), ErrNotFound) holds.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Sentinel errors.
var (
	// ErrNotFound is returned when a row does not exist, or when a write
	// references a row that does not exist (foreign key violation).
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	// ErrAlreadyExists is returned when a UNIQUE constraint rejects a write.
	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	// ErrInvalidInput is returned when a CHECK constraint rejects a write.
	ErrInvalidInput = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}
)

// Specific not-found variants.
var (
	ErrUserNotFound       = ErrNotFound.WithMessage("user not found")
	ErrTagNotFound        = ErrNotFound.WithMessage("tag not found")
	ErrIngredientNotFound = ErrNotFound.WithMessage("ingredient not found")
	ErrRecipeNotFound     = ErrNotFound.WithMessage("recipe not found")
	ErrRelationNotFound   = ErrNotFound.WithMessage("relation not found")
)

// ErrRecipeNameTaken is returned when another recipe already uses the name.
var ErrRecipeNameTaken = ErrAlreadyExists.WithMessage("recipe with this name already exists")

// User uniqueness violations.
var (
	ErrEmailTaken    = ErrAlreadyExists.WithMessage("user with this email already exists")
	ErrUsernameTaken = ErrAlreadyExists.WithMessage("user with this username already exists")
)
