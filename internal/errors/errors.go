package errors

import (
	"errors"
	"fmt"
)

// This package defines a centralized set of sentinel errors for the application.
// Services return these (wrapped with context via %w) and the API and live
// layers use errors.Is to map them to HTTP statuses or close codes.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation could not be completed because
	// it conflicts with the current state of a resource.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the authenticated user is not authorized
	// to perform the requested action.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected error on the server.
	ErrInternal = errors.New("internal server error")

	// ErrAlreadyPending is returned when a generation is requested while any
	// chat of the same user still has one in flight. Callers may retry later.
	ErrAlreadyPending = fmt.Errorf("%w: a generation is already pending", ErrConflict)
)
