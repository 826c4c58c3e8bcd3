package domain

import (
	"errors"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrNotebookNotFound signals a missing notebook (or one owned by somebody else).
	ErrNotebookNotFound = errors.New("notebook not found")
	// ErrInvalidRequest signals request parameters that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidCalculation signals calculator inputs outside their valid range.
	ErrInvalidCalculation = errors.New("invalid calculation input")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)
