package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFilter indicates a report filter failed validation.
	ErrInvalidFilter = errors.New("invalid filter")
)
