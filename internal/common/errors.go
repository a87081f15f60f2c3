package common

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	// ErrMalformedID is returned by a store when an id cannot be parsed as the
	// backend's identifier type.
	ErrMalformedID = errors.New("malformatted id")
)
