package service

import (
	"fmt"

	"catalog-browser/internal/catalog"
)

// ErrInvalidEndpoint is re-exported so callers of the adapter need only this package.
var ErrInvalidEndpoint = catalog.ErrInvalidEndpoint

// RemoteError reports a network failure or a non-2xx answer from TMDB.
// Status is 0 when no HTTP response was received.
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote error: %s", e.Message)
	}
	return fmt.Sprintf("remote error (HTTP %d): %s", e.Status, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// DecodeError reports a response payload that could not be understood.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
