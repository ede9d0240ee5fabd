package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a symbol or blockchain with no catalog entry.
	ErrNotFound = errors.New("asset not found")

	// ErrValidation reports a missing or malformed request parameter.
	ErrValidation = errors.New("invalid request")
)

// UpstreamError wraps a failed call to the external statistics provider.
// The refresh pipeline treats it as a partial-data condition: log, continue
// with stats absent, never fail the request.
type UpstreamError struct {
	Blockchain string
	Status     int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream stats for %s: unexpected status %d", e.Blockchain, e.Status)
	}
	return fmt.Sprintf("upstream stats for %s: %v", e.Blockchain, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
