package showtimes

import (
	"errors"
	"fmt"
)

var (
	// ErrNoShowtime is returned by the fetcher when no document is available
	// at all: never fetched, and the current refresh attempt failed. Callers
	// cannot distinguish "never fetched" from "upstream down with no prior
	// snapshot".
	ErrNoShowtime = errors.New("no showtime document available")

	// ErrMalformedResponse marks an upstream payload that could not be used:
	// unparseable JSON or an empty result array. Treated as transient, same
	// as a network failure.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrUpstreamUnavailable is returned by a refresh once all retry
	// attempts are exhausted. It wraps the last attempt's failure.
	ErrUpstreamUnavailable = errors.New("upstream feed unavailable")

	// ErrSeatNotFound is returned by seat queries when the row label is
	// unknown or the seat number falls outside the row.
	ErrSeatNotFound = errors.New("seat not found")
)

// StatusError is a non-2xx response from the upstream feed. Every status is
// treated as transient and retried, including 404: the feed momentarily 404s
// while a new document is being published. Keeping that rule here, as a named
// classification, is deliberate.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// IsTransient reports whether an upstream error should be retried. In this
// system every upstream failure is transient; the distinction exists so the
// 404-is-transient policy stays visible and testable.
func IsTransient(err error) bool {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return true
	case errors.Is(err, ErrMalformedResponse):
		return true
	default:
		return err != nil
	}
}
