package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist — or exists but belongs to another user. The two
// cases are deliberately indistinguishable so that probing for other users'
// trips reveals nothing. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUnknownActivity is returned by the trip service when a proposed
// itinerary references an activity id that does not exist in the catalog.
// The whole creation transaction rolls back; handlers should map this to
// HTTP 422 and name the offending id.
var ErrUnknownActivity = errors.New("unknown activity")

// ErrEmailTaken is returned on registration when the email (or phone) is
// already registered. Handlers should map this to HTTP 409.
var ErrEmailTaken = errors.New("already registered")

// ErrInvalidCredentials is returned on login for both an unknown email and a
// wrong password, so the response does not reveal which one was wrong.
// Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// detailError pairs a sentinel with a human-readable detail. errors.Is still
// matches the sentinel through Unwrap, and the detail travels alongside so
// handlers never have to dig it out of the message string.
type detailError struct {
	sentinel error
	detail   string
}

func (e *detailError) Error() string { return e.sentinel.Error() + ": " + e.detail }

func (e *detailError) Unwrap() error { return e.sentinel }

// WithDetail attaches a formatted detail to a sentinel error.
// The result matches errors.Is(err, sentinel) and carries the detail for
// Detail to retrieve.
func WithDetail(sentinel error, format string, args ...any) error {
	return &detailError{sentinel: sentinel, detail: fmt.Sprintf(format, args...)}
}

// Detail returns the detail attached with WithDetail anywhere in err's chain,
// or the empty string when there is none.
func Detail(err error) string {
	var de *detailError
	if errors.As(err, &de) {
		return de.detail
	}
	return ""
}
