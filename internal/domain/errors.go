package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a field
// rule (e.g. destination too short, malformed email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidWindow is returned when a trip's start/end instants break a
// temporal rule: start in the past, or end before start.
var ErrInvalidWindow = errors.New("invalid trip window")

// ErrOutOfWindow is returned when an activity falls outside its trip's window.
// Use ErrBeforeTripStart / ErrAfterTripEnd to tell the two cases apart;
// both satisfy errors.Is(err, ErrOutOfWindow).
var ErrOutOfWindow = errors.New("activity out of trip window")

var (
	ErrBeforeTripStart = fmt.Errorf("%w: before trip start", ErrOutOfWindow)
	ErrAfterTripEnd    = fmt.Errorf("%w: after trip end", ErrOutOfWindow)
)

// ErrDuplicateEmail is returned when the owner and invitee addresses of a new
// trip are not pairwise distinct.
var ErrDuplicateEmail = errors.New("duplicate email")

// ErrAlreadyConfirmed is returned when a trip that is already confirmed is
// confirmed again. Exactly one caller ever observes the transition; every
// other caller gets this error.
// Handlers should map this to HTTP 409 Conflict.
var ErrAlreadyConfirmed = errors.New("already confirmed")

// ErrUnavailable is returned when a collaborator (database, mail server)
// timed out or could not be reached.
// Handlers should map this to HTTP 503 Service Unavailable.
var ErrUnavailable = errors.New("unavailable")
