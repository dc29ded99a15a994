package domain

import (
	"fmt"
	"time"
)

// ValidateTripWindow checks a proposed trip window against now.
// Only the first violated rule is reported, checked in this order:
//   - startsAt must not be before now.
//   - endsAt must not be before startsAt (a zero-length trip is valid).
//
// Comparison is at full instant precision.
func ValidateTripWindow(startsAt, endsAt, now time.Time) error {
	if startsAt.Before(now) {
		return fmt.Errorf("%w: start must not be in the past", ErrInvalidWindow)
	}
	if endsAt.Before(startsAt) {
		return fmt.Errorf("%w: end must not be before start", ErrInvalidWindow)
	}
	return nil
}

// ValidateActivityWithinTrip reports whether occursAt lies inside the inclusive
// window [tripStartsAt, tripEndsAt]. The returned error is ErrBeforeTripStart
// or ErrAfterTripEnd, both of which wrap ErrOutOfWindow.
func ValidateActivityWithinTrip(occursAt, tripStartsAt, tripEndsAt time.Time) error {
	if occursAt.Before(tripStartsAt) {
		return ErrBeforeTripStart
	}
	if occursAt.After(tripEndsAt) {
		return ErrAfterTripEnd
	}
	return nil
}
