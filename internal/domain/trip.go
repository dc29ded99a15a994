// Package domain contains the core data types and business rules for the
// trip planner. It has no dependencies on storage or transport and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate; participants, activities and links all
// belong to exactly one trip.
// IsConfirmed is monotonic: once true it never reverts.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTrip carries the inputs for trip creation: the trip itself, its owner
// and the addresses to invite.
type NewTrip struct {
	Destination  string
	StartsAt     time.Time
	EndsAt       time.Time
	OwnerName    string
	OwnerEmail   string
	InviteEmails []string
}

// TripUpdate carries the mutable fields of a trip.
type TripUpdate struct {
	ID          uuid.UUID
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
}
