package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a titled event scheduled at an instant inside its trip's window.
// The window check happens once, at creation, against the trip's stored bounds.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Title     string    `json:"title"`
	OccursAt  time.Time `json:"occurs_at"`
	CreatedAt time.Time `json:"created_at"`
}
