package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person invited to, or owning, a trip.
//
// Name stays nil for invitees until they supply one. Exactly one participant
// per trip has IsOwner set, and it is created already confirmed.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Name        *string   `json:"name"`
	Email       string    `json:"email"`
	IsOwner     bool      `json:"is_owner"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName returns the participant's name, or the email when no name is known.
func (p Participant) DisplayName() string {
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	return p.Email
}
