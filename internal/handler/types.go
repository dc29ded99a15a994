package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types for the JSON API. They mirror the schemas in spec/openapi.yaml
// and are kept separate from the domain types so the storage model can change
// without breaking clients.

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail under an "error" key.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Destination    string                `json:"destination"`
	StartsAt       time.Time             `json:"starts_at"`
	EndsAt         time.Time             `json:"ends_at"`
	OwnerName      string                `json:"owner_name"`
	OwnerEmail     openapi_types.Email   `json:"owner_email"`
	EmailsToInvite []openapi_types.Email `json:"emails_to_invite"`
}

// UpdateTripRequest is the body of PUT /trips/{tripId}.
type UpdateTripRequest struct {
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// CreateInviteRequest is the body of POST /trips/{tripId}/invites.
type CreateInviteRequest struct {
	Email openapi_types.Email `json:"email"`
}

// CreateActivityRequest is the body of POST /trips/{tripId}/activities.
type CreateActivityRequest struct {
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

// CreateLinkRequest is the body of POST /trips/{tripId}/links.
type CreateLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Participant struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Name        *string   `json:"name"`
	Email       string    `json:"email"`
	IsOwner     bool      `json:"is_owner"`
	IsConfirmed bool      `json:"is_confirmed"`
}

type Activity struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

// DaySchedule is one calendar day of a trip. Date is a plain "2006-01-02" date.
type DaySchedule struct {
	Date       openapi_types.Date `json:"date"`
	Activities []Activity         `json:"activities"`
}

type Link struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	URL   string    `json:"url"`
}

// NotificationReport tells the caller how an invitation wave went.
type NotificationReport struct {
	Sent                 int         `json:"sent"`
	Failed               int         `json:"failed"`
	FailedParticipantIDs []uuid.UUID `json:"failed_participant_ids,omitempty"`
}

// ItineraryRow is one line of an itinerary export. Activity fields are null
// on the single row exported for a trip without activities.
type ItineraryRow struct {
	TripID           uuid.UUID  `json:"trip_id"`
	TripDestination  string     `json:"trip_destination"`
	TripStartsAt     time.Time  `json:"trip_starts_at"`
	TripEndsAt       time.Time  `json:"trip_ends_at"`
	TripConfirmed    bool       `json:"trip_confirmed"`
	ActivityTitle    *string    `json:"activity_title"`
	ActivityOccursAt *time.Time `json:"activity_occurs_at"`
}

type CreateTripResponse struct {
	TripID       uuid.UUID     `json:"trip_id"`
	Participants []Participant `json:"participants"`
}

type TripResponse struct {
	Trip Trip `json:"trip"`
}

type ConfirmTripResponse struct {
	Trip          Trip               `json:"trip"`
	Notifications NotificationReport `json:"notifications"`
}

type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

type ParticipantResponse struct {
	Participant Participant `json:"participant"`
}

type ConfirmParticipantResponse struct {
	Participant    Participant `json:"participant"`
	NewlyConfirmed bool        `json:"newly_confirmed"`
}

type CreateInviteResponse struct {
	ParticipantID uuid.UUID `json:"participant_id"`
}

type CreateActivityResponse struct {
	ActivityID uuid.UUID `json:"activity_id"`
}

type ActivitiesResponse struct {
	Activities []DaySchedule `json:"activities"`
}

type LinkResponse struct {
	Link Link `json:"link"`
}

type LinksResponse struct {
	Links []Link `json:"links"`
}
