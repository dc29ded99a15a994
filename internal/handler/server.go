// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, in domain.NewTrip) (domain.Trip, []domain.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, u domain.TripUpdate) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) (service.ConfirmTripResult, error)
}

// ParticipantServicer defines the operations the participant handlers depend on.
type ParticipantServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, bool, error)
	Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error)
}

// ActivityServicer defines the operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	Schedule(ctx context.Context, tripID uuid.UUID) ([]domain.DaySchedule, error)
}

// LinkServicer defines the operations the link handlers depend on.
type LinkServicer interface {
	Create(ctx context.Context, l domain.Link) (domain.Link, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// ItineraryServicer defines the export operation.
type ItineraryServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryRow, error)
}

// Server holds every handler dependency.
type Server struct {
	trips        TripServicer
	participants ParticipantServicer
	activities   ActivityServicer
	links        LinkServicer
	itinerary    ItineraryServicer
}

// NewServer constructs the Server with all its dependencies.
// Tests may pass nil for services their routes never reach.
func NewServer(
	trips TripServicer,
	participants ParticipantServicer,
	activities ActivityServicer,
	links LinkServicer,
	itinerary ItineraryServicer,
) *Server {
	return &Server{
		trips:        trips,
		participants: participants,
		activities:   activities,
		links:        links,
		itinerary:    itinerary,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Routes returns the API router. Cross-cutting middleware (request id,
// logging, recovery, CORS, body limits) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Get("/confirm", s.ConfirmTrip)
			r.Get("/participants", s.ListParticipants)
			r.Post("/invites", s.CreateInvite)
			r.Post("/activities", s.CreateActivity)
			r.Get("/activities", s.ListActivities)
			r.Post("/links", s.CreateLink)
			r.Get("/links", s.ListLinks)
			r.Get("/itinerary", s.GetItinerary)
		})
	})

	r.Route("/participants/{participantId}", func(r chi.Router) {
		r.Get("/", s.GetParticipant)
		r.Get("/confirm", s.ConfirmParticipant)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})

	return r
}
