package handler

import (
	"net/http"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/service"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, "")
		return
	}

	trip, members, err := s.trips.Create(r.Context(), requestToNewTrip(body))
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, CreateTripResponse{
		TripID:       trip.ID,
		Participants: participantsToResponse(members),
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, TripResponse{Trip: tripToResponse(trip)})
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	var body UpdateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, "")
		return
	}

	updated, err := s.trips.Update(r.Context(), domain.TripUpdate{
		ID:          id,
		Destination: body.Destination,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
	})
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, TripResponse{Trip: tripToResponse(updated)})
}

// ConfirmTrip handles GET /trips/{tripId}/confirm. It is a GET because the
// link is followed from an email client.
func (s *Server) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	res, err := s.trips.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, ConfirmTripResponse{
		Trip:          tripToResponse(res.Trip),
		Notifications: reportToResponse(res.Notifications),
	})
}

// --- mapping helpers --------------------------------------------------------

// requestToNewTrip converts a CreateTripRequest body into a domain.NewTrip.
// A missing invite list is the same as an empty one.
func requestToNewTrip(body CreateTripRequest) domain.NewTrip {
	invites := make([]string, 0, len(body.EmailsToInvite))
	for _, e := range body.EmailsToInvite {
		invites = append(invites, string(e))
	}
	return domain.NewTrip{
		Destination:  body.Destination,
		StartsAt:     body.StartsAt,
		EndsAt:       body.EndsAt,
		OwnerName:    body.OwnerName,
		OwnerEmail:   string(body.OwnerEmail),
		InviteEmails: invites,
	}
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt,
		EndsAt:      t.EndsAt,
		IsConfirmed: t.IsConfirmed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func reportToResponse(r service.NotificationReport) NotificationReport {
	return NotificationReport{
		Sent:                 r.Sent,
		Failed:               r.Failed,
		FailedParticipantIDs: r.FailedParticipantIDs,
	}
}
