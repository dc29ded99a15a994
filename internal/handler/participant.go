package handler

import (
	"net/http"

	"github.com/tripplanner/backend/internal/domain"
)

// ListParticipants handles GET /trips/{tripId}/participants.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	list, err := s.participants.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, ParticipantsResponse{Participants: participantsToResponse(list)})
}

// CreateInvite handles POST /trips/{tripId}/invites.
func (s *Server) CreateInvite(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	var body CreateInviteRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, "")
		return
	}

	p, err := s.participants.Invite(r.Context(), tripID, string(body.Email))
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, CreateInviteResponse{ParticipantID: p.ID})
}

// GetParticipant handles GET /participants/{participantId}.
func (s *Server) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	p, err := s.participants.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "participant not found")
		return
	}

	writeJSON(w, http.StatusOK, ParticipantResponse{Participant: participantToResponse(p)})
}

// ConfirmParticipant handles GET /participants/{participantId}/confirm.
// Confirming twice is not an error; newly_confirmed tells the two cases apart.
func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	p, newly, err := s.participants.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "participant not found")
		return
	}

	writeJSON(w, http.StatusOK, ConfirmParticipantResponse{
		Participant:    participantToResponse(p),
		NewlyConfirmed: newly,
	})
}

func participantToResponse(p domain.Participant) Participant {
	return Participant{
		ID:          p.ID,
		TripID:      p.TripID,
		Name:        p.Name,
		Email:       p.Email,
		IsOwner:     p.IsOwner,
		IsConfirmed: p.IsConfirmed,
	}
}

func participantsToResponse(ps []domain.Participant) []Participant {
	out := make([]Participant, 0, len(ps))
	for _, p := range ps {
		out = append(out, participantToResponse(p))
	}
	return out
}
