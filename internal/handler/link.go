package handler

import (
	"net/http"

	"github.com/tripplanner/backend/internal/domain"
)

// CreateLink handles POST /trips/{tripId}/links.
func (s *Server) CreateLink(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	var body CreateLinkRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, "")
		return
	}

	l, err := s.links.Create(r.Context(), domain.Link{TripID: tripID, Title: body.Title, URL: body.URL})
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, LinkResponse{Link: linkToResponse(l)})
}

// ListLinks handles GET /trips/{tripId}/links.
func (s *Server) ListLinks(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	links, err := s.links.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	out := make([]Link, 0, len(links))
	for _, l := range links {
		out = append(out, linkToResponse(l))
	}
	writeJSON(w, http.StatusOK, LinksResponse{Links: out})
}

func linkToResponse(l domain.Link) Link {
	return Link{ID: l.ID, Title: l.Title, URL: l.URL}
}
