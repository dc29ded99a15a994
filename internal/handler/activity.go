package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripplanner/backend/internal/domain"
)

// CreateActivity handles POST /trips/{tripId}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	var body CreateActivityRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, "")
		return
	}

	a, err := s.activities.Create(r.Context(), domain.Activity{
		TripID:   tripID,
		Title:    body.Title,
		OccursAt: body.OccursAt,
	})
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, CreateActivityResponse{ActivityID: a.ID})
}

// ListActivities handles GET /trips/{tripId}/activities. Activities come back
// grouped by calendar day, every day of the trip present.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	days, err := s.activities.Schedule(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	out := make([]DaySchedule, 0, len(days))
	for _, d := range days {
		acts := make([]Activity, 0, len(d.Activities))
		for _, a := range d.Activities {
			acts = append(acts, Activity{ID: a.ID, Title: a.Title, OccursAt: a.OccursAt})
		}
		out = append(out, DaySchedule{Date: openapi_types.Date{Time: d.Date}, Activities: acts})
	}
	writeJSON(w, http.StatusOK, ActivitiesResponse{Activities: out})
}
