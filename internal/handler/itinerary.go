// itinerary.go implements GET /trips/{tripId}/itinerary.
// Returns a trip and its activities as a flat table.
// Supports ?format=csv (CSV) or default (JSON).

package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_destination", "trip_starts_at", "trip_ends_at", "trip_confirmed",
	"activity_title", "activity_occurs_at",
}

// GetItinerary handles GET /trips/{tripId}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	format, err := exportFormat(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	rows, err := s.itinerary.Export(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	if format == FormatCSV {
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary-%s.csv"`, tripID))
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = body.WriteTo(w)
		return
	}

	out := make([]ItineraryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// buildCSV encodes domain rows as CSV, header first.
func buildCSV(rows []domain.ItineraryRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(csvHeaders) // bytes.Buffer writes never fail
	for _, r := range rows {
		_ = w.Write(rowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

// rowToResponse maps a domain.ItineraryRow to its wire type. Empty activity
// fields become nulls.
func rowToResponse(r domain.ItineraryRow) ItineraryRow {
	out := ItineraryRow{
		TripDestination:  r.TripDestination,
		TripStartsAt:     r.TripStartsAt,
		TripEndsAt:       r.TripEndsAt,
		TripConfirmed:    r.TripConfirmed,
		ActivityOccursAt: r.ActivityOccursAt,
	}
	out.TripID, _ = uuid.Parse(r.TripID)
	if r.ActivityTitle != "" {
		title := r.ActivityTitle
		out.ActivityTitle = &title
	}
	return out
}

// rowToCSVRecord encodes a row as a flat string slice. Nil times are empty.
func rowToCSVRecord(r domain.ItineraryRow) []string {
	return []string{
		r.TripID,
		r.TripDestination,
		r.TripStartsAt.UTC().Format(time.RFC3339),
		r.TripEndsAt.UTC().Format(time.RFC3339),
		strconv.FormatBool(r.TripConfirmed),
		r.ActivityTitle,
		formatOptionalTime(r.ActivityOccursAt),
	}
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
