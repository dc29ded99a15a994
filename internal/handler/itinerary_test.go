package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/handler"
)

// ---- mock ItineraryServicer ------------------------------------------------

type mockItineraryServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryRow, error)
}

func (m *mockItineraryServicer) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryRow, error) {
	return m.export(ctx, tripID)
}

// compile-time check: mockItineraryServicer must satisfy handler.ItineraryServicer.
var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func newItineraryHTTPHandler(svc handler.ItineraryServicer) http.Handler {
	return handler.NewServer(nil, nil, nil, nil, svc).Routes()
}

// itineraryFixture returns one populated row and one bare trip row.
func itineraryFixture(tripID uuid.UUID) []domain.ItineraryRow {
	start := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	at := time.Date(2030, 6, 2, 15, 30, 0, 0, time.UTC)
	base := domain.ItineraryRow{
		TripID:          tripID.String(),
		TripDestination: "Paris, France",
		TripStartsAt:    start,
		TripEndsAt:      start.Add(72 * time.Hour),
		TripConfirmed:   true,
	}
	withActivity := base
	withActivity.ActivityTitle = "Louvre"
	withActivity.ActivityOccursAt = &at
	return []domain.ItineraryRow{withActivity, base}
}

// ---- JSON ------------------------------------------------------------------

func TestGetItinerary_DefaultJSON(t *testing.T) {
	tripID := uuid.New()
	svc := &mockItineraryServicer{
		export: func(context.Context, uuid.UUID) ([]domain.ItineraryRow, error) {
			return itineraryFixture(tripID), nil
		},
	}
	rec := httptest.NewRecorder()

	newItineraryHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/itinerary", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var rows []handler.ItineraryRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, tripID, rows[0].TripID)
	require.NotNil(t, rows[0].ActivityTitle)
	assert.Equal(t, "Louvre", *rows[0].ActivityTitle)
	assert.Nil(t, rows[1].ActivityTitle)
	assert.Nil(t, rows[1].ActivityOccursAt)
}

// ---- CSV -------------------------------------------------------------------

func TestGetItinerary_CSV(t *testing.T) {
	tripID := uuid.New()
	svc := &mockItineraryServicer{
		export: func(context.Context, uuid.UUID) ([]domain.ItineraryRow, error) {
			return itineraryFixture(tripID), nil
		},
	}
	rec := httptest.NewRecorder()

	newItineraryHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/itinerary?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "itinerary-"+tripID.String()+".csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")
	assert.Equal(t, []string{
		"trip_id", "trip_destination", "trip_starts_at", "trip_ends_at", "trip_confirmed",
		"activity_title", "activity_occurs_at",
	}, records[0])
	assert.Equal(t, []string{
		tripID.String(), "Paris, France", "2030-06-01T09:00:00Z", "2030-06-04T09:00:00Z", "true",
		"Louvre", "2030-06-02T15:30:00Z",
	}, records[1])
	assert.Equal(t, "", records[2][5])
	assert.Equal(t, "", records[2][6])
}

func TestGetItinerary_400_UnknownFormat(t *testing.T) {
	rec := httptest.NewRecorder()

	newItineraryHTTPHandler(&mockItineraryServicer{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/itinerary?format=xml", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetItinerary_404(t *testing.T) {
	svc := &mockItineraryServicer{
		export: func(context.Context, uuid.UUID) ([]domain.ItineraryRow, error) {
			return nil, domain.ErrNotFound
		},
	}
	rec := httptest.NewRecorder()

	newItineraryHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/itinerary", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
