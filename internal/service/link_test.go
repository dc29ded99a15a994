package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/backend/internal/domain"
)

func TestLinkService_CreateAndList(t *testing.T) {
	w := newWorkflow(t)
	ctx := context.Background()
	trip, _, err := w.trips.Create(ctx, parisTrip())
	require.NoError(t, err)

	empty, err := w.links.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = w.links.Create(ctx, domain.Link{TripID: trip.ID, Title: "Hotel booking", URL: "https://hotel.example/res/1"})
	require.NoError(t, err)
	_, err = w.links.Create(ctx, domain.Link{TripID: trip.ID, Title: "Train", URL: "http://rail.example"})
	require.NoError(t, err)

	links, err := w.links.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "Hotel booking", links[0].Title)
	assert.Equal(t, "Train", links[1].Title)
}

func TestLinkService_Create_Failures(t *testing.T) {
	w := newWorkflow(t)
	ctx := context.Background()
	trip, _, err := w.trips.Create(ctx, parisTrip())
	require.NoError(t, err)

	cases := []struct {
		name string
		link domain.Link
		want error
	}{
		{"short title", domain.Link{TripID: trip.ID, Title: "Map", URL: "https://maps.example"}, domain.ErrValidation},
		{"relative url", domain.Link{TripID: trip.ID, Title: "Hotel", URL: "/bookings/1"}, domain.ErrValidation},
		{"ftp url", domain.Link{TripID: trip.ID, Title: "Files", URL: "ftp://files.example"}, domain.ErrValidation},
		{"unknown trip", domain.Link{TripID: uuid.New(), Title: "Hotel", URL: "https://hotel.example"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := w.links.Create(ctx, tc.link)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestItineraryService_Export(t *testing.T) {
	w := newWorkflow(t)
	ctx := context.Background()
	start := time.Date(2030, 4, 1, 10, 0, 0, 0, time.UTC)
	trip := createTrip(t, w, start, start.Add(48*time.Hour))

	rows, err := w.itinerary.Export(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1, "a trip without activities still exports one row")
	assert.Nil(t, rows[0].ActivityOccursAt)

	_, err = w.activities.Create(ctx, domain.Activity{TripID: trip.ID, Title: "Dinner", OccursAt: start.Add(30 * time.Hour)})
	require.NoError(t, err)
	_, err = w.activities.Create(ctx, domain.Activity{TripID: trip.ID, Title: "Breakfast", OccursAt: start.Add(time.Hour)})
	require.NoError(t, err)

	rows, err = w.itinerary.Export(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Breakfast", rows[0].ActivityTitle)
	assert.Equal(t, "Dinner", rows[1].ActivityTitle)
	assert.Equal(t, "Paris", rows[1].TripDestination)
}

func TestItineraryService_Export_UnknownTrip(t *testing.T) {
	w := newWorkflow(t)

	_, err := w.itinerary.Export(context.Background(), uuid.New())

	require.ErrorIs(t, err, domain.ErrNotFound)
}
