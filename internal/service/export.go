package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/repo"
)

// ItineraryService assembles a flat itinerary export of one trip.
type ItineraryService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(trips repo.TripRepo, activities repo.ActivityRepo) *ItineraryService {
	return &ItineraryService{trips: trips, activities: activities}
}

// Export returns one ItineraryRow per activity, in occurs_at order.
// A trip with no activities contributes one row with empty activity fields.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ItineraryService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Export: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Export: %w", err)
	}

	base := domain.ItineraryRow{
		TripID:          trip.ID.String(),
		TripDestination: trip.Destination,
		TripStartsAt:    trip.StartsAt,
		TripEndsAt:      trip.EndsAt,
		TripConfirmed:   trip.IsConfirmed,
	}
	if len(activities) == 0 {
		return []domain.ItineraryRow{base}, nil
	}

	rows := make([]domain.ItineraryRow, 0, len(activities))
	for _, a := range activities {
		row := base
		row.ActivityTitle = a.Title
		at := a.OccursAt
		row.ActivityOccursAt = &at
		rows = append(rows, row)
	}
	return rows, nil
}
