package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds the trips repo because activities are validated against their
// trip's window and bucketed by the trip's days.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	loc        *time.Location
}

// NewActivityService constructs an ActivityService. loc is the location in
// which calendar days are computed for Schedule (UTC when nil).
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo, loc *time.Location) *ActivityService {
	if loc == nil {
		loc = time.UTC
	}
	return &ActivityService{trips: trips, activities: activities, loc: loc}
}

// Create validates the activity against its trip's stored window, then persists.
// Returns domain.ErrValidation for a short title, domain.ErrNotFound if the
// trip does not exist, and domain.ErrBeforeTripStart / domain.ErrAfterTripEnd
// (both domain.ErrOutOfWindow) when occurs_at is outside the trip.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	if err := domain.ValidateText("title", a.Title); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	trip, err := s.trips.GetByID(ctx, a.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := domain.ValidateActivityWithinTrip(a.OccursAt, trip.StartsAt, trip.EndsAt); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	a.Title = strings.TrimSpace(a.Title)
	result, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// Schedule returns the trip's activities grouped into one bucket per calendar
// day of the trip, empty days included.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ActivityService) Schedule(ctx context.Context, tripID uuid.UUID) ([]domain.DaySchedule, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.Schedule: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.Schedule: %w", err)
	}
	return domain.GroupByDay(trip.StartsAt, trip.EndsAt, activities, s.loc), nil
}
