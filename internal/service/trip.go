// Package service is the trip workflow engine. Services validate inputs,
// enforce the confirmation state machine and orchestrate repo calls and
// notifications. No SQL lives here; services depend on repo interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/events"
	"github.com/tripplanner/backend/internal/metrics"
	"github.com/tripplanner/backend/internal/repo"
)

// TripService implements trip creation, update and confirmation.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	inviter      *Inviter
	events       events.Publisher
	clock        Clock
	log          *slog.Logger
}

// NewTripService constructs a TripService.
func NewTripService(
	trips repo.TripRepo,
	participants repo.ParticipantRepo,
	inviter *Inviter,
	publisher events.Publisher,
	clock Clock,
	log *slog.Logger,
) *TripService {
	return &TripService{
		trips:        trips,
		participants: participants,
		inviter:      inviter,
		events:       publisher,
		clock:        clock,
		log:          log,
	}
}

// ConfirmTripResult is the outcome of a successful confirmation: the
// confirmed trip and how its invitation fan-out went.
type ConfirmTripResult struct {
	Trip          domain.Trip
	Notifications NotificationReport
}

// Create validates and persists a new trip with its owner (pre-confirmed) and
// one unconfirmed participant per invitee, then notifies the owner only.
// Invitees hear about the trip once it is confirmed.
//
// Returns domain.ErrValidation, domain.ErrInvalidWindow or
// domain.ErrDuplicateEmail for bad input. A failed owner notification is
// logged but does not fail the call; the trip is already stored.
func (s *TripService) Create(ctx context.Context, in domain.NewTrip) (domain.Trip, []domain.Participant, error) {
	if err := s.validateNewTrip(in); err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Create: %w", err)
	}

	ownerName := strings.TrimSpace(in.OwnerName)
	members := make([]domain.Participant, 0, len(in.InviteEmails)+1)
	members = append(members, domain.Participant{
		Name:        &ownerName,
		Email:       domain.NormalizeEmail(in.OwnerEmail),
		IsOwner:     true,
		IsConfirmed: true,
	})
	for _, e := range in.InviteEmails {
		members = append(members, domain.Participant{Email: domain.NormalizeEmail(e)})
	}

	trip, members, err := s.trips.Create(ctx, domain.Trip{
		Destination: strings.TrimSpace(in.Destination),
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}, members)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.log.InfoContext(ctx, "trip created", "trip_id", trip.ID, "participants", len(members))

	for _, m := range members {
		if m.IsOwner {
			_ = s.inviter.TripCreated(ctx, trip, m) // logged by the inviter
			break
		}
	}
	s.publish(ctx, events.Event{Type: events.TripCreated, TripID: trip.ID})

	return trip, members, nil
}

// validateNewTrip checks field rules, then the temporal window, then address
// uniqueness.
func (s *TripService) validateNewTrip(in domain.NewTrip) error {
	if err := domain.ValidateText("destination", in.Destination); err != nil {
		return err
	}
	if strings.TrimSpace(in.OwnerName) == "" {
		return fmt.Errorf("%w: owner name is required", domain.ErrValidation)
	}
	if err := domain.ValidateEmail(in.OwnerEmail); err != nil {
		return err
	}
	for _, e := range in.InviteEmails {
		if err := domain.ValidateEmail(e); err != nil {
			return err
		}
	}
	if err := domain.ValidateTripWindow(in.StartsAt, in.EndsAt, s.clock.Now()); err != nil {
		return err
	}
	return domain.CheckDistinctEmails(in.OwnerEmail, in.InviteEmails)
}

// GetByID returns a single trip.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Update replaces a trip's destination and window. The new window is
// validated against now; is_confirmed is left alone and existing activities
// are not re-checked against the new bounds.
func (s *TripService) Update(ctx context.Context, u domain.TripUpdate) (domain.Trip, error) {
	if _, err := s.trips.GetByID(ctx, u.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := domain.ValidateText("destination", u.Destination); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := domain.ValidateTripWindow(u.StartsAt, u.EndsAt, s.clock.Now()); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	u.Destination = strings.TrimSpace(u.Destination)
	updated, err := s.trips.Update(ctx, u)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Confirm moves a trip from unconfirmed to confirmed and then invites every
// non-owner participant. Of any number of concurrent callers exactly one
// performs the transition and the fan-out; the rest get
// domain.ErrAlreadyConfirmed.
//
// Invitation failures do not undo the confirmation. They are reported in the
// result so the caller can surface partial delivery.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (ConfirmTripResult, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return ConfirmTripResult{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if trip.IsConfirmed {
		metrics.RecordTripConfirmation(true)
		return ConfirmTripResult{}, fmt.Errorf("service.TripService.Confirm: %w", domain.ErrAlreadyConfirmed)
	}

	confirmed, err := s.trips.Confirm(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyConfirmed) {
			metrics.RecordTripConfirmation(true)
		}
		return ConfirmTripResult{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	metrics.RecordTripConfirmation(false)
	s.log.InfoContext(ctx, "trip confirmed", "trip_id", id)
	s.publish(ctx, events.Event{Type: events.TripConfirmed, TripID: id})

	members, err := s.participants.ListByTripID(ctx, id)
	if err != nil {
		s.log.ErrorContext(ctx, "trip confirmed but invitations not sent", "trip_id", id, "error", err)
		return ConfirmTripResult{}, fmt.Errorf("service.TripService.Confirm: list participants: %w", err)
	}

	invitees := make([]domain.Participant, 0, len(members))
	for _, m := range members {
		if !m.IsOwner {
			invitees = append(invitees, m)
		}
	}

	report := s.inviter.InviteAll(ctx, confirmed, invitees)
	if report.Failed > 0 {
		s.log.WarnContext(ctx, "some invitations failed",
			"trip_id", id, "sent", report.Sent, "failed", report.Failed)
	}

	return ConfirmTripResult{Trip: confirmed, Notifications: report}, nil
}

func (s *TripService) publish(ctx context.Context, e events.Event) {
	publish(ctx, s.events, s.clock, s.log, e)
}

// publish stamps and emits e. Failures are logged and swallowed: events are
// informational and must never undo a committed transition.
func publish(ctx context.Context, p events.Publisher, clock Clock, log *slog.Logger, e events.Event) {
	if p == nil {
		return
	}
	e.OccurredAt = clock.Now().UTC()
	if err := p.Publish(ctx, e); err != nil {
		log.WarnContext(ctx, "event publish failed", "type", e.Type, "trip_id", e.TripID, "error", err)
	}
}
