package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/events"
	"github.com/tripplanner/backend/internal/metrics"
	"github.com/tripplanner/backend/internal/repo"
)

// ParticipantService implements participant lookup, confirmation and ad-hoc
// invitations. It holds the trips repo because invitations and listings are
// scoped to an existing trip.
type ParticipantService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	inviter      *Inviter
	events       events.Publisher
	clock        Clock
	log          *slog.Logger
}

// NewParticipantService constructs a ParticipantService.
func NewParticipantService(
	trips repo.TripRepo,
	participants repo.ParticipantRepo,
	inviter *Inviter,
	publisher events.Publisher,
	clock Clock,
	log *slog.Logger,
) *ParticipantService {
	return &ParticipantService{
		trips:        trips,
		participants: participants,
		inviter:      inviter,
		events:       publisher,
		clock:        clock,
		log:          log,
	}
}

// GetByID returns a single participant.
// Returns domain.ErrNotFound if it does not exist.
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.GetByID: %w", err)
	}
	return p, nil
}

// ListByTripID returns every participant of a trip, owner first.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ParticipantService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	list, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	if list == nil {
		return []domain.Participant{}, nil
	}
	return list, nil
}

// Confirm marks a participant as confirmed. It is idempotent: confirming an
// already-confirmed participant succeeds with newly == false and changes
// nothing. Confirmation sends no notification.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID) (p domain.Participant, newly bool, err error) {
	p, newly, err = s.participants.Confirm(ctx, id)
	if err != nil {
		return domain.Participant{}, false, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	metrics.RecordParticipantConfirmation(newly)

	if newly {
		s.log.InfoContext(ctx, "participant confirmed", "trip_id", p.TripID, "participant_id", p.ID)
		pid := p.ID
		publish(ctx, s.events, s.clock, s.log, events.Event{
			Type: events.ParticipantConfirmed, TripID: p.TripID, ParticipantID: &pid,
		})
	}
	return p, newly, nil
}

// Invite adds an unconfirmed participant to an existing trip, whatever its
// confirmation state, and immediately sends them an invitation.
// Returns domain.ErrNotFound if the trip does not exist. A failed send is
// logged; the participant stays and can be re-invited.
func (s *ParticipantService) Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	p, err := s.participants.Create(ctx, domain.Participant{
		TripID: tripID,
		Email:  domain.NormalizeEmail(email),
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	_ = s.inviter.Invite(ctx, trip, p) // logged by the inviter
	pid := p.ID
	publish(ctx, s.events, s.clock, s.log, events.Event{
		Type: events.ParticipantInvited, TripID: tripID, ParticipantID: &pid,
	})
	return p, nil
}
