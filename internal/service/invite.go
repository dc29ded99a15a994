package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/metrics"
	"github.com/tripplanner/backend/internal/notify"
)

// InviterConfig tunes notification dispatch.
type InviterConfig struct {
	// BaseURL prefixes the confirmation links placed in messages.
	BaseURL string
	// Timeout bounds each individual send. Zero means no extra bound beyond
	// the caller's context.
	Timeout time.Duration
	// Concurrency caps parallel sends during a fan-out. Values below 1 mean 1.
	Concurrency int
}

// NotificationReport summarizes a fan-out. FailedParticipantIDs lists the
// participants whose invitation could not be sent; they can be re-invited.
type NotificationReport struct {
	Sent                 int         `json:"sent"`
	Failed               int         `json:"failed"`
	FailedParticipantIDs []uuid.UUID `json:"failed_participant_ids,omitempty"`
}

// Inviter renders and dispatches the workflow's notifications. Every send is
// attempted exactly once; failures are logged and counted, never retried.
type Inviter struct {
	dispatcher notify.Dispatcher
	composer   *notify.Composer
	cfg        InviterConfig
	log        *slog.Logger
}

// NewInviter constructs an Inviter.
func NewInviter(d notify.Dispatcher, c *notify.Composer, cfg InviterConfig, log *slog.Logger) *Inviter {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Inviter{dispatcher: d, composer: c, cfg: cfg, log: log}
}

// TripCreated sends the owner the "trip created" message carrying the trip
// confirmation link.
func (i *Inviter) TripCreated(ctx context.Context, trip domain.Trip, owner domain.Participant) error {
	msg, err := i.composer.TripCreated(notify.TripCreated{
		OwnerName:   owner.DisplayName(),
		OwnerEmail:  owner.Email,
		Destination: trip.Destination,
		StartsAt:    trip.StartsAt,
		EndsAt:      trip.EndsAt,
		ConfirmURL:  fmt.Sprintf("%s/trips/%s/confirm", i.cfg.BaseURL, trip.ID),
	})
	if err != nil {
		return fmt.Errorf("service.Inviter.TripCreated: %w", err)
	}

	err = i.send(ctx, metrics.KindTripCreated, msg)
	if err != nil {
		i.log.WarnContext(ctx, "trip created notification failed",
			"trip_id", trip.ID, "participant_id", owner.ID, "error", err)
		return fmt.Errorf("service.Inviter.TripCreated: %w", err)
	}
	return nil
}

// Invite sends one participant the invitation carrying their own
// confirmation link.
func (i *Inviter) Invite(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	msg, err := i.composer.Invitation(notify.Invitation{
		Email:       p.Email,
		Name:        p.DisplayName(),
		Destination: trip.Destination,
		StartsAt:    trip.StartsAt,
		EndsAt:      trip.EndsAt,
		ConfirmURL:  fmt.Sprintf("%s/participants/%s/confirm", i.cfg.BaseURL, p.ID),
	})
	if err != nil {
		return fmt.Errorf("service.Inviter.Invite: %w", err)
	}

	err = i.send(ctx, metrics.KindInvitation, msg)
	if err != nil {
		i.log.WarnContext(ctx, "invitation failed",
			"trip_id", trip.ID, "participant_id", p.ID, "error", err)
		return fmt.Errorf("service.Inviter.Invite: %w", err)
	}
	return nil
}

// InviteAll invites every participant concurrently. A failed send never stops
// the others; the report tells the caller how many went out.
func (i *Inviter) InviteAll(ctx context.Context, trip domain.Trip, participants []domain.Participant) NotificationReport {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		report NotificationReport
	)
	g.SetLimit(i.cfg.Concurrency)

	for _, p := range participants {
		g.Go(func() error {
			err := i.Invite(ctx, trip, p)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.FailedParticipantIDs = append(report.FailedParticipantIDs, p.ID)
				return nil
			}
			report.Sent++
			return nil
		})
	}
	_ = g.Wait() // every goroutine returns nil

	return report
}

func (i *Inviter) send(ctx context.Context, kind string, msg notify.Message) error {
	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	_, err := i.dispatcher.Send(ctx, msg)
	metrics.RecordNotification(kind, err)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return err
}
