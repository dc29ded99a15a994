// Package repo is the persistence gateway for the trip planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripplanner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test. Begin on a
// pgx.Tx opens a savepoint, so multi-statement writes nest cleanly.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a fake.
type TripRepo interface {
	// Create inserts a trip together with its participants in one transaction:
	// either all rows exist afterwards or none do. Participants get their
	// TripID from the new trip.
	Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Update overwrites destination, starts_at and ends_at. is_confirmed is untouched.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, u domain.TripUpdate) (domain.Trip, error)

	// Confirm flips is_confirmed from false to true as a compare-and-set.
	// Exactly one concurrent caller succeeds; the others get
	// domain.ErrAlreadyConfirmed. Returns domain.ErrNotFound for unknown ids.
	Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, destination, starts_at, ends_at, is_confirmed, created_at, updated_at`

// Create inserts the trip row, then every participant row, inside one transaction.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error) {
	const q = `
		INSERT INTO trips (destination, starts_at, ends_at, is_confirmed)
		VALUES (@destination, @starts_at, @ends_at, false)
		RETURNING ` + tripColumns

	var (
		created domain.Trip
		members = make([]domain.Participant, 0, len(participants))
	)
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, q, pgx.NamedArgs{
			"destination": trip.Destination,
			"starts_at":   trip.StartsAt,
			"ends_at":     trip.EndsAt,
		})
		var err error
		if created, err = scanTrip(row); err != nil {
			return err
		}
		for _, p := range participants {
			p.TripID = created.ID
			saved, err := insertParticipant(ctx, tx, p)
			if err != nil {
				return err
			}
			members = append(members, saved)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, nil, wrap("repo.TripRepo.Create", err)
	}
	return created, members, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.GetByID", err)
	}
	return result, nil
}

// Update overwrites the window and destination of a trip.
func (r *pgTripRepo) Update(ctx context.Context, u domain.TripUpdate) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination = @destination,
		    starts_at   = @starts_at,
		    ends_at     = @ends_at,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          u.ID,
		"destination": u.Destination,
		"starts_at":   u.StartsAt,
		"ends_at":     u.EndsAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.Update", err)
	}
	return result, nil
}

// Confirm guards the transition with "AND NOT is_confirmed" so the row lock
// taken by UPDATE serializes racing confirmations.
func (r *pgTripRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET is_confirmed = true,
		    updated_at   = now()
		WHERE id = @id AND NOT is_confirmed
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, wrap("repo.TripRepo.Confirm", err)
	}

	// No row changed: either the trip is missing or someone confirmed it first.
	if _, err := r.GetByID(ctx, id); err != nil {
		return domain.Trip{}, wrap("repo.TripRepo.Confirm", err)
	}
	return domain.Trip{}, wrap("repo.TripRepo.Confirm", domain.ErrAlreadyConfirmed)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Destination, &t.StartsAt, &t.EndsAt, &t.IsConfirmed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
