package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripplanner/backend/internal/domain"
)

// ParticipantRepo defines the persistence operations for Participants.
type ParticipantRepo interface {
	// Create inserts a participant for an existing trip.
	// Returns domain.ErrNotFound if the trip does not exist.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// GetByID retrieves a participant by its UUID.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// ListByTripID returns every participant of a trip, owner first, then by email.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// Confirm sets is_confirmed as a compare-and-set. newly is true only for
	// the single caller that observed the unconfirmed state; repeat calls
	// return the stored participant with newly false.
	Confirm(ctx context.Context, id uuid.UUID) (p domain.Participant, newly bool, err error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

const participantColumns = `id, trip_id, name, email, is_owner, is_confirmed, created_at`

func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	result, err := insertParticipant(ctx, r.db, p)
	if err != nil {
		return domain.Participant{}, wrap("repo.ParticipantRepo.Create", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `SELECT ` + participantColumns + ` FROM participants WHERE id = @id`

	result, err := scanParticipant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Participant{}, wrap("repo.ParticipantRepo.GetByID", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY is_owner DESC, email`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, wrap("repo.ParticipantRepo.ListByTripID", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, wrap("repo.ParticipantRepo.ListByTripID: scan", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("repo.ParticipantRepo.ListByTripID: rows", err)
	}
	return participants, nil
}

func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, bool, error) {
	const q = `
		UPDATE participants
		SET is_confirmed = true
		WHERE id = @id AND NOT is_confirmed
		RETURNING ` + participantColumns

	p, err := scanParticipant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Participant{}, false, wrap("repo.ParticipantRepo.Confirm", err)
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, false, wrap("repo.ParticipantRepo.Confirm", err)
	}
	return existing, false, nil
}

// rowQuerier is the subset of db needed for single-row statements; it lets
// TripRepo.Create insert participants on its own transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertParticipant(ctx context.Context, q rowQuerier, p domain.Participant) (domain.Participant, error) {
	const stmt = `
		INSERT INTO participants (trip_id, name, email, is_owner, is_confirmed)
		VALUES (@trip_id, @name, @email, @is_owner, @is_confirmed)
		RETURNING ` + participantColumns

	args := pgx.NamedArgs{
		"trip_id":      p.TripID,
		"name":         p.Name, // nil becomes NULL
		"email":        p.Email,
		"is_owner":     p.IsOwner,
		"is_confirmed": p.IsConfirmed,
	}
	return scanParticipant(q.QueryRow(ctx, stmt, args))
}

// scanParticipant maps a single database row into a domain.Participant.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &p.Name, &p.Email, &p.IsOwner, &p.IsConfirmed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	return p, nil
}
