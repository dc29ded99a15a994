package testutil

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/repo"
)

// MemStore is an in-memory persistence gateway implementing every repo
// interface behind one mutex. Confirm methods are compare-and-set under that
// mutex, mirroring the guarded UPDATEs of the Postgres repos, so workflow
// tests can exercise concurrent confirmations without a database.
type MemStore struct {
	mu           sync.Mutex
	seq          int
	trips        map[uuid.UUID]domain.Trip
	participants map[uuid.UUID]memRow[domain.Participant]
	activities   map[uuid.UUID]memRow[domain.Activity]
	links        map[uuid.UUID]memRow[domain.Link]
}

// memRow remembers insertion order for stable listings.
type memRow[T any] struct {
	seq int
	val T
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		trips:        map[uuid.UUID]domain.Trip{},
		participants: map[uuid.UUID]memRow[domain.Participant]{},
		activities:   map[uuid.UUID]memRow[domain.Activity]{},
		links:        map[uuid.UUID]memRow[domain.Link]{},
	}
}

func (s *MemStore) Trips() repo.TripRepo               { return memTrips{s} }
func (s *MemStore) Participants() repo.ParticipantRepo { return memParticipants{s} }
func (s *MemStore) Activities() repo.ActivityRepo      { return memActivities{s} }
func (s *MemStore) Links() repo.LinkRepo               { return memLinks{s} }

func (s *MemStore) next() int {
	s.seq++
	return s.seq
}

type memTrips struct{ s *MemStore }

func (m memTrips) Create(_ context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	now := time.Now().UTC()
	trip.ID = uuid.New()
	trip.IsConfirmed = false
	trip.CreatedAt, trip.UpdatedAt = now, now
	m.s.trips[trip.ID] = trip

	out := make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		p.ID = uuid.New()
		p.TripID = trip.ID
		p.CreatedAt = now
		m.s.participants[p.ID] = memRow[domain.Participant]{seq: m.s.next(), val: p}
		out = append(out, p)
	}
	return trip, out, nil
}

func (m memTrips) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

func (m memTrips) Update(_ context.Context, u domain.TripUpdate) (domain.Trip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.trips[u.ID]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	t.Destination, t.StartsAt, t.EndsAt = u.Destination, u.StartsAt, u.EndsAt
	t.UpdatedAt = time.Now().UTC()
	m.s.trips[u.ID] = t
	return t, nil
}

func (m memTrips) Confirm(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	if t.IsConfirmed {
		return domain.Trip{}, domain.ErrAlreadyConfirmed
	}
	t.IsConfirmed = true
	t.UpdatedAt = time.Now().UTC()
	m.s.trips[id] = t
	return t, nil
}

type memParticipants struct{ s *MemStore }

func (m memParticipants) Create(_ context.Context, p domain.Participant) (domain.Participant, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.trips[p.TripID]; !ok {
		return domain.Participant{}, domain.ErrNotFound
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	m.s.participants[p.ID] = memRow[domain.Participant]{seq: m.s.next(), val: p}
	return p, nil
}

func (m memParticipants) GetByID(_ context.Context, id uuid.UUID) (domain.Participant, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.participants[id]
	if !ok {
		return domain.Participant{}, domain.ErrNotFound
	}
	return r.val, nil
}

func (m memParticipants) ListByTripID(_ context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []domain.Participant{}
	for _, r := range m.s.participants {
		if r.val.TripID == tripID {
			out = append(out, r.val)
		}
	}
	slices.SortFunc(out, func(a, b domain.Participant) int {
		if a.IsOwner != b.IsOwner {
			if a.IsOwner {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Email, b.Email)
	})
	return out, nil
}

func (m memParticipants) Confirm(_ context.Context, id uuid.UUID) (domain.Participant, bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.participants[id]
	if !ok {
		return domain.Participant{}, false, domain.ErrNotFound
	}
	if r.val.IsConfirmed {
		return r.val, false, nil
	}
	r.val.IsConfirmed = true
	m.s.participants[id] = r
	return r.val, true, nil
}

type memActivities struct{ s *MemStore }

func (m memActivities) Create(_ context.Context, a domain.Activity) (domain.Activity, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.trips[a.TripID]; !ok {
		return domain.Activity{}, domain.ErrNotFound
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	m.s.activities[a.ID] = memRow[domain.Activity]{seq: m.s.next(), val: a}
	return a, nil
}

func (m memActivities) ListByTripID(_ context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rows := []memRow[domain.Activity]{}
	for _, r := range m.s.activities {
		if r.val.TripID == tripID {
			rows = append(rows, r)
		}
	}
	slices.SortFunc(rows, func(a, b memRow[domain.Activity]) int {
		if c := a.val.OccursAt.Compare(b.val.OccursAt); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]domain.Activity, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.val)
	}
	return out, nil
}

type memLinks struct{ s *MemStore }

func (m memLinks) Create(_ context.Context, l domain.Link) (domain.Link, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.trips[l.TripID]; !ok {
		return domain.Link{}, domain.ErrNotFound
	}
	l.ID = uuid.New()
	l.CreatedAt = time.Now().UTC()
	m.s.links[l.ID] = memRow[domain.Link]{seq: m.s.next(), val: l}
	return l, nil
}

func (m memLinks) ListByTripID(_ context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rows := []memRow[domain.Link]{}
	for _, r := range m.s.links {
		if r.val.TripID == tripID {
			rows = append(rows, r)
		}
	}
	slices.SortFunc(rows, func(a, b memRow[domain.Link]) int { return cmp.Compare(a.seq, b.seq) })
	out := make([]domain.Link, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.val)
	}
	return out, nil
}
