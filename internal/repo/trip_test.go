package repo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/repo"
	"github.com/tripplanner/backend/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// rolled back when the test finishes, giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

func tripFixture() domain.Trip {
	return domain.Trip{
		Destination: "Lisbon",
		StartsAt:    time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2030, 6, 5, 18, 0, 0, 0, time.UTC),
	}
}

func ownerFixture() domain.Participant {
	name := "Ana"
	return domain.Participant{Name: &name, Email: "ana@x.com", IsOwner: true, IsConfirmed: true}
}

// createTrip inserts a trip with an owner and one invitee.
func createTrip(t *testing.T, r repo.TripRepo) (domain.Trip, []domain.Participant) {
	t.Helper()
	trip, members, err := r.Create(context.Background(), tripFixture(), []domain.Participant{
		ownerFixture(),
		{Email: "bruno@x.com"},
	})
	require.NoError(t, err)
	return trip, members
}

var ghostID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

func TestTripRepo_Create(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	got, members := createTrip(t, r)

	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, "Lisbon", got.Destination)
	assert.True(t, got.StartsAt.Equal(tripFixture().StartsAt))
	assert.False(t, got.IsConfirmed)
	assert.False(t, got.CreatedAt.IsZero())

	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, got.ID, m.TripID)
	}
	assert.True(t, members[0].IsOwner)
	assert.True(t, members[0].IsConfirmed)
	assert.Nil(t, members[1].Name)
	assert.False(t, members[1].IsConfirmed)
}

func TestTripRepo_Create_IsAtomic(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)

	// Two owners violate participants_one_owner_idx, so the whole insert must roll back.
	second := ownerFixture()
	second.Email = "other@x.com"
	trip := tripFixture()
	trip.Destination = "Atomic Falls"
	_, _, err := r.Create(context.Background(), trip, []domain.Participant{ownerFixture(), second})
	require.Error(t, err)

	var n int
	require.NoError(t, tx.QueryRow(context.Background(),
		`SELECT count(*) FROM trips WHERE destination = 'Atomic Falls'`).Scan(&n))
	assert.Zero(t, n, "no trip row should survive a failed participant insert")
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), ghostID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Update(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	created, _ := createTrip(t, r)

	newEnd := created.EndsAt.AddDate(0, 0, 2)
	updated, err := r.Update(context.Background(), domain.TripUpdate{
		ID:          created.ID,
		Destination: "Porto",
		StartsAt:    created.StartsAt,
		EndsAt:      newEnd,
	})

	require.NoError(t, err)
	assert.Equal(t, "Porto", updated.Destination)
	assert.True(t, updated.EndsAt.Equal(newEnd))
	assert.Equal(t, created.IsConfirmed, updated.IsConfirmed)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, err := r.Update(context.Background(), domain.TripUpdate{ID: ghostID, Destination: "Nowhere"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Confirm(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	created, _ := createTrip(t, r)
	ctx := context.Background()

	confirmed, err := r.Confirm(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, confirmed.IsConfirmed)

	_, err = r.Confirm(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)

	_, err = r.Confirm(ctx, ghostID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestTripRepo_Confirm_Concurrent commits a trip outside of a test transaction
// so that two connections can race on the same row.
func TestTripRepo_Confirm_Concurrent(t *testing.T) {
	pool := testutil.NewPool(t)
	ctx := context.Background()
	r := repo.NewTripRepo(pool)

	trip, _, err := r.Create(ctx, tripFixture(), []domain.Participant{ownerFixture()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM trips WHERE id = $1`, trip.ID)
	})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		already   int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Confirm(ctx, trip.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed):
				already++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 7, already)
}
