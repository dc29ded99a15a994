//go:build integration

package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tripplanner/backend/migrations"
)

var (
	containerOnce sync.Once
	containerURL  string
	containerErr  error
)

// containerDSN starts one Postgres container per test binary, applies the
// migrations and returns its connection string. The container is left for
// the Ryuk reaper to remove when the binary exits.
func containerDSN(t *testing.T) string {
	t.Helper()
	containerOnce.Do(func() {
		ctx := context.Background()
		pg, err := postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("trips"),
			postgres.WithUsername("trips"),
			postgres.WithPassword("trips"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			containerErr = err
			return
		}
		containerURL, containerErr = pg.ConnectionString(ctx, "sslmode=disable")
		if containerErr != nil {
			return
		}
		db := MustOpenSQLDB(containerURL)
		defer db.Close()
		_, containerErr = migrations.Up(ctx, db)
	})
	if containerErr != nil {
		t.Fatalf("testutil.containerDSN: %v", containerErr)
	}
	return containerURL
}
