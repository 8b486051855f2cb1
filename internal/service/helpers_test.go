package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/perundhu/perundhu/internal/database"
	"github.com/perundhu/perundhu/internal/database/repository"
	"github.com/perundhu/perundhu/internal/matcher"
)

// newTestDB opens a migrated, gazetteer-seeded sqlite database in a temp dir.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedGazetteer(context.Background(), db))
	return db
}

// newTestReconciler wires a reconciler with a 10 minute duplicate window
// against db.
func newTestReconciler(db *sql.DB) *Reconciler {
	resolver := &Resolver{
		Locations:   repository.NewLocationRepo(db),
		Matcher:     matcher.New(),
		MaxDistance: 2,
		Log:         zerolog.Nop(),
	}
	return &Reconciler{
		Timings:       repository.NewTimingRecordRepo(db),
		Skips:         repository.NewSkippedTimingRepo(db),
		Resolver:      resolver,
		Log:           zerolog.Nop(),
		WindowMinutes: 10,
	}
}
