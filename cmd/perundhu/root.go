package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/perundhu/perundhu/internal/config"
	"github.com/perundhu/perundhu/internal/database"
	"github.com/perundhu/perundhu/internal/database/repository"
	"github.com/perundhu/perundhu/internal/logging"
	"github.com/perundhu/perundhu/internal/matcher"
	"github.com/perundhu/perundhu/internal/service"
)

// appContext carries the wiring shared by all subcommands. The database is
// opened lazily on first use so help and completion never touch disk.
type appContext struct {
	cfg config.Config
	log zerolog.Logger

	db        *sql.DB
	locations *repository.LocationRepo
	timings   *repository.TimingRecordRepo
	skips     *repository.SkippedTimingRepo
	resolver  *service.Resolver
	ingest    *service.IngestService
}

func (a *appContext) open(ctx context.Context) error {
	if a.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(a.cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedGazetteer(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("seed gazetteer: %w", err)
	}

	a.db = db
	a.locations = repository.NewLocationRepo(db)
	a.timings = repository.NewTimingRecordRepo(db)
	a.skips = repository.NewSkippedTimingRepo(db)
	a.resolver = &service.Resolver{
		Locations:   a.locations,
		Matcher:     matcher.New(),
		MaxDistance: a.cfg.Matching.MaxDistance,
		Log:         a.log,
	}
	reconciler := &service.Reconciler{
		Timings:       a.timings,
		Skips:         a.skips,
		Resolver:      a.resolver,
		Log:           a.log,
		WindowMinutes: a.cfg.Matching.DuplicateWindowMinutes,
	}
	a.ingest = &service.IngestService{Reconciler: reconciler, Log: a.log}
	return nil
}

func (a *appContext) close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func newRootCommand() *cobra.Command {
	app := &appContext{}

	rootCmd := &cobra.Command{
		Use:           "perundhu",
		Short:         "Reconcile crowd-sourced bus timings against the accepted corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			app.cfg = cfg
			app.log = logging.New(cfg.Logging.Level, cfg.Logging.Format)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newIngestCommand(app))
	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newTimingsCommand(app))
	rootCmd.AddCommand(newResetCommand(app))

	return rootCmd
}
