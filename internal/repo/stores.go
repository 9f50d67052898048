package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/migrations"
)

// Stores bundles the trip and sharing documents of one backend together
// with their typed repositories.
type Stores struct {
	TripDoc    Document
	SharingDoc Document
	Trips      TripRepo
	Posts      PostRepo

	close func()
}

func newStores(trip, sharing Document, closeFn func()) *Stores {
	if closeFn == nil {
		closeFn = func() {}
	}
	return &Stores{
		TripDoc:    trip,
		SharingDoc: sharing,
		Trips:      NewTripRepo(trip),
		Posts:      NewPostRepo(sharing),
		close:      closeFn,
	}
}

// Close releases the backend's resources.
func (s *Stores) Close() { s.close() }

// OpenFileStores returns stores backed by two JSON files.
func OpenFileStores(tripPath, sharingPath string) *Stores {
	return newStores(NewFileDocument(tripPath), NewFileDocument(sharingPath), nil)
}

// OpenPGStores connects to Postgres and returns stores backed by rows of the
// documents table. The database must already be migrated (see Migrate).
func OpenPGStores(ctx context.Context, databaseURL string) (*Stores, error) {
	// pgxpool.New does not open connections immediately; the ping does.
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenPGStores: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPGStores: ping: %w", err)
	}
	return newStores(NewPGDocument(pool, TripDocument), NewPGDocument(pool, SharingDocument), pool.Close), nil
}

// Migrate applies every pending goose migration to the database at
// databaseURL and returns the versions it applied.
func Migrate(ctx context.Context, databaseURL string) ([]int64, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("repo.Migrate: open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("repo.Migrate: create provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.Migrate: up: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}
