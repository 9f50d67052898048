package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripRepo defines the persistence operations for the trip document.
// The service layer depends on this interface, not the concrete backend,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Load reads the whole trip. Returns domain.ErrNotInitialized if no trip
	// has been saved yet. Legacy documents are upgraded in memory; the
	// upgraded shape is written back on the next Save.
	Load(ctx context.Context) (domain.Trip, error)

	// Save replaces the whole trip document.
	Save(ctx context.Context, trip domain.Trip) error
}

type tripRepo struct {
	doc Document
}

// NewTripRepo constructs a TripRepo on top of the given document backend.
func NewTripRepo(doc Document) TripRepo {
	return &tripRepo{doc: doc}
}

// Load reads and decodes the trip document.
func (r *tripRepo) Load(ctx context.Context) (domain.Trip, error) {
	data, err := r.doc.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrDocumentMissing) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Load: %w", domain.ErrNotInitialized)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Load: %w", err)
	}

	trip, _, err := domain.DecodeTrip(data)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Load: %w", err)
	}
	return trip, nil
}

// Save encodes the trip as indented JSON and replaces the stored document.
func (r *tripRepo) Save(ctx context.Context, trip domain.Trip) error {
	data, err := json.MarshalIndent(trip, "", "  ")
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Save: encode: %w", err)
	}
	if err := r.doc.Write(ctx, data); err != nil {
		return fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	return nil
}
