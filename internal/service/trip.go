package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/events"
	"github.com/pkordes/trip-planner/internal/repo"
)

// InitParams are the inputs of TripService.Init.
type InitParams struct {
	Start        string
	End          string
	Participants []string
	// Force replaces an existing trip instead of returning it.
	Force bool
}

// TripService implements the operations on the trip document.
type TripService struct {
	repo   repo.TripRepo
	notify notifier
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// pub and log may be nil.
func NewTripService(r repo.TripRepo, pub events.Publisher, log *slog.Logger) *TripService {
	return &TripService{repo: r, notify: newNotifier(pub, log)}
}

// Init creates a fresh trip for the given range. Unless p.Force is set, an
// existing trip is returned untouched with already == true and nothing is
// written.
func (s *TripService) Init(ctx context.Context, p InitParams) (trip domain.Trip, already bool, err error) {
	if strings.TrimSpace(p.Start) == "" || strings.TrimSpace(p.End) == "" {
		return domain.Trip{}, false, fmt.Errorf("%w: start and end are required (YYYY-MM-DD)", domain.ErrValidation)
	}

	if !p.Force {
		existing, err := s.repo.Load(ctx)
		if err == nil {
			return existing, true, nil
		}
		if !errors.Is(err, domain.ErrNotInitialized) {
			return domain.Trip{}, false, fmt.Errorf("service.TripService.Init: %w", err)
		}
	}

	trip = domain.EmptyTrip(p.Start, p.End, p.Participants, s.notify.now())
	if err := s.repo.Save(ctx, trip); err != nil {
		return domain.Trip{}, false, fmt.Errorf("service.TripService.Init: %w", err)
	}
	s.notify.changed(ctx, repo.TripDocument, "init")
	return trip, false, nil
}

// Get returns the current trip, or domain.ErrNotInitialized.
func (s *TripService) Get(ctx context.Context) (domain.Trip, error) {
	trip, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// Replace persists trip as the whole new document.
func (s *TripService) Replace(ctx context.Context, trip domain.Trip) error {
	if err := s.repo.Save(ctx, trip); err != nil {
		return fmt.Errorf("service.TripService.Replace: %w", err)
	}
	s.notify.changed(ctx, repo.TripDocument, "replace")
	return nil
}

// AddDay extends the trip by one day at the given end.
func (s *TripService) AddDay(ctx context.Context, pos domain.DayPosition) (domain.Trip, error) {
	return s.update(ctx, "AddDay", "add_day", func(t domain.Trip) (domain.Trip, error) {
		return domain.AddDay(t, pos)
	})
}

// RemoveDay drops the day with the given date. Returns domain.ErrLastDay
// when it is the only day left.
func (s *TripService) RemoveDay(ctx context.Context, date string) (domain.Trip, error) {
	return s.update(ctx, "RemoveDay", "remove_day", func(t domain.Trip) (domain.Trip, error) {
		return domain.RemoveDay(t, date)
	})
}

// ReplaceDay swaps in day for the stored day with the same date.
func (s *TripService) ReplaceDay(ctx context.Context, day domain.Day) (domain.Trip, error) {
	return s.update(ctx, "ReplaceDay", "replace_day", func(t domain.Trip) (domain.Trip, error) {
		return domain.ReplaceDay(t, day)
	})
}

// SaveMeal creates or edits a meal on the given day and returns the stored meal.
func (s *TripService) SaveMeal(ctx context.Context, date string, meal domain.Meal) (domain.Trip, domain.Meal, error) {
	var saved domain.Meal
	trip, err := s.update(ctx, "SaveMeal", "save_meal", func(t domain.Trip) (domain.Trip, error) {
		out, m, err := domain.SaveMeal(t, date, meal)
		saved = m
		return out, err
	})
	if err != nil {
		return domain.Trip{}, domain.Meal{}, err
	}
	return trip, saved, nil
}

// DeleteMeal removes a meal from a day.
func (s *TripService) DeleteMeal(ctx context.Context, date, mealID string) (domain.Trip, error) {
	return s.update(ctx, "DeleteMeal", "delete_meal", func(t domain.Trip) (domain.Trip, error) {
		return domain.DeleteMeal(t, date, mealID)
	})
}

// MoveMeal moves a meal between days in a single save.
func (s *TripService) MoveMeal(ctx context.Context, from, mealID, to string) (domain.Trip, error) {
	return s.update(ctx, "MoveMeal", "move_meal", func(t domain.Trip) (domain.Trip, error) {
		return domain.MoveMeal(t, from, mealID, to)
	})
}

// SetSpecialEvents replaces a day's special events.
func (s *TripService) SetSpecialEvents(ctx context.Context, date string, list []domain.SpecialEvent) (domain.Trip, error) {
	return s.update(ctx, "SetSpecialEvents", "set_special_events", func(t domain.Trip) (domain.Trip, error) {
		return domain.SetSpecialEvents(t, date, list)
	})
}

// SetParticipants replaces the trip roster.
func (s *TripService) SetParticipants(ctx context.Context, names []string) (domain.Trip, error) {
	return s.update(ctx, "SetParticipants", "set_participants", func(t domain.Trip) (domain.Trip, error) {
		return domain.SetParticipants(t, names), nil
	})
}

// Export returns the trip flattened to one row per meal.
func (s *TripService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trip, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Export: %w", err)
	}
	return domain.ExportRows(trip), nil
}

// update runs one read-modify-write cycle. A failing fn leaves the stored
// document untouched.
func (s *TripService) update(ctx context.Context, method, operation string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	trip, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", method, err)
	}
	next, err := fn(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", method, err)
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", method, err)
	}
	s.notify.changed(ctx, repo.TripDocument, operation)
	return next, nil
}
