package service_test

import (
	"context"
	"sync"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/events"
	"github.com/pkordes/trip-planner/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	load func(ctx context.Context) (domain.Trip, error)
	save func(ctx context.Context, trip domain.Trip) error
}

func (m *mockTripRepo) Load(ctx context.Context) (domain.Trip, error) { return m.load(ctx) }
func (m *mockTripRepo) Save(ctx context.Context, t domain.Trip) error  { return m.save(ctx, t) }

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// memTripRepo returns a mock that keeps the saved trip in memory.
// A nil start means no trip has been initialised yet.
func memTripRepo(start *domain.Trip) (*mockTripRepo, *[]domain.Trip) {
	var current *domain.Trip
	if start != nil {
		cp := *start
		current = &cp
	}
	saves := &[]domain.Trip{}
	return &mockTripRepo{
		load: func(context.Context) (domain.Trip, error) {
			if current == nil {
				return domain.Trip{}, domain.ErrNotInitialized
			}
			return *current, nil
		},
		save: func(_ context.Context, t domain.Trip) error {
			current = &t
			*saves = append(*saves, t)
			return nil
		},
	}, saves
}

type mockPostRepo struct {
	load func(ctx context.Context) ([]domain.Post, error)
	save func(ctx context.Context, posts []domain.Post) error
}

func (m *mockPostRepo) Load(ctx context.Context) ([]domain.Post, error) { return m.load(ctx) }
func (m *mockPostRepo) Save(ctx context.Context, p []domain.Post) error  { return m.save(ctx, p) }

var _ repo.PostRepo = (*mockPostRepo)(nil)

// memPostRepo keeps the feed in memory and counts saves.
func memPostRepo(start []domain.Post) (*mockPostRepo, *int) {
	current := append([]domain.Post{}, start...)
	saves := new(int)
	return &mockPostRepo{
		load: func(context.Context) ([]domain.Post, error) {
			// Hand out a copy so callers cannot alias the stored slice.
			return append([]domain.Post{}, current...), nil
		},
		save: func(_ context.Context, p []domain.Post) error {
			current = append([]domain.Post{}, p...)
			*saves++
			return nil
		},
	}, saves
}

// recordingPublisher collects every event it is given.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DocumentChanged
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.DocumentChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) operations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Document+"/"+ev.Operation)
	}
	return out
}
