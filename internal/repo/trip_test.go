package repo_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// stubDocument is a hand-written test double for repo.Document.
type stubDocument struct {
	read  func(ctx context.Context) ([]byte, error)
	write func(ctx context.Context, data []byte) error
}

func (s *stubDocument) Read(ctx context.Context) ([]byte, error) { return s.read(ctx) }
func (s *stubDocument) Write(ctx context.Context, data []byte) error {
	return s.write(ctx, data)
}

// compile-time check: stubDocument must satisfy repo.Document.
var _ repo.Document = (*stubDocument)(nil)

// tripFixture returns a fully populated trip whose lists are all non-nil, so
// it survives a JSON round trip unchanged.
func tripFixture() domain.Trip {
	people := 3
	price := 12000.0
	trip := domain.EmptyTrip("2026-02-04", "2026-02-06", []string{"Alex", "Ben"}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	trip.Days[0].Meals = []domain.Meal{{
		ID:           "m1",
		Note:         "ramen",
		Participants: []string{"Alex", "Ben"},
		TimeSlot:     "12:00",
		Type:         domain.MealLunch,
		Booking: &domain.Booking{
			Place: "Ichiran", Time: "2026-02-04 12:00", People: &people, Price: &price,
			URL: "https://example.com", GoogleMaps: "https://maps.example.com", IsBooked: true,
		},
	}}
	trip.Days[1].SpecialEvents = []domain.SpecialEvent{{ID: "e1", Title: "Ski lesson", Time: "09:00", Category: "活動"}}
	trip.Days[2].Special = "back to Tokyo"
	return trip
}

func TestTripRepo_RoundTrip(t *testing.T) {
	r := repo.NewTripRepo(repo.NewFileDocument(filepath.Join(t.TempDir(), "trip.json")))
	ctx := context.Background()
	want := tripFixture()

	require.NoError(t, r.Save(ctx, want))
	got, err := r.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTripRepo_LoadNotInitialized(t *testing.T) {
	r := repo.NewTripRepo(repo.NewFileDocument(filepath.Join(t.TempDir(), "trip.json")))

	_, err := r.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestTripRepo_LoadMalformedIsNotUninitialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"meta":`), 0o644))
	r := repo.NewTripRepo(repo.NewFileDocument(path))

	_, err := r.Load(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotInitialized)
}

func TestTripRepo_LoadReadError(t *testing.T) {
	ioErr := errors.New("disk on fire")
	r := repo.NewTripRepo(&stubDocument{
		read: func(context.Context) ([]byte, error) { return nil, ioErr },
	})

	_, err := r.Load(context.Background())

	assert.ErrorIs(t, err, ioErr)
	assert.NotErrorIs(t, err, domain.ErrNotInitialized)
}

func TestTripRepo_SaveWriteError(t *testing.T) {
	ioErr := errors.New("disk full")
	r := repo.NewTripRepo(&stubDocument{
		write: func(context.Context, []byte) error { return ioErr },
	})

	err := r.Save(context.Background(), tripFixture())

	assert.ErrorIs(t, err, ioErr)
}

// TestTripRepo_LegacyUpgradePersistsOnSave checks that a legacy document is
// served in the current shape and written back in that shape.
func TestTripRepo_LegacyUpgradePersistsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	legacy := `{"meta":{"startDate":"2026-02-04","endDate":"2026-02-04","createdAt":"x","participants":[]},
	  "days":[{"date":"2026-02-04","weekday":"星期三","lunch":{"note":"ramen","participants":[],"booking":null},
	  "dinner":{"note":"","participants":[],"booking":null},"special":""}]}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	r := repo.NewTripRepo(repo.NewFileDocument(path))
	ctx := context.Background()

	trip, err := r.Load(ctx)
	require.NoError(t, err)
	require.Len(t, trip.Days[0].Meals, 1)

	require.NoError(t, r.Save(ctx, trip))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored struct {
		Days []map[string]json.RawMessage `json:"days"`
	}
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored.Days, 1)
	assert.NotContains(t, stored.Days[0], "lunch")
	assert.NotContains(t, stored.Days[0], "dinner")
	assert.Contains(t, stored.Days[0], "meals")
}

// TestTripRepo_BookingFieldsSurviveRoundTrip loads a stored booking and saves
// it back, checking no field is lost on the way.
func TestTripRepo_BookingFieldsSurviveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	stored := `{"meta":{"startDate":"2026-02-04","endDate":"2026-02-04","createdAt":"x","participants":[]},
	  "days":[{"date":"2026-02-04","weekday":"星期三","special":"","specialEvents":[],
	  "meals":[{"id":"m1","note":"","participants":[],"timeSlot":"12:00","type":"lunch",
	  "booking":{"place":"A","time":"2026-02-04 12:30","people":4,"ref":"R1","contact":"c","price":1200.5,
	  "url":"u","googleMaps":"g","notes":"n","timeSlot":"12:30","isBooked":true}}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(stored), 0o644))
	r := repo.NewTripRepo(repo.NewFileDocument(path))
	ctx := context.Background()

	trip, err := r.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, r.Save(ctx, trip))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got, want struct {
		Days []struct {
			Meals []struct {
				Booking map[string]any `json:"booking"`
			} `json:"meals"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	require.NoError(t, json.Unmarshal([]byte(stored), &want))
	assert.Equal(t, want.Days[0].Meals[0].Booking, got.Days[0].Meals[0].Booking)
	assert.Equal(t, "12:30", trip.Days[0].Meals[0].Booking.TimeSlot)
}
