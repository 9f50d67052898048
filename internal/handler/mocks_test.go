package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	init             func(ctx context.Context, p service.InitParams) (domain.Trip, bool, error)
	get              func(ctx context.Context) (domain.Trip, error)
	replace          func(ctx context.Context, trip domain.Trip) error
	addDay           func(ctx context.Context, pos domain.DayPosition) (domain.Trip, error)
	removeDay        func(ctx context.Context, date string) (domain.Trip, error)
	replaceDay       func(ctx context.Context, day domain.Day) (domain.Trip, error)
	saveMeal         func(ctx context.Context, date string, meal domain.Meal) (domain.Trip, domain.Meal, error)
	deleteMeal       func(ctx context.Context, date, id string) (domain.Trip, error)
	moveMeal         func(ctx context.Context, from, id, to string) (domain.Trip, error)
	setSpecialEvents func(ctx context.Context, date string, list []domain.SpecialEvent) (domain.Trip, error)
	setParticipants  func(ctx context.Context, names []string) (domain.Trip, error)
	export           func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockTripServicer) Init(ctx context.Context, p service.InitParams) (domain.Trip, bool, error) {
	return m.init(ctx, p)
}
func (m *mockTripServicer) Get(ctx context.Context) (domain.Trip, error) { return m.get(ctx) }
func (m *mockTripServicer) Replace(ctx context.Context, t domain.Trip) error {
	return m.replace(ctx, t)
}
func (m *mockTripServicer) AddDay(ctx context.Context, pos domain.DayPosition) (domain.Trip, error) {
	return m.addDay(ctx, pos)
}
func (m *mockTripServicer) RemoveDay(ctx context.Context, date string) (domain.Trip, error) {
	return m.removeDay(ctx, date)
}
func (m *mockTripServicer) ReplaceDay(ctx context.Context, day domain.Day) (domain.Trip, error) {
	return m.replaceDay(ctx, day)
}
func (m *mockTripServicer) SaveMeal(ctx context.Context, date string, meal domain.Meal) (domain.Trip, domain.Meal, error) {
	return m.saveMeal(ctx, date, meal)
}
func (m *mockTripServicer) DeleteMeal(ctx context.Context, date, id string) (domain.Trip, error) {
	return m.deleteMeal(ctx, date, id)
}
func (m *mockTripServicer) MoveMeal(ctx context.Context, from, id, to string) (domain.Trip, error) {
	return m.moveMeal(ctx, from, id, to)
}
func (m *mockTripServicer) SetSpecialEvents(ctx context.Context, date string, list []domain.SpecialEvent) (domain.Trip, error) {
	return m.setSpecialEvents(ctx, date, list)
}
func (m *mockTripServicer) SetParticipants(ctx context.Context, names []string) (domain.Trip, error) {
	return m.setParticipants(ctx, names)
}
func (m *mockTripServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockSharingServicer is a test double for handler.SharingServicer.
type mockSharingServicer struct {
	list        func(ctx context.Context) ([]domain.Post, error)
	listPaged   func(ctx context.Context, p domain.PaginationParams) ([]domain.Post, int, error)
	replace     func(ctx context.Context, posts []domain.Post) error
	addPost     func(ctx context.Context, in service.PostInput) (domain.Post, error)
	updatePost  func(ctx context.Context, id string, in service.PostInput) (domain.Post, error)
	deletePost  func(ctx context.Context, id string) error
	addComment  func(ctx context.Context, postID string, in service.CommentInput) (domain.Post, error)
	likePost    func(ctx context.Context, id string) (domain.Post, error)
	viewPost    func(ctx context.Context, id string) (domain.Post, error)
	likeComment func(ctx context.Context, postID, commentID string) (domain.Post, error)
	publishTrip func(ctx context.Context, in service.PublishInput) (domain.Post, error)
}

func (m *mockSharingServicer) List(ctx context.Context) ([]domain.Post, error) { return m.list(ctx) }
func (m *mockSharingServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Post, int, error) {
	return m.listPaged(ctx, p)
}
func (m *mockSharingServicer) Replace(ctx context.Context, posts []domain.Post) error {
	return m.replace(ctx, posts)
}
func (m *mockSharingServicer) AddPost(ctx context.Context, in service.PostInput) (domain.Post, error) {
	return m.addPost(ctx, in)
}
func (m *mockSharingServicer) UpdatePost(ctx context.Context, id string, in service.PostInput) (domain.Post, error) {
	return m.updatePost(ctx, id, in)
}
func (m *mockSharingServicer) DeletePost(ctx context.Context, id string) error {
	return m.deletePost(ctx, id)
}
func (m *mockSharingServicer) AddComment(ctx context.Context, postID string, in service.CommentInput) (domain.Post, error) {
	return m.addComment(ctx, postID, in)
}
func (m *mockSharingServicer) LikePost(ctx context.Context, id string) (domain.Post, error) {
	return m.likePost(ctx, id)
}
func (m *mockSharingServicer) ViewPost(ctx context.Context, id string) (domain.Post, error) {
	return m.viewPost(ctx, id)
}
func (m *mockSharingServicer) LikeComment(ctx context.Context, postID, commentID string) (domain.Post, error) {
	return m.likeComment(ctx, postID, commentID)
}
func (m *mockSharingServicer) PublishTrip(ctx context.Context, in service.PublishInput) (domain.Post, error) {
	return m.publishTrip(ctx, in)
}

var _ handler.SharingServicer = (*mockSharingServicer)(nil)

// stubAuth accepts exactly one password and one token.
type stubAuth struct {
	password string
	token    string
	err      error
}

func (a stubAuth) Login(password string) (string, time.Time, error) {
	if a.err != nil {
		return "", time.Time{}, a.err
	}
	if password != a.password {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	return a.token, time.Now().Add(auth.SessionTTL), nil
}

func (a stubAuth) Verify(token string) bool { return token != "" && token == a.token }

var _ handler.Authenticator = stubAuth{}

// ---- helpers ---------------------------------------------------------------

const validToken = "valid-session"

func defaultAuth() stubAuth { return stubAuth{password: "hunter2", token: validToken} }

// newHTTPHandler wires a Server with the given mocks into its router.
// Nil services are replaced by empty mocks, which panic if called.
func newHTTPHandler(trips handler.TripServicer, sharing handler.SharingServicer) http.Handler {
	if trips == nil {
		trips = &mockTripServicer{}
	}
	if sharing == nil {
		sharing = &mockSharingServicer{}
	}
	srv := handler.NewServer(trips, sharing, defaultAuth(), handler.Options{
		Logger: discardLogger(),
	})
	return srv.Routes()
}

// do sends an authenticated request with an optional JSON body.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = jsonBody(t, body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: validToken})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decode unmarshals the recorder's body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func tripFixture() domain.Trip {
	trip := domain.EmptyTrip("2026-02-04", "2026-02-06", []string{"Alex", "Ben"},
		time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC))
	trip.Days[0].Meals = []domain.Meal{{
		ID:           "m1",
		Note:         "ramen",
		Participants: []string{"Alex"},
		TimeSlot:     "12:30",
		Type:         domain.MealLunch,
	}}
	return trip
}
