// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, trip.go, sharing.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage.
type TripServicer interface {
	Init(ctx context.Context, p service.InitParams) (domain.Trip, bool, error)
	Get(ctx context.Context) (domain.Trip, error)
	Replace(ctx context.Context, trip domain.Trip) error
	AddDay(ctx context.Context, pos domain.DayPosition) (domain.Trip, error)
	RemoveDay(ctx context.Context, date string) (domain.Trip, error)
	ReplaceDay(ctx context.Context, day domain.Day) (domain.Trip, error)
	SaveMeal(ctx context.Context, date string, meal domain.Meal) (domain.Trip, domain.Meal, error)
	DeleteMeal(ctx context.Context, date, mealID string) (domain.Trip, error)
	MoveMeal(ctx context.Context, from, mealID, to string) (domain.Trip, error)
	SetSpecialEvents(ctx context.Context, date string, list []domain.SpecialEvent) (domain.Trip, error)
	SetParticipants(ctx context.Context, names []string) (domain.Trip, error)
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// SharingServicer defines the feed operations the handlers depend on.
type SharingServicer interface {
	List(ctx context.Context) ([]domain.Post, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Post, int, error)
	Replace(ctx context.Context, posts []domain.Post) error
	AddPost(ctx context.Context, in service.PostInput) (domain.Post, error)
	UpdatePost(ctx context.Context, id string, in service.PostInput) (domain.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID string, in service.CommentInput) (domain.Post, error)
	LikePost(ctx context.Context, id string) (domain.Post, error)
	ViewPost(ctx context.Context, id string) (domain.Post, error)
	LikeComment(ctx context.Context, postID, commentID string) (domain.Post, error)
	PublishTrip(ctx context.Context, in service.PublishInput) (domain.Post, error)
}

// Authenticator issues and checks session tokens.
type Authenticator interface {
	Login(password string) (token string, expires time.Time, err error)
	Verify(token string) bool
}

// Options are the optional knobs of NewServer.
type Options struct {
	// CookieSecure sets the Secure attribute on the session cookie.
	CookieSecure bool
	// Logger receives handler errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server serves the whole API. Wire it in main.go via Routes.
type Server struct {
	trips    TripServicer
	sharing  SharingServicer
	auth     Authenticator
	log      *slog.Logger
	validate *validator.Validate
	secure   bool
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, sharing SharingServicer, authn Authenticator, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:    trips,
		sharing:  sharing,
		auth:     authn,
		log:      log,
		validate: validator.New(),
		secure:   opts.CookieSecure,
	}
}

// Routes returns the router for every endpoint. Cross-cutting middleware
// (request IDs, logging, CORS, body limits) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth", s.Login)
		r.Get("/auth", s.AuthStatus)
		r.Delete("/auth", s.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NewSessionGate(auth.CookieName, s.auth.Verify))

			r.Post("/init", s.InitTrip)

			r.Get("/trip", s.GetTrip)
			r.Post("/trip", s.ReplaceTrip)
			r.Put("/trip", s.ReplaceTrip)
			r.Put("/trip/participants", s.SetParticipants)
			r.Get("/trip/export", s.ExportTrip)
			r.Post("/trip/days", s.AddDay)
			r.Route("/trip/days/{date}", func(r chi.Router) {
				r.Put("/", s.ReplaceDay)
				r.Delete("/", s.RemoveDay)
				r.Put("/meals", s.SaveMeal)
				r.Delete("/meals/{id}", s.DeleteMeal)
				r.Post("/meals/{id}/move", s.MoveMeal)
				r.Put("/special-events", s.SetSpecialEvents)
			})

			r.Get("/sharing", s.GetSharing)
			r.Post("/sharing", s.ReplaceSharing)
			r.Post("/sharing/publish", s.PublishTrip)
			r.Get("/sharing/posts", s.ListPosts)
			r.Post("/sharing/posts", s.CreatePost)
			r.Route("/sharing/posts/{id}", func(r chi.Router) {
				r.Put("/", s.UpdatePost)
				r.Delete("/", s.DeletePost)
				r.Post("/comments", s.AddComment)
				r.Post("/like", s.LikePost)
				r.Post("/view", s.ViewPost)
				r.Post("/comments/{cid}/like", s.LikeComment)
			})
		})
	})

	return r
}
