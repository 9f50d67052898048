package domain

import "errors"

// ErrNotFound is returned when a day, meal, post or comment referenced by a
// request does not exist in the stored document.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrNotInitialized is returned by the trip store when no trip document has
// been created yet. It is distinct from ErrNotFound so callers can prompt for
// initialisation instead of reporting a missing entity.
// Handlers should map this to HTTP 404.
var ErrNotInitialized = errors.New("not initialized")

// ErrValidation is returned when a request is missing a required field or
// carries a value of the wrong shape (e.g. an unknown day position).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrLastDay is returned by RemoveDay when the trip has a single day left.
// Handlers should map this to HTTP 409 Conflict.
var ErrLastDay = errors.New("cannot remove the last remaining day")

// ErrUnauthorized is returned by the auth gate for a wrong password.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
