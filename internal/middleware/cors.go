// Package middleware provides the HTTP middleware of the trip planner API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// preflightMaxAge is how long, in seconds, a browser may cache a preflight.
const preflightMaxAge = 600

// NewCORSHandler returns a middleware that lets the planner UI call the API
// from the origins in allowedOrigins (scheme + host, no trailing slash).
//
// The session travels in the auth-token cookie, so credentials are allowed
// and a wildcard origin is never honoured: browsers refuse "*" together with
// credentials. The UI reads the CSV download name and the request ID, so
// both headers are exposed.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o != "*" {
			origins = append(origins, o)
		}
	}
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           preflightMaxAge,
	}
	if len(origins) == 0 {
		// rs/cors treats an empty list as "*".
		opts.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(opts).Handler
}
