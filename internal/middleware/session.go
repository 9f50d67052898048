package middleware

import (
	"encoding/json"
	"net/http"
)

// NewSessionGate returns a middleware that lets a request through only when
// it carries a cookie named cookieName whose value verify accepts. Anything
// else is answered with 401 {"ok":false,"error":"unauthorized"}.
func NewSessionGate(cookieName string, verify func(token string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || !verify(c.Value) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes the API's error envelope. It mirrors the handler
// package's envelope so rejected requests look the same to clients.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": msg})
}
