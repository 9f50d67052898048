package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Messages shown to clients for well-known failures.
const (
	msgNotInitialized = "Not initialized"
	msgInternal       = "internal error"
	msgInvalidJSON    = "invalid JSON body"
	msgBodyTooLarge   = "request body too large"
)

// errorBody is the envelope of every failed request.
type errorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes an error envelope carrying msg.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{OK: false, Error: msg})
}

// writeError maps a service error to its HTTP status. Anything that is not a
// known domain error is logged and reported as a generic 500 so internal
// details never reach the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotInitialized):
		writeMessage(w, http.StatusNotFound, msgNotInitialized)
	case errors.Is(err, domain.ErrLastDay):
		writeMessage(w, http.StatusConflict, domain.ErrLastDay.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, clientMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, clientMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	default:
		s.internalError(w, r, err, msgInternal)
	}
}

// internalError logs err and answers 500 with msg.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeMessage(w, http.StatusInternalServerError, msg)
}

// decodeJSON reads the request body into dst. On failure it writes the
// response itself (413 for an oversized body, 400 otherwise) and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeBody(r, dst); err != nil {
		if isTooLarge(err) {
			writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return false
		}
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// isTooLarge reports whether err comes from a body cut off by http.MaxBytesReader.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

// clientMessage strips the "pkg.Type.Method: " operation prefixes from an
// error chain, leaving the part meant for humans.
// e.g. "service.TripService.DeleteMeal: meal m1: not found" → "meal m1: not found"
func clientMessage(err error) string {
	parts := strings.Split(err.Error(), ": ")
	for len(parts) > 1 && isOpPrefix(parts[0]) {
		parts = parts[1:]
	}
	return strings.Join(parts, ": ")
}

func isOpPrefix(s string) bool {
	return strings.Contains(s, ".") && !strings.ContainsAny(s, " \t")
}
