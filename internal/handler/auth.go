package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/domain"
)

type loginRequest struct {
	Password string `json:"password"`
}

type messageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type authStatusResponse struct {
	OK            bool `json:"ok"`
	Authenticated bool `json:"authenticated"`
}

// Login handles POST /api/auth.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, expires, err := s.auth.Login(req.Password)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		writeMessage(w, http.StatusInternalServerError, "Password not configured")
		return
	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Invalid password")
		return
	case err != nil:
		s.internalError(w, r, err, msgInternal)
		return
	}

	http.SetCookie(w, s.sessionCookie(token, expires))
	writeJSON(w, http.StatusOK, messageResponse{OK: true, Message: "Authentication successful"})
}

// AuthStatus handles GET /api/auth. It always answers 200; the body says
// whether the session cookie is valid.
func (s *Server) AuthStatus(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(auth.CookieName)
	ok := err == nil && s.auth.Verify(c.Value)
	writeJSON(w, http.StatusOK, authStatusResponse{OK: ok, Authenticated: ok})
}

// Logout handles DELETE /api/auth by expiring the session cookie.
func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	c := s.sessionCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
	writeJSON(w, http.StatusOK, messageResponse{OK: true, Message: "Logged out"})
}

func (s *Server) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(auth.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
