// Package auth implements the shared-password gate. A correct password
// yields a signed session token that stays valid for SessionTTL.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// CookieName is the name of the session cookie.
const CookieName = "auth-token"

// SessionTTL is how long a session token is accepted after it was issued.
const SessionTTL = 24 * time.Hour

// tokenSubject is the only subject this gate ever issues.
const tokenSubject = "authenticated"

// ErrNotConfigured is returned by Login when no shared password is set.
// Handlers should map this to HTTP 500.
var ErrNotConfigured = errors.New("password not configured")

// Authenticator checks the shared password and issues/verifies tokens.
// The zero value is not usable; construct with New.
type Authenticator struct {
	secret string
	key    []byte
	now    func() time.Time
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithClock overrides time.Now. Used by tests to move through a session's lifetime.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

// WithSigningKey sets the HMAC key for tokens. Without it the key is derived
// from the shared password, so changing the password logs everyone out.
func WithSigningKey(key []byte) Option {
	return func(a *Authenticator) {
		if len(key) > 0 {
			a.key = key
		}
	}
}

// New returns an Authenticator for the given shared secret. The secret may
// be plain text or a bcrypt hash ($2a$/$2b$/$2y$). An empty secret is allowed
// so the server can start; Login then reports ErrNotConfigured.
func New(secret string, opts ...Option) *Authenticator {
	a := &Authenticator{secret: secret, now: time.Now}
	if secret != "" {
		sum := sha256.Sum256([]byte("trip-planner-session:" + secret))
		a.key = sum[:]
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Login checks password against the shared secret and returns a session
// token with its expiry time.
func (a *Authenticator) Login(password string) (string, time.Time, error) {
	if a.secret == "" {
		return "", time.Time{}, ErrNotConfigured
	}
	if !a.matches(password) {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	issued := a.now()
	expires := issued.Add(SessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth.Authenticator.Login: sign: %w", err)
	}
	return token, expires, nil
}

// Verify reports whether token is a well-formed token signed by this gate
// and issued less than SessionTTL ago. It never returns an error: anything
// that does not verify simply means "not authenticated".
func (a *Authenticator) Verify(token string) bool {
	if token == "" || len(a.key) == 0 {
		return false
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return a.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(tokenSubject),
	)
	if err != nil || !parsed.Valid || claims.IssuedAt == nil {
		return false
	}
	return a.now().Sub(claims.IssuedAt.Time) < SessionTTL
}

// matches compares in constant time. Plain secrets are hashed first so the
// comparison does not leak the secret's length.
func (a *Authenticator) matches(password string) bool {
	if isBcryptHash(a.secret) {
		return bcrypt.CompareHashAndPassword([]byte(a.secret), []byte(password)) == nil
	}
	want := sha256.Sum256([]byte(a.secret))
	got := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
