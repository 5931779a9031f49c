package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/agroth3/nfl-playoff-picks/controller"
	"github.com/agroth3/nfl-playoff-picks/db"
	"github.com/agroth3/nfl-playoff-picks/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/itbasis/go-clock"
	"go.uber.org/zap"
)

const sessionCookie = "picks_session"

var errNoSession = errors.New("no session")

// SessionManager stores the signed in user's id in a signed cookie.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	clock  clock.Clock
}

func NewSessionManager(secret string, ttl time.Duration, secure bool, clock clock.Clock) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		clock:  clock,
	}
}

func (s *SessionManager) token(userID string) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Start signs userID in by setting the session cookie on w.
func (s *SessionManager) Start(w http.ResponseWriter, userID string) error {
	token, err := s.token(userID)
	if err != nil {
		return fmt.Errorf("error signing session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *SessionManager) End(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID returns the id of the signed in user, or errNoSession if the request
// has no valid session cookie.
func (s *SessionManager) UserID(r *http.Request) (string, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return "", errNoSession
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(c.Value, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errNoSession, err)
	}
	if claims.Subject == "" {
		return "", errNoSession
	}
	return claims.Subject, nil
}

type userCtxKey struct{}

// loadUser resolves the session cookie into a user and stores it on the
// request context. Invalid sessions are cleared.
func loadUser(ctrl controller.C, sessions *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserID(r)
			if err != nil {
				if _, cerr := r.Cookie(sessionCookie); cerr == nil {
					sessions.End(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			u, err := ctrl.GetUser(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, db.ErrUserNotFound) {
					loggerFrom(r.Context()).Error("error loading session user", zap.Error(err))
				}
				sessions.End(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireUser redirects anonymous requests to the login page.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) == nil {
			http.Redirect(w, r, "/login?redirectTo="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *model.User {
	u, _ := r.Context().Value(userCtxKey{}).(*model.User)
	return u
}
