package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/lacosdev-code/peminjaman/internal/auth"
	"github.com/lacosdev-code/peminjaman/internal/store"
)

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

// SessionMiddleware validates the session cookie, enforces the inactivity
// timeout against the server-side session row, and slides the activity
// window forward. An expired session ends exactly like a logout: the row and
// both cache keys go together, and the user lands back on the login screen.
func (s *Server) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		claims, err := auth.ValidateToken(s.SessionSecret, cookie.Value)
		if err != nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		session, err := store.GetSession(r.Context(), s.DB, claims.ID)
		if err != nil {
			slog.Error("failed to load session", "error", err)
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if session == nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if session.Expired(s.SessionTimeout) {
			slog.Info("session expired from inactivity", "technician", session.Technician.Name)
			if err := store.EndSession(r.Context(), s.DB, claims.ID, session.Technician.ID); err != nil {
				slog.Error("failed to end expired session", "error", err)
			}
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		// Every authenticated request is a tracked activity event.
		if err := store.TouchSession(r.Context(), s.DB, claims.ID); err != nil {
			slog.Error("failed to touch session", "error", err)
		}

		ctx := context.WithValue(r.Context(), webClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clearSessionCookie clears the session cookie with consistent attributes.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetClaims retrieves the session claims from the request context.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
