package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lacosdev-code/peminjaman/internal/auth"
	"github.com/lacosdev-code/peminjaman/internal/backend"
	"github.com/lacosdev-code/peminjaman/internal/store"
)

type loginData struct {
	PageData
	Input string
}

// LoginPage renders the login form.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", loginData{
		PageData: PageData{Title: "Masuk"},
	})
}

// LoginSubmit verifies the technician against the backend and starts a
// session. The backend accepts either a WhatsApp number or a full name.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	input := strings.TrimSpace(r.FormValue("identity"))
	if input == "" {
		s.renderLoginError(w, input, "Masukkan nomor WhatsApp atau nama lengkap")
		return
	}

	tech, err := s.Backend.AuthenticateTechnician(r.Context(), input)
	if err != nil {
		if errors.Is(err, backend.ErrTechnicianNotFound) {
			s.renderLoginError(w, input, err.Error())
			return
		}
		slog.Error("failed to authenticate technician", "error", err)
		s.renderLoginError(w, input, "Tidak dapat menghubungi server, coba lagi")
		return
	}

	token, jti, err := auth.GenerateToken(s.SessionSecret, *tech)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := store.CreateSession(r.Context(), s.DB, jti, *tech); err != nil {
		slog.Error("failed to create session", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	slog.Info("technician logged in", "technician", tech.Name)

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderLoginError(w http.ResponseWriter, input, message string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.Templates.Render(w, "login.html", loginData{
		PageData: PageData{Title: "Masuk", Error: message},
		Input:    input,
	})
}

// Logout ends the session and clears the per-technician caches with it.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session")
	if err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.SessionSecret, cookie.Value); err == nil {
			if err := store.EndSession(r.Context(), s.DB, claims.ID, claims.TechnicianID); err != nil {
				slog.Error("failed to end session", "error", err)
			}
		}
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
