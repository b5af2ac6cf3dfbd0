package web

import (
	"net/http"

	webembed "github.com/lacosdev-code/peminjaman/web"
)

// NewRouter creates the page router with all routes registered.
func NewRouter(s *Server) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	s.Templates = templates

	mux := http.NewServeMux()
	withSession := s.SessionMiddleware

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated screens.
	mux.Handle("GET /{$}", withSession(http.HandlerFunc(s.Dashboard)))
	mux.Handle("GET /assets", withSession(http.HandlerFunc(s.AssetsPage)))
	mux.Handle("GET /personal-assets", withSession(http.HandlerFunc(s.PersonalAssetsPage)))
	mux.Handle("POST /personal-assets/{id}/condition", withSession(http.HandlerFunc(s.PersonalAssetConditionSubmit)))
	mux.Handle("GET /scan", withSession(http.HandlerFunc(s.ScanPage)))
	mux.Handle("GET /handover/{id}", withSession(http.HandlerFunc(s.HandoverPage)))
	mux.Handle("POST /handover/{id}", withSession(http.HandlerFunc(s.HandoverSubmit)))
	mux.Handle("GET /logs", withSession(http.HandlerFunc(s.LogsPage)))

	// Change feed for the dashboard's full re-fetch.
	mux.Handle("GET /events/logs", withSession(http.HandlerFunc(s.LogEvents)))

	return mux, nil
}
