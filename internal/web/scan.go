package web

import "net/http"

// ScanPage renders the QR scanner. Decoding happens in the browser; a
// decoded asset id navigates to its handover form.
func (s *Server) ScanPage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	tech := claims.Technician()

	s.Templates.Render(w, "scan.html", PageData{
		Title:      "Pindai QR",
		Technician: &tech,
	})
}
