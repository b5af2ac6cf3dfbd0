package web

import (
	"log/slog"
	"net/http"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

type logsData struct {
	PageData
	Logs   []model.ActivityLog
	Failed bool
}

// LogsPage shows the technician's full handover history, newest first.
func (s *Server) LogsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	tech := claims.Technician()

	data := logsData{
		PageData: PageData{Title: "Riwayat Aktivitas", Technician: &tech},
	}

	logs, err := s.Backend.ListActivityLogs(r.Context(), tech.Name, 0)
	if err != nil {
		slog.Error("failed to list activity logs", "technician", tech.Name, "error", err)
		data.Failed = true
		s.Templates.Render(w, "logs.html", data)
		return
	}

	data.Logs = logs
	s.Templates.Render(w, "logs.html", data)
}
