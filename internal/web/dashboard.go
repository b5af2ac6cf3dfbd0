package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/lacosdev-code/peminjaman/internal/model"
	"github.com/lacosdev-code/peminjaman/internal/recon"
	"github.com/lacosdev-code/peminjaman/internal/store"
)

// recentLogLimit is how many activity entries the dashboard shows. The logs
// page shows the full history.
const recentLogLimit = 10

type dashboardData struct {
	PageData
	ActiveTools []model.ActiveTool
	RecentLogs  []model.ActivityLog
	FromCache   bool
	EventCursor int64
}

// Dashboard renders the home screen. Active tools are reconciled from three
// backend sources fetched concurrently. When the backend is unreachable the
// last cached snapshot is shown instead of an error.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	tech := claims.Technician()

	var (
		wg       sync.WaitGroup
		logs     []model.ActivityLog
		loans    []model.Loan
		assigned []model.Asset

		logsErr     error
		loansErr    error
		assignedErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		logs, logsErr = s.Backend.ListActivityLogs(r.Context(), tech.Name, recentLogLimit)
	}()
	go func() {
		defer wg.Done()
		loans, loansErr = s.Backend.ListActiveLoans(r.Context(), tech.Name)
	}()
	go func() {
		defer wg.Done()
		assigned, assignedErr = s.Backend.ListAssetsByLocation(r.Context(), tech.Name)
	}()
	wg.Wait()

	data := dashboardData{
		PageData: PageData{Title: "Beranda", Technician: &tech},
	}
	if s.Watcher != nil {
		data.EventCursor = s.Watcher.Latest()
	}

	if err := errors.Join(logsErr, loansErr, assignedErr); err != nil {
		slog.Warn("dashboard fetch failed, falling back to cache",
			"technician", tech.Name, "error", err)
		data.ActiveTools, data.RecentLogs = s.cachedDashboard(r, tech.ID)
		data.FromCache = true
		s.Templates.Render(w, "dashboard.html", data)
		return
	}

	data.ActiveTools = recon.Reconcile(loans, assigned, logs)
	data.RecentLogs = logs

	s.cacheDashboard(r, tech.ID, data.ActiveTools, data.RecentLogs)
	s.Templates.Render(w, "dashboard.html", data)
}

// cachedDashboard loads the last known snapshot from the cache table. Missing
// or corrupt entries degrade to empty lists, never to an error page.
func (s *Server) cachedDashboard(r *http.Request, technicianID string) ([]model.ActiveTool, []model.ActivityLog) {
	var (
		tools []model.ActiveTool
		logs  []model.ActivityLog
	)

	if raw, ok, err := store.GetCache(r.Context(), s.DB, technicianID, store.CacheKeyActiveTools); err != nil {
		slog.Error("failed to read active tools cache", "error", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &tools); err != nil {
			slog.Error("corrupt active tools cache entry", "error", err)
			tools = nil
		}
	}

	if raw, ok, err := store.GetCache(r.Context(), s.DB, technicianID, store.CacheKeyRecentLogs); err != nil {
		slog.Error("failed to read recent logs cache", "error", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &logs); err != nil {
			slog.Error("corrupt recent logs cache entry", "error", err)
			logs = nil
		}
	}

	return tools, logs
}

func (s *Server) cacheDashboard(r *http.Request, technicianID string, tools []model.ActiveTool, logs []model.ActivityLog) {
	if toolsJSON, err := json.Marshal(tools); err == nil {
		if err := store.PutCache(r.Context(), s.DB, technicianID, store.CacheKeyActiveTools, string(toolsJSON)); err != nil {
			slog.Error("failed to cache active tools", "error", err)
		}
	}
	if logsJSON, err := json.Marshal(logs); err == nil {
		if err := store.PutCache(r.Context(), s.DB, technicianID, store.CacheKeyRecentLogs, string(logsJSON)); err != nil {
			slog.Error("failed to cache recent logs", "error", err)
		}
	}
}
