package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// longPollTimeout keeps long-poll requests under common proxy limits.
const longPollTimeout = 25 * time.Second

// LogEvents long-polls for new activity log entries. Clients send the last
// log id they rendered with and get the newer id back as soon as the watcher
// sees one, or the same id again after the timeout.
func (s *Server) LogEvents(w http.ResponseWriter, r *http.Request) {
	if s.Watcher == nil {
		http.Error(w, "change feed disabled", http.StatusNotFound)
		return
	}

	since, err := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
	if err != nil {
		since = 0
	}

	ctx, cancel := context.WithTimeout(r.Context(), longPollTimeout)
	defer cancel()

	latest := s.Watcher.Wait(ctx, since)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]int64{"latest": latest}); err != nil {
		return
	}
}
