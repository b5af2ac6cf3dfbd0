package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

// ListActivityLogs returns a technician's activity log entries, newest
// first. A limit of 0 returns the full history.
func (c *Client) ListActivityLogs(ctx context.Context, technicianName string, limit int) ([]model.ActivityLog, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("details->>teknisi", eq(technicianName))
	query.Set("order", "created_at.desc")
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var logs []model.ActivityLog
	if err := c.get(ctx, "activity_logs", query, &logs); err != nil {
		return nil, fmt.Errorf("listing activity logs: %w", err)
	}
	return logs, nil
}

// LatestLogID returns the newest activity log identifier, or 0 when the
// table is empty.
func (c *Client) LatestLogID(ctx context.Context) (int64, error) {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("order", "id.desc")
	query.Set("limit", "1")

	var rows []struct {
		ID int64 `json:"id"`
	}
	if err := c.get(ctx, "activity_logs", query, &rows); err != nil {
		return 0, fmt.Errorf("getting latest log id: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].ID, nil
}
