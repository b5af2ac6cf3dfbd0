package backend

import (
	"context"
	"fmt"
)

// HandoverRequest is one borrow or return transaction to record.
type HandoverRequest struct {
	ItemID     int64
	Technician string
	Type       string
	Condition  string
	Notes      string
	PhotoURL   string
}

// HandoverResult is the handover procedure's response.
type HandoverResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LogHandover invokes the backend's handover procedure, which atomically
// adjusts stock and appends the activity log entry. This client has no
// visibility into that atomicity; a rejected call returns the backend's
// message so it can be shown verbatim.
func (c *Client) LogHandover(ctx context.Context, req HandoverRequest) error {
	params := map[string]any{
		"p_item_id":   req.ItemID,
		"p_teknisi":   req.Technician,
		"p_tipe":      req.Type,
		"p_kondisi":   req.Condition,
		"p_catatan":   req.Notes,
		"p_photo_url": req.PhotoURL,
	}

	var result HandoverResult
	if err := c.rpc(ctx, "log_tool_handover", params, &result); err != nil {
		return fmt.Errorf("handover procedure: %w", err)
	}
	if !result.Success {
		if result.Message != "" {
			return &Error{Message: result.Message}
		}
		return fmt.Errorf("gagal memproses serah terima")
	}
	return nil
}
