package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

// ErrTechnicianNotFound is returned when neither the authentication
// procedure nor the name fallback resolves the input.
var ErrTechnicianNotFound = fmt.Errorf("nomor WA atau nama tidak ditemukan, hubungi admin")

// authResult is the authentication procedure's response shape.
type authResult struct {
	Success    bool              `json:"success"`
	Technician *model.Technician `json:"technician,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// technicianRow is a technicians table row; the column naming differs from
// the procedure's response.
type technicianRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	WhatsappNumber string `json:"whatsapp_number"`
	AvatarURL      string `json:"avatar_url,omitempty"`
}

// AuthenticateTechnician resolves a WhatsApp number or name to a technician
// identity. The authentication procedure is tried first; if it fails or
// rejects the input, a case-insensitive exact name lookup against the
// technicians table is the fallback.
func (c *Client) AuthenticateTechnician(ctx context.Context, input string) (*model.Technician, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrTechnicianNotFound
	}

	var result authResult
	err := c.rpc(ctx, "authenticate_technician", map[string]string{"p_whatsapp": input}, &result)
	if err == nil && result.Success && result.Technician != nil {
		return result.Technician, nil
	}
	if err != nil {
		slog.Warn("authentication procedure failed, falling back to name lookup", "error", err)
	}

	query := url.Values{}
	query.Set("select", "id,name,whatsapp_number,avatar_url")
	query.Set("name", ilike(input))
	query.Set("limit", "1")

	var rows []technicianRow
	if err := c.get(ctx, "technicians", query, &rows); err != nil {
		return nil, fmt.Errorf("technician name lookup: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrTechnicianNotFound
	}

	return &model.Technician{
		ID:        rows[0].ID,
		Name:      rows[0].Name,
		Whatsapp:  rows[0].WhatsappNumber,
		AvatarURL: rows[0].AvatarURL,
	}, nil
}
