package model

import "time"

// Handover transaction types.
const (
	TypePinjam  = "Pinjam"  // borrow
	TypeKembali = "Kembali" // return
)

// ValidHandoverType reports whether s is a known transaction type.
func ValidHandoverType(s string) bool {
	return s == TypePinjam || s == TypeKembali
}

// LogDetail is the structured payload embedded in an activity log entry.
// The backend's handover procedure is the sole writer.
type LogDetail struct {
	Technician string `json:"teknisi"`
	Type       string `json:"type"`
	ItemName   string `json:"item_name"`
	ItemID     int64  `json:"item_id,omitempty"`
	Condition  string `json:"condition,omitempty"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

// ActivityLog represents an append-only activity log entry.
type ActivityLog struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Details   LogDetail `json:"details"`
}
