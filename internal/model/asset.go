package model

import (
	"strings"
	"time"
)

// Asset represents a pooled catalog tool (inventaris_utama row). The
// available count is the backend's stock truth; this client never computes
// it, only renders it.
type Asset struct {
	ID        int64      `json:"id"`
	Name      string     `json:"nama"`
	Category  string     `json:"kategori,omitempty"`
	Unit      string     `json:"satuan,omitempty"`
	Available int        `json:"jumlah_tersedia"`
	Total     int        `json:"jumlah_total,omitempty"`
	Location  string     `json:"lokasi,omitempty"`
	Condition string     `json:"kondisi,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Availability labels, derived solely from the backend's available count.
const (
	AvailabilityHabis    = "Habis"    // out of stock
	AvailabilityTerbatas = "Terbatas" // limited (1-2 left)
	AvailabilityTersedia = "Tersedia" // available
)

// limitedThreshold is the highest available count still shown as limited.
const limitedThreshold = 2

// AvailabilityLabel returns the status label for an available count.
func AvailabilityLabel(available int) string {
	switch {
	case available <= 0:
		return AvailabilityHabis
	case available <= limitedThreshold:
		return AvailabilityTerbatas
	default:
		return AvailabilityTersedia
	}
}

// AvailabilityLabel returns the asset's stock status label.
func (a *Asset) AvailabilityLabel() string {
	return AvailabilityLabel(a.Available)
}

// Icons used by the asset list and dashboard.
const (
	IconPackage = "package"
	IconLadder  = "ladder"
	IconWrench  = "wrench"
)

// categoryIcons maps normalized category names to their icon. The mapping is
// decided here at the data layer, not inferred per render from free text.
var categoryIcons = map[string]string{
	"tangga":     IconLadder,
	"alat berat": IconWrench,
	"mesin":      IconWrench,
	"listrik":    IconWrench,
}

// CategoryIcon returns the icon for a category, defaulting to a generic
// package icon for unknown categories.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[strings.ToLower(strings.TrimSpace(category))]; ok {
		return icon
	}
	return IconPackage
}
