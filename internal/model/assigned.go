package model

// AssignedAsset represents a tool permanently issued to one technician
// (inventaris_orang row). Tracked by condition rather than stock count, and
// mutated only via the condition-update call.
type AssignedAsset struct {
	ID           int64  `json:"id"`
	Name         string `json:"nama"`
	Owner        string `json:"orang"`
	Quantity     int    `json:"jumlah"`
	Condition    string `json:"kondisi,omitempty"`
	Remark       string `json:"keterangan,omitempty"`
	PhotoURL     string `json:"foto_url,omitempty"`
	TechnicianID string `json:"technician_id,omitempty"`
}

// Tool conditions, in the vocabulary the backend stores.
const (
	ConditionBaik        = "Baik"
	ConditionRusakRingan = "Rusak Ringan"
	ConditionRusakBerat  = "Rusak Berat"
	ConditionHilang      = "Hilang"
)

// Conditions lists the selectable conditions in display order.
func Conditions() []string {
	return []string{ConditionBaik, ConditionRusakRingan, ConditionRusakBerat, ConditionHilang}
}

// ValidCondition reports whether s is a known condition value.
func ValidCondition(s string) bool {
	for _, c := range Conditions() {
		if s == c {
			return true
		}
	}
	return false
}
