package model

import "time"

// Sources an active tool entry can be derived from.
const (
	SourceLoan       = "loan"
	SourceAssignment = "assignment"
	SourceLog        = "log"
)

// ActiveTool is one entry of the reconciled "currently held tools" view.
// A best-effort derived projection, not a ledger: duplicate or stale entries
// are possible and are not corrected locally.
type ActiveTool struct {
	Name      string    `json:"name"`
	ItemID    int64     `json:"item_id,omitempty"`
	Condition string    `json:"condition"`
	Since     time.Time `json:"since"`
	Source    string    `json:"source"`
}
