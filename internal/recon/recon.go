// Package recon derives the "currently held tools" view shown on the
// dashboard. It merges three independently fetched sources: active loan
// records, directly assigned catalog assets, and a replay of recent activity
// logs. The merge is display-only and best-effort; it never feeds stock
// decisions.
package recon

import (
	"sort"
	"time"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

// Reconcile merges the three sources into one active-tools list, keyed by
// asset name.
//
// Precedence: loans seed the map first, then assigned assets fill names not
// already present, then logs are replayed oldest-first. A Pinjam log only
// inserts a name missing from both seeds; a Kembali log removes the name
// regardless of which source it came from. Logs therefore take precedence
// over live loan and assignment status, a compatibility rule inherited from
// the backend migration this view papers over.
//
// Logs must be passed newest-first, as the backend returns them; Reconcile
// reverses them for the replay.
func Reconcile(loans []model.Loan, assigned []model.Asset, logs []model.ActivityLog) []model.ActiveTool {
	tools := make(map[string]model.ActiveTool)

	for _, loan := range loans {
		if loan.Asset == nil {
			continue
		}
		condition := loan.InitialCondition
		if condition == "" {
			condition = model.ConditionBaik
		}
		var since time.Time
		if loan.BorrowedAt != nil {
			since = *loan.BorrowedAt
		}
		tools[loan.Asset.Name] = model.ActiveTool{
			Name:      loan.Asset.Name,
			ItemID:    loan.Asset.ID,
			Condition: condition,
			Since:     since,
			Source:    model.SourceLoan,
		}
	}

	for _, asset := range assigned {
		if _, ok := tools[asset.Name]; ok {
			continue
		}
		condition := asset.Condition
		if condition == "" {
			condition = model.ConditionBaik
		}
		since := time.Time{}
		if asset.UpdatedAt != nil {
			since = *asset.UpdatedAt
		} else if asset.CreatedAt != nil {
			since = *asset.CreatedAt
		}
		tools[asset.Name] = model.ActiveTool{
			Name:      asset.Name,
			ItemID:    asset.ID,
			Condition: condition,
			Since:     since,
			Source:    model.SourceAssignment,
		}
	}

	// Replay logs oldest first.
	for i := len(logs) - 1; i >= 0; i-- {
		log := logs[i]
		name := log.Details.ItemName
		switch log.Details.Type {
		case model.TypePinjam:
			if _, ok := tools[name]; !ok {
				condition := log.Details.Condition
				if condition == "" {
					condition = model.ConditionBaik
				}
				tools[name] = model.ActiveTool{
					Name:      name,
					ItemID:    log.Details.ItemID,
					Condition: condition,
					Since:     log.CreatedAt,
					Source:    model.SourceLog,
				}
			}
		case model.TypeKembali:
			delete(tools, name)
		}
	}

	result := make([]model.ActiveTool, 0, len(tools))
	for _, tool := range tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Since.Equal(result[j].Since) {
			return result[i].Since.After(result[j].Since)
		}
		return result[i].Name < result[j].Name
	})
	return result
}
