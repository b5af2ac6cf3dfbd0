package backend

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

const assignedColumns = "id,nama,orang,jumlah,kondisi,keterangan,foto_url,technician_id"

// ListAssignedAssets returns the tools permanently issued to a technician.
// Lookup is by technician identifier first; rows predating the identifier
// column fall back to an owner-name substring match.
func (c *Client) ListAssignedAssets(ctx context.Context, technicianID, technicianName string) ([]model.AssignedAsset, error) {
	query := url.Values{}
	query.Set("select", assignedColumns)
	query.Set("technician_id", eq(technicianID))

	var assets []model.AssignedAsset
	if err := c.get(ctx, "inventaris_orang", query, &assets); err != nil {
		return nil, fmt.Errorf("listing assigned assets: %w", err)
	}

	if len(assets) == 0 && technicianName != "" {
		query = url.Values{}
		query.Set("select", assignedColumns)
		query.Set("orang", contains(technicianName))

		if err := c.get(ctx, "inventaris_orang", query, &assets); err != nil {
			return nil, fmt.Errorf("listing assigned assets by name: %w", err)
		}
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

// UpdateAssetCondition sets an assigned asset's condition and bumps its
// update timestamp. The only mutation this record set supports.
func (c *Client) UpdateAssetCondition(ctx context.Context, assetID int64, condition string) error {
	query := url.Values{}
	query.Set("id", eq(strconv.FormatInt(assetID, 10)))

	fields := map[string]string{
		"kondisi":    condition,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.patch(ctx, "inventaris_orang", query, fields); err != nil {
		return fmt.Errorf("updating asset %d condition: %w", assetID, err)
	}
	return nil
}
