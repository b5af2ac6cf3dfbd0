package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

// ListAssets returns the full catalog, sorted by name.
func (c *Client) ListAssets(ctx context.Context) ([]model.Asset, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "nama.asc")

	var assets []model.Asset
	if err := c.get(ctx, "inventaris_utama", query, &assets); err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return assets, nil
}

// GetAsset returns a catalog asset by identifier, or nil if absent.
func (c *Client) GetAsset(ctx context.Context, id int64) (*model.Asset, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", eq(strconv.FormatInt(id, 10)))
	query.Set("limit", "1")

	var assets []model.Asset
	if err := c.get(ctx, "inventaris_utama", query, &assets); err != nil {
		return nil, fmt.Errorf("getting asset %d: %w", id, err)
	}
	if len(assets) == 0 {
		return nil, nil
	}
	return &assets[0], nil
}

// ListAssetsByLocation returns catalog assets whose location field contains
// the given name. This is how directly-assigned tools are attributed to a
// technician on the dashboard.
func (c *Client) ListAssetsByLocation(ctx context.Context, name string) ([]model.Asset, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("lokasi", contains(name))

	var assets []model.Asset
	if err := c.get(ctx, "inventaris_utama", query, &assets); err != nil {
		return nil, fmt.Errorf("listing assets by location: %w", err)
	}
	return assets, nil
}
