package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

type assetsData struct {
	PageData
	Assets []model.Asset
	Query  string
	Failed bool
}

// AssetsPage lists the shared tool catalog, filtered by the search query
// across name, category and location.
func (s *Server) AssetsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	tech := claims.Technician()

	query := strings.TrimSpace(r.URL.Query().Get("q"))

	data := assetsData{
		PageData: PageData{Title: "Daftar Alat", Technician: &tech},
		Query:    query,
	}

	assets, err := s.Backend.ListAssets(r.Context())
	if err != nil {
		slog.Error("failed to list assets", "error", err)
		data.Failed = true
		s.Templates.Render(w, "assets.html", data)
		return
	}

	data.Assets = filterAssets(assets, query)
	s.Templates.Render(w, "assets.html", data)
}

func filterAssets(assets []model.Asset, query string) []model.Asset {
	if query == "" {
		return assets
	}

	needle := strings.ToLower(query)
	filtered := make([]model.Asset, 0, len(assets))
	for _, asset := range assets {
		if strings.Contains(strings.ToLower(asset.Name), needle) ||
			strings.Contains(strings.ToLower(asset.Category), needle) ||
			strings.Contains(strings.ToLower(asset.Location), needle) {
			filtered = append(filtered, asset)
		}
	}
	return filtered
}
