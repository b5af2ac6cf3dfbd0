package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

type personalAssetsData struct {
	PageData
	Assets     []model.AssignedAsset
	Conditions []string
	Failed     bool
}

// PersonalAssetsPage lists the tools permanently issued to the technician.
func (s *Server) PersonalAssetsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	tech := claims.Technician()

	data := personalAssetsData{
		PageData:   PageData{Title: "Alat Pribadi", Technician: &tech},
		Conditions: model.Conditions(),
	}

	switch r.URL.Query().Get("updated") {
	case "1":
		data.Success = "Kondisi alat berhasil diperbarui"
	}

	assets, err := s.Backend.ListAssignedAssets(r.Context(), tech.ID, tech.Name)
	if err != nil {
		slog.Error("failed to list assigned assets", "technician", tech.Name, "error", err)
		data.Failed = true
		s.Templates.Render(w, "personal_assets.html", data)
		return
	}

	data.Assets = assets
	s.Templates.Render(w, "personal_assets.html", data)
}

// PersonalAssetConditionSubmit updates the reported condition of an issued
// tool. The condition value is validated before the backend is contacted.
func (s *Server) PersonalAssetConditionSubmit(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	condition := r.FormValue("condition")
	if !model.ValidCondition(condition) {
		http.Error(w, "invalid condition", http.StatusBadRequest)
		return
	}

	if err := s.Backend.UpdateAssetCondition(r.Context(), assetID, condition); err != nil {
		slog.Error("failed to update asset condition", "asset", assetID, "error", err)

		claims := GetClaims(r.Context())
		tech := claims.Technician()
		w.WriteHeader(http.StatusBadGateway)
		s.Templates.Render(w, "personal_assets.html", personalAssetsData{
			PageData: PageData{
				Title:      "Alat Pribadi",
				Technician: &tech,
				Error:      "Gagal memperbarui kondisi alat, coba lagi",
			},
			Conditions: model.Conditions(),
			Failed:     true,
		})
		return
	}

	http.Redirect(w, r, "/personal-assets?updated=1", http.StatusSeeOther)
}
