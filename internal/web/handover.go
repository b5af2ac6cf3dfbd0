package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lacosdev-code/peminjaman/internal/backend"
	"github.com/lacosdev-code/peminjaman/internal/imaging"
	"github.com/lacosdev-code/peminjaman/internal/model"
)

type handoverData struct {
	PageData
	Asset      *model.Asset
	Conditions []string
	Type       string
	Condition  string
	Notes      string
}

// HandoverPage renders the borrow/return form for a catalog asset.
func (s *Server) HandoverPage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	tech := claims.Technician()

	asset, ok := s.loadHandoverAsset(w, r)
	if !ok {
		return
	}

	s.Templates.Render(w, "handover.html", handoverData{
		PageData:   PageData{Title: "Serah Terima", Technician: &tech},
		Asset:      asset,
		Conditions: model.Conditions(),
		Type:       model.TypePinjam,
		Condition:  model.ConditionBaik,
	})
}

// HandoverSubmit records a borrow or return through the backend procedure.
// Type and condition are validated before any network call; a failed photo
// upload never blocks the submission, the record just goes in without one.
func (s *Server) HandoverSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	tech := claims.Technician()

	asset, ok := s.loadHandoverAsset(w, r)
	if !ok {
		return
	}

	form := handoverData{
		PageData:   PageData{Title: "Serah Terima", Technician: &tech},
		Asset:      asset,
		Conditions: model.Conditions(),
		Type:       r.FormValue("type"),
		Condition:  r.FormValue("condition"),
		Notes:      r.FormValue("notes"),
	}

	if !model.ValidHandoverType(form.Type) {
		form.Error = "Pilih jenis transaksi"
		s.renderHandoverError(w, form)
		return
	}
	if !model.ValidCondition(form.Condition) {
		form.Error = "Pilih kondisi alat"
		s.renderHandoverError(w, form)
		return
	}

	photoURL := s.uploadPhoto(r, asset.ID)

	err := s.Backend.LogHandover(r.Context(), backend.HandoverRequest{
		ItemID:     asset.ID,
		Technician: tech.Name,
		Type:       form.Type,
		Condition:  form.Condition,
		Notes:      form.Notes,
		PhotoURL:   photoURL,
	})
	if err != nil {
		var backendErr *backend.Error
		if errors.As(err, &backendErr) {
			// The procedure's message is the user-facing verdict
			// (insufficient stock, nothing to return). Show it verbatim.
			form.Error = backendErr.Message
		} else {
			slog.Error("failed to log handover", "asset", asset.ID, "error", err)
			form.Error = "Tidak dapat menghubungi server, coba lagi"
		}
		s.renderHandoverError(w, form)
		return
	}

	slog.Info("handover recorded",
		"technician", tech.Name, "asset", asset.Name, "type", form.Type)

	form.Success = "Transaksi berhasil dicatat"
	form.Type = model.TypePinjam
	form.Condition = model.ConditionBaik
	form.Notes = ""
	s.Templates.Render(w, "handover.html", form)
}

// uploadPhoto prepares and uploads the captured photo, if any. Failures are
// logged and reported as an empty URL so the handover itself still goes
// through.
func (s *Server) uploadPhoto(r *http.Request, assetID int64) string {
	photoData := r.FormValue("photo_data")
	if photoData == "" || s.Images == nil || !s.Images.Enabled() {
		return ""
	}

	raw, err := imaging.DecodeDataURL(photoData)
	if err != nil {
		slog.Warn("discarding unreadable handover photo", "asset", assetID, "error", err)
		return ""
	}

	prepared, err := imaging.Prepare(raw)
	if err != nil {
		slog.Warn("discarding unusable handover photo", "asset", assetID, "error", err)
		return ""
	}

	fileName := fmt.Sprintf("handover-%d-%d.jpg", assetID, time.Now().Unix())
	url, err := s.Images.Upload(r.Context(), prepared, fileName)
	if err != nil {
		slog.Warn("photo upload failed, recording handover without photo",
			"asset", assetID, "error", err)
		return ""
	}
	return url
}

func (s *Server) loadHandoverAsset(w http.ResponseWriter, r *http.Request) (*model.Asset, bool) {
	assetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return nil, false
	}

	asset, err := s.Backend.GetAsset(r.Context(), assetID)
	if err != nil {
		slog.Error("failed to load asset", "asset", assetID, "error", err)
		http.Error(w, "backend unavailable", http.StatusBadGateway)
		return nil, false
	}
	if asset == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return asset, true
}

func (s *Server) renderHandoverError(w http.ResponseWriter, data handoverData) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.Templates.Render(w, "handover.html", data)
}
