package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"bannerkit/internal/compose"
	"bannerkit/internal/domain"
	"bannerkit/pkg/zip"
)

type bannerGenerateRequest struct {
	Topic          string                     `json:"topic"`
	RawPrompt      string                     `json:"raw_prompt"`
	TemplateID     string                     `json:"template_id"`
	AspectRatio    string                     `json:"aspect_ratio"`
	Count          int                        `json:"count"`
	Elements       []domain.VisualElementIdea `json:"elements"`
	UseBrandColors bool                       `json:"use_brand_colors"`
}

type bannerFailureDTO struct {
	Prompt string `json:"prompt"`
	Reason string `json:"reason"`
}

type bannerGenerateResponse struct {
	Succeeded        []domain.GeneratedImageRecord `json:"succeeded"`
	Failed           []bannerFailureDTO            `json:"failed"`
	RemainingCredits int                           `json:"remaining_credits"`
}

func (a *App) BannersGenerate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req bannerGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "1:1"
	}
	tpl, ok := domain.ResolveTemplate(req.TemplateID)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("unknown template %q", req.TemplateID))
		return
	}

	brand, err := a.Store.GetBrandTheme(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("load brand theme failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load brand settings")
		return
	}

	source := domain.FromTopic(req.Topic, req.Elements)
	if strings.TrimSpace(req.RawPrompt) != "" {
		source = domain.FromRawPrompt(req.RawPrompt)
	}
	prompts, err := compose.Compose(compose.Input{
		Source:         source,
		Template:       tpl,
		Brand:          brand,
		UseBrandColors: req.UseBrandColors,
		Count:          req.Count,
	})
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result, err := a.Pipeline.Generate(r.Context(), domain.GenerationRequest{
		UserID:               userID,
		TemplateID:           tpl.ID,
		Prompts:              prompts,
		AspectRatio:          req.AspectRatio,
		RequestedOutputCount: req.Count,
		PostTopic:            strings.TrimSpace(req.Topic),
		BrandOverrides:       brand,
		UseBrandColors:       req.UseBrandColors,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		case errors.Is(err, domain.ErrInsufficientCredits):
			a.error(w, http.StatusPaymentRequired, "insufficient_credits", "no credits remaining")
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "user not found")
		default:
			a.Logger.Error().Err(err).Str("user_id", userID).Msg("banner generation failed")
			a.error(w, http.StatusInternalServerError, "internal", "banner generation failed")
		}
		return
	}

	remaining, err := a.Store.CreditBalance(r.Context(), userID)
	if err != nil {
		a.Logger.Warn().Err(err).Str("user_id", userID).Msg("read remaining credits failed")
	}
	resp := bannerGenerateResponse{
		Succeeded:        result.Succeeded,
		Failed:           make([]bannerFailureDTO, 0, len(result.Failed)),
		RemainingCredits: remaining,
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, bannerFailureDTO{Prompt: f.Prompt.Text, Reason: f.Reason})
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) BannersList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	records, err := a.Store.ListImageRecords(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list banners")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": records})
}

func (a *App) BannerSave(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	bannerID := chi.URLParam(r, "banner_id")
	if bannerID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "banner_id required")
		return
	}
	if err := a.Store.MarkImageSaved(r.Context(), bannerID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "banner not found")
		case errors.Is(err, domain.ErrAlreadySaved):
			a.error(w, http.StatusConflict, "already_saved", "banner is already saved")
		default:
			a.error(w, http.StatusInternalServerError, "internal", "failed to save banner")
		}
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": bannerID, "saved": true})
}

func (a *App) BannerDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	bannerID := chi.URLParam(r, "banner_id")
	if bannerID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "banner_id required")
		return
	}
	if err := a.Store.DeleteImageRecordOwned(r.Context(), bannerID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "banner not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete banner")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BannersZip exports the caller's saved banners as a zip of per-banner JSON
// manifests (URL, prompt, seed); the image bytes live at the backend URLs.
func (a *App) BannersZip(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	records, err := a.Store.ListImageRecords(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list banners")
		return
	}
	var entries []zip.Entry
	for _, rec := range records {
		if !rec.Saved {
			continue
		}
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			continue
		}
		entries = append(entries, zip.Entry{Name: fmt.Sprintf("banner-%s.json", rec.ID), Data: data})
	}
	if len(entries) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no saved banners")
		return
	}
	archive := zip.Archive(entries)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=banners.zip")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
