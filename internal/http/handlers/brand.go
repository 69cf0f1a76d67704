package handlers

import (
	"encoding/json"
	"net/http"

	"bannerkit/internal/domain"
)

type brandThemeDTO struct {
	ColorScheme     []string `json:"color_scheme"`
	PreferredStyles []string `json:"preferred_styles"`
	Mood            []string `json:"mood"`
	Lighting        []string `json:"lighting"`
}

func (a *App) BrandGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	theme, err := a.Store.GetBrandTheme(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load brand settings")
		return
	}
	a.json(w, http.StatusOK, brandThemeDTO{
		ColorScheme:     theme.ColorScheme,
		PreferredStyles: theme.PreferredStyles,
		Mood:            theme.Mood,
		Lighting:        theme.Lighting,
	})
}

func (a *App) BrandPut(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var dto brandThemeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	theme := &domain.BrandTheme{
		UserID:          userID,
		ColorScheme:     dto.ColorScheme,
		PreferredStyles: dto.PreferredStyles,
		Mood:            dto.Mood,
		Lighting:        dto.Lighting,
	}
	if err := a.Store.UpsertBrandTheme(r.Context(), theme); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to store brand settings")
		return
	}
	a.json(w, http.StatusOK, brandThemeDTO{
		ColorScheme:     theme.ColorScheme,
		PreferredStyles: theme.PreferredStyles,
		Mood:            theme.Mood,
		Lighting:        theme.Lighting,
	})
}
