package handlers

import (
	"net/http"
	"sort"

	"bannerkit/internal/domain"
)

type templateDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Style          string   `json:"style"`
	DefaultPalette []string `json:"default_palette"`
	Moods          []string `json:"moods"`
	Lightings      []string `json:"lightings"`
}

// TemplatesList exposes the fixed template catalog so clients render the
// picker from the server instead of hardcoding it.
func (a *App) TemplatesList(w http.ResponseWriter, r *http.Request) {
	ids := domain.TemplateIDs()
	sort.Strings(ids)

	items := make([]templateDTO, 0, len(ids))
	for _, id := range ids {
		tpl, ok := domain.ResolveTemplate(id)
		if !ok {
			continue
		}
		dto := templateDTO{
			ID:             tpl.ID,
			Name:           tpl.Name,
			Style:          string(tpl.Style),
			DefaultPalette: tpl.DefaultPalette,
		}
		for _, m := range tpl.Moods {
			dto.Moods = append(dto.Moods, string(m))
		}
		for _, l := range tpl.Lightings {
			dto.Lightings = append(dto.Lightings, string(l))
		}
		items = append(items, dto)
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
