package domain

import "strings"

// MaxBrandListEntries caps the style/mood/lighting preference lists. The UI
// enforces the same limit; the server clamps again before persistence.
const MaxBrandListEntries = 3

// BrandTheme holds a user's brand settings applied during prompt composition.
// One theme per user, created on first access.
type BrandTheme struct {
	UserID          string   `json:"user_id"`
	ColorScheme     []string `json:"color_scheme"`
	PreferredStyles []string `json:"preferred_styles"`
	Mood            []string `json:"mood"`
	Lighting        []string `json:"lighting"`
}

// Clamp trims blank entries and enforces MaxBrandListEntries on each list.
func (b *BrandTheme) Clamp() {
	if b == nil {
		return
	}
	b.ColorScheme = cleanList(b.ColorScheme, 0)
	b.PreferredStyles = cleanList(b.PreferredStyles, MaxBrandListEntries)
	b.Mood = cleanList(b.Mood, MaxBrandListEntries)
	b.Lighting = cleanList(b.Lighting, MaxBrandListEntries)
}

// HasColors reports whether a color palette is configured.
func (b *BrandTheme) HasColors() bool {
	return b != nil && len(b.ColorScheme) > 0
}

func cleanList(values []string, limit int) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
