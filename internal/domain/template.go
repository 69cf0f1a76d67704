package domain

import "strings"

// Template describes a banner template's visual defaults. Templates are a
// fixed catalog; unknown IDs fail request validation.
type Template struct {
	ID             string
	Name           string
	Style          PromptStyle
	DefaultPalette []string
	Moods          []PromptMood
	Lightings      []PromptLighting
}

var templateCatalog = map[string]Template{
	"sketchy": {
		ID:             "sketchy",
		Name:           "Sketchy",
		Style:          StyleSketchy,
		DefaultPalette: []string{"#1F2933", "#F5F7FA", "#FF6B6B"},
		Moods:          []PromptMood{MoodPlayful, MoodCalm, MoodDreamy},
		Lightings:      []PromptLighting{LightingSoft, LightingNatural},
	},
	"flat": {
		ID:             "flat",
		Name:           "Flat",
		Style:          StyleFlat,
		DefaultPalette: []string{"#2563EB", "#F9FAFB", "#FBBF24"},
		Moods:          []PromptMood{MoodProfessional, MoodBold, MoodEnergetic},
		Lightings:      []PromptLighting{LightingStudio, LightingSoft},
	},
	"realistic": {
		ID:             "realistic",
		Name:           "Realistic",
		Style:          StyleRealistic,
		DefaultPalette: []string{"#334155", "#E2E8F0", "#0EA5E9"},
		Moods:          []PromptMood{MoodProfessional, MoodCalm},
		Lightings:      []PromptLighting{LightingGolden, LightingNatural, LightingDramatic},
	},
	"watercolor": {
		ID:             "watercolor",
		Name:           "Watercolor",
		Style:          StyleWatercolor,
		DefaultPalette: []string{"#7C3AED", "#FDF2F8", "#34D399"},
		Moods:          []PromptMood{MoodDreamy, MoodCalm, MoodPlayful},
		Lightings:      []PromptLighting{LightingSoft, LightingGolden},
	},
	"geometric": {
		ID:             "geometric",
		Name:           "Geometric",
		Style:          StyleGeometric,
		DefaultPalette: []string{"#0F172A", "#38BDF8", "#F472B6"},
		Moods:          []PromptMood{MoodBold, MoodEnergetic, MoodProfessional},
		Lightings:      []PromptLighting{LightingNeon, LightingStudio},
	},
	"minimalist": {
		ID:             "minimalist",
		Name:           "Minimalist",
		Style:          StyleMinimalist,
		DefaultPalette: []string{"#111827", "#FFFFFF"},
		Moods:          []PromptMood{MoodCalm, MoodProfessional},
		Lightings:      []PromptLighting{LightingSoft, LightingStudio},
	},
	"retro": {
		ID:             "retro",
		Name:           "Retro",
		Style:          StyleRetro,
		DefaultPalette: []string{"#B45309", "#FEF3C7", "#991B1B"},
		Moods:          []PromptMood{MoodPlayful, MoodBold},
		Lightings:      []PromptLighting{LightingGolden, LightingDramatic},
	},
}

// ResolveTemplate looks up a template by ID.
func ResolveTemplate(id string) (Template, bool) {
	tpl, ok := templateCatalog[strings.ToLower(strings.TrimSpace(id))]
	return tpl, ok
}

// TemplateIDs lists the catalog in no particular order.
func TemplateIDs() []string {
	ids := make([]string, 0, len(templateCatalog))
	for id := range templateCatalog {
		ids = append(ids, id)
	}
	return ids
}
