package domain

import "strings"

// PromptStyle enumerates supported visual styles for composed prompts.
type PromptStyle string

const (
	StyleSketchy      PromptStyle = "sketchy"
	StyleFlat         PromptStyle = "flat"
	StyleRealistic    PromptStyle = "realistic"
	StyleWatercolor   PromptStyle = "watercolor"
	StyleGeometric    PromptStyle = "geometric"
	StyleThreeD       PromptStyle = "3d"
	StyleMinimalist   PromptStyle = "minimalist"
	StyleRetro        PromptStyle = "retro"
	StylePhotographic PromptStyle = "photographic"
)

// PromptMood enumerates supported moods.
type PromptMood string

const (
	MoodPlayful      PromptMood = "playful"
	MoodProfessional PromptMood = "professional"
	MoodCalm         PromptMood = "calm"
	MoodEnergetic    PromptMood = "energetic"
	MoodDreamy       PromptMood = "dreamy"
	MoodBold         PromptMood = "bold"
)

// PromptLighting enumerates supported lighting treatments.
type PromptLighting string

const (
	LightingSoft     PromptLighting = "soft"
	LightingStudio   PromptLighting = "studio"
	LightingGolden   PromptLighting = "golden hour"
	LightingNeon     PromptLighting = "neon"
	LightingNatural  PromptLighting = "natural"
	LightingDramatic PromptLighting = "dramatic"
)

// NormalizeStyle sanitizes free-form input into a supported style.
func NormalizeStyle(style string) PromptStyle {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case string(StyleFlat):
		return StyleFlat
	case string(StyleRealistic):
		return StyleRealistic
	case string(StyleWatercolor):
		return StyleWatercolor
	case string(StyleGeometric):
		return StyleGeometric
	case string(StyleThreeD):
		return StyleThreeD
	case string(StyleMinimalist):
		return StyleMinimalist
	case string(StyleRetro):
		return StyleRetro
	case string(StylePhotographic):
		return StylePhotographic
	default:
		return StyleSketchy
	}
}

// ComposedPrompt is a final natural-language image prompt. It is built once
// per requested output and consumed exactly once by the image backend.
type ComposedPrompt struct {
	Text           string              `json:"text"`
	Style          PromptStyle         `json:"style"`
	Mood           PromptMood          `json:"mood"`
	Lighting       PromptLighting      `json:"lighting"`
	SourceElements []VisualElementIdea `json:"source_elements,omitempty"`
}

// PromptSource is the tagged input variant for composition: either a topic
// with checked visual elements, or a raw prompt supplied by the user.
type PromptSource struct {
	Topic    string
	Elements []VisualElementIdea
	RawText  string
}

// FromTopic builds a topic-driven source.
func FromTopic(topic string, elements []VisualElementIdea) PromptSource {
	return PromptSource{Topic: topic, Elements: elements}
}

// FromRawPrompt builds a raw-text source that bypasses element brainstorming.
func FromRawPrompt(text string) PromptSource {
	return PromptSource{RawText: text}
}

// HasVisualElements reports whether at least one checked element is present.
func (s PromptSource) HasVisualElements() bool {
	for _, el := range s.Elements {
		if el.Checked && strings.TrimSpace(el.Text) != "" {
			return true
		}
	}
	return false
}

// IsRaw reports whether the source is a raw prompt override.
func (s PromptSource) IsRaw() bool {
	return strings.TrimSpace(s.RawText) != ""
}

// GenerationRequest is the orchestrator's unit of work. It is owned by the
// orchestrator for the duration of the batch and never persisted itself.
type GenerationRequest struct {
	UserID               string
	TemplateID           string
	Prompts              []ComposedPrompt
	AspectRatio          string
	RequestedOutputCount int
	PostTopic            string
	BrandOverrides       *BrandTheme
	UseBrandColors       bool
}
