package compose

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bannerkit/internal/domain"
)

// Input carries everything needed to build the prompts for one batch.
type Input struct {
	Source         domain.PromptSource
	Template       domain.Template
	Brand          *domain.BrandTheme
	UseBrandColors bool
	Count          int
}

var titleCaser = cases.Title(language.English)

// Compose expands the source into Count distinct image prompts. Style, mood,
// and lighting are drawn from the brand lists when present (template defaults
// otherwise) and distributed round-robin with offset stepping per axis, so a
// batch spreads across combinations instead of repeating one. Texts in a
// single batch are guaranteed pairwise distinct.
func Compose(in Input) ([]domain.ComposedPrompt, error) {
	if in.Count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1", domain.ErrValidation)
	}
	if !in.Source.IsRaw() {
		if strings.TrimSpace(in.Source.Topic) == "" {
			return nil, fmt.Errorf("%w: topic is required", domain.ErrValidation)
		}
		if !in.Source.HasVisualElements() {
			return nil, fmt.Errorf("%w: at least one visual element must be selected", domain.ErrValidation)
		}
	}

	styles := stylePool(in.Brand, in.Template)
	moods := moodPool(in.Brand, in.Template)
	lightings := lightingPool(in.Brand, in.Template)
	elements := checkedElements(in.Source)

	prompts := make([]domain.ComposedPrompt, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		// Per-axis offsets keep short pools from locking axes together:
		// mood and lighting advance from different starting points, so
		// consecutive outputs differ on more than one axis.
		style := styles[i%len(styles)]
		mood := moods[(i+i/len(moods))%len(moods)]
		lighting := lightings[(i+1)%len(lightings)]

		prompts = append(prompts, domain.ComposedPrompt{
			Text:           buildPromptText(in, elements, style, mood, lighting, i),
			Style:          style,
			Mood:           mood,
			Lighting:       lighting,
			SourceElements: elements,
		})
	}
	return prompts, nil
}

func buildPromptText(in Input, elements []domain.VisualElementIdea, style domain.PromptStyle, mood domain.PromptMood, lighting domain.PromptLighting, index int) string {
	sb := &strings.Builder{}
	if in.Source.IsRaw() {
		sb.WriteString(strings.TrimSpace(in.Source.RawText))
	} else {
		fmt.Fprintf(sb, "A %s banner illustration about %s", style, titleCaser.String(strings.TrimSpace(in.Source.Topic)))
		if len(elements) > 0 {
			sb.WriteString(", featuring ")
			sb.WriteString(joinElementTexts(elements))
		}
		sb.WriteString(".")
	}
	fmt.Fprintf(sb, " Style: %s. Mood: %s. Lighting: %s.", style, mood, lighting)
	if in.UseBrandColors && in.Brand.HasColors() {
		fmt.Fprintf(sb, " Use the brand color palette: %s.", strings.Join(in.Brand.ColorScheme, ", "))
	}
	if in.Count > 1 {
		// The marker keeps texts distinct even when every pool has one entry.
		fmt.Fprintf(sb, " Variation %d of %d.", index+1, in.Count)
	}
	return sb.String()
}

func checkedElements(src domain.PromptSource) []domain.VisualElementIdea {
	var out []domain.VisualElementIdea
	for _, el := range src.Elements {
		if el.Checked && strings.TrimSpace(el.Text) != "" {
			out = append(out, el)
		}
	}
	return out
}

func joinElementTexts(elements []domain.VisualElementIdea) string {
	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		texts = append(texts, strings.TrimSpace(el.Text))
	}
	if len(texts) == 1 {
		return texts[0]
	}
	return strings.Join(texts[:len(texts)-1], ", ") + " and " + texts[len(texts)-1]
}

func stylePool(brand *domain.BrandTheme, tpl domain.Template) []domain.PromptStyle {
	if brand != nil && len(brand.PreferredStyles) > 0 {
		pool := make([]domain.PromptStyle, 0, len(brand.PreferredStyles))
		for _, s := range brand.PreferredStyles {
			pool = append(pool, domain.NormalizeStyle(s))
		}
		return pool
	}
	return []domain.PromptStyle{tpl.Style}
}

func moodPool(brand *domain.BrandTheme, tpl domain.Template) []domain.PromptMood {
	if brand != nil && len(brand.Mood) > 0 {
		pool := make([]domain.PromptMood, 0, len(brand.Mood))
		for _, m := range brand.Mood {
			pool = append(pool, domain.PromptMood(strings.ToLower(strings.TrimSpace(m))))
		}
		return pool
	}
	if len(tpl.Moods) > 0 {
		return tpl.Moods
	}
	return []domain.PromptMood{domain.MoodProfessional}
}

func lightingPool(brand *domain.BrandTheme, tpl domain.Template) []domain.PromptLighting {
	if brand != nil && len(brand.Lighting) > 0 {
		pool := make([]domain.PromptLighting, 0, len(brand.Lighting))
		for _, l := range brand.Lighting {
			pool = append(pool, domain.PromptLighting(strings.ToLower(strings.TrimSpace(l))))
		}
		return pool
	}
	if len(tpl.Lightings) > 0 {
		return tpl.Lightings
	}
	return []domain.PromptLighting{domain.LightingSoft}
}
