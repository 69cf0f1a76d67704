package ideas

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bannerkit/internal/domain"
)

const (
	minIdeaCount = 1
	maxIdeaCount = 20
)

// IdeasRequest describes one brainstorming call.
type IdeasRequest struct {
	Topic    string
	Template domain.Template
	Count    int
	// Exclude carries previously shown and previously discarded idea texts so
	// regeneration does not repeat suggestions. Merging and deduping the
	// lists is the caller's job.
	Exclude []string
}

// Generator turns a banner topic into short visual-element suggestions.
type Generator struct {
	llm ChatClient
}

func NewGenerator(llm ChatClient) *Generator {
	return &Generator{llm: llm}
}

type elementsPayload struct {
	Elements []string `json:"elements"`
}

// GenerateIdeas asks the language model for Count visual-element candidates.
// A malformed or empty model response fails closed with ErrUpstream; ideas
// are never substituted locally.
func (g *Generator) GenerateIdeas(ctx context.Context, req IdeasRequest) ([]domain.VisualElementIdea, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", domain.ErrValidation)
	}
	count := req.Count
	if count < minIdeaCount {
		count = minIdeaCount
	}
	if count > maxIdeaCount {
		count = maxIdeaCount
	}

	raw, err := g.llm.Complete(ctx, ideasSystemPrompt, buildIdeasUserPrompt(topic, req.Template, count, req.Exclude))
	if err != nil {
		return nil, fmt.Errorf("%w: idea generation: %v", domain.ErrUpstream, err)
	}
	payload, err := parseElementsPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: idea generation: %v", domain.ErrUpstream, err)
	}

	seen := make(map[string]struct{}, len(payload.Elements))
	out := make([]domain.VisualElementIdea, 0, count)
	for _, text := range payload.Elements {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, domain.VisualElementIdea{Text: text})
		if len(out) == count {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: idea generation returned no usable elements", domain.ErrUpstream)
	}
	return out, nil
}

const ideasSystemPrompt = "You are a creative director brainstorming banner imagery. Respond strictly with valid JSON."

func buildIdeasUserPrompt(topic string, tpl domain.Template, count int, exclude []string) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Suggest %d distinct visual elements that could appear in a banner image about %q.", count, topic)
	if tpl.ID != "" {
		fmt.Fprintf(sb, " The banner uses the %q template in a %s style; favor elements that suit it.", tpl.Name, tpl.Style)
	}
	sb.WriteString(` Each element is a short noun phrase of at most five words. Respond as JSON: {"elements":[string]}.`)
	if len(exclude) > 0 {
		fmt.Fprintf(sb, " Do not repeat any of these already-suggested elements: %s.", strings.Join(exclude, "; "))
	}
	return sb.String()
}

func parseElementsPayload(raw string) (*elementsPayload, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	var payload elementsPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode elements payload: %v", err)
	}
	if len(payload.Elements) == 0 {
		return nil, fmt.Errorf("elements payload missing required field")
	}
	return &payload, nil
}
