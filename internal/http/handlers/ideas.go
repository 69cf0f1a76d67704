package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bannerkit/internal/domain"
	"bannerkit/internal/providers/ideas"
)

type ideasRequest struct {
	Topic      string   `json:"topic"`
	TemplateID string   `json:"template_id"`
	Count      int      `json:"count"`
	// Discarded carries idea texts the user dismissed this session; the
	// server merges them with everything it already showed for the topic.
	Discarded []string `json:"discarded"`
}

type ideasResponse struct {
	Ideas       []domain.VisualElementIdea `json:"ideas"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

func (a *App) IdeasGenerate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req ideasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "topic required")
		return
	}
	if req.Count <= 0 {
		req.Count = 6
	}
	tpl, _ := domain.ResolveTemplate(req.TemplateID)

	sessionKey := ideaSessionKey(userID, req.Topic)
	exclude := append(a.shownIdeas(sessionKey), req.Discarded...)

	result, err := a.Ideas.GenerateIdeas(r.Context(), ideas.IdeasRequest{
		Topic:    req.Topic,
		Template: tpl,
		Count:    req.Count,
		Exclude:  dedupeTexts(exclude),
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("idea generation failed")
		a.error(w, http.StatusBadGateway, "upstream", "idea generation failed")
		return
	}

	a.rememberIdeas(sessionKey, result)
	a.json(w, http.StatusOK, ideasResponse{Ideas: result, GeneratedAt: time.Now()})
}

func ideaSessionKey(userID, topic string) string {
	return userID + "|" + strings.ToLower(strings.TrimSpace(topic))
}

func (a *App) shownIdeas(key string) []string {
	if v, ok := a.Sessions.Get(key); ok {
		if texts, ok := v.([]string); ok {
			return texts
		}
	}
	return nil
}

func (a *App) rememberIdeas(key string, generated []domain.VisualElementIdea) {
	texts := a.shownIdeas(key)
	for _, idea := range generated {
		texts = append(texts, idea.Text)
	}
	a.Sessions.SetDefault(key, dedupeTexts(texts))
}

func dedupeTexts(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	var out []string
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
