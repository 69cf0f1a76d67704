package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	cache "github.com/patrickmn/go-cache"

	"bannerkit/internal/domain"
	"bannerkit/internal/infra"
	"bannerkit/internal/middleware"
	"bannerkit/internal/pipeline"
	"bannerkit/internal/providers/ideas"
	"bannerkit/internal/store"
)

// IdeaGenerator is the brainstorming dependency of the ideas handler.
type IdeaGenerator interface {
	GenerateIdeas(ctx context.Context, req ideas.IdeasRequest) ([]domain.VisualElementIdea, error)
}

// BatchRunner is the generation dependency of the banners handler.
type BatchRunner interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*pipeline.BatchResult, error)
}

// App bundles the handler dependencies injected from cmd/api.
type App struct {
	Store    *store.Store
	Logger   infra.Logger
	Config   *infra.Config
	Ideas    IdeaGenerator
	Pipeline BatchRunner
	// Sessions remembers which idea texts were already shown to a user for a
	// topic, so regeneration carries a merged exclude list server-side.
	Sessions *cache.Cache
}

func NewApp(st *store.Store, logger infra.Logger, cfg *infra.Config, ideaGen IdeaGenerator, runner BatchRunner) *App {
	return &App{
		Store:    st,
		Logger:   logger,
		Config:   cfg,
		Ideas:    ideaGen,
		Pipeline: runner,
		Sessions: cache.New(cfg.IdeaSessionTTL, 2*cfg.IdeaSessionTTL),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": errCode, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
