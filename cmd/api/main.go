package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"bannerkit/internal/http/handlers"
	httpapi "bannerkit/internal/http/httpapi"
	"bannerkit/internal/infra"
	"bannerkit/internal/pipeline"
	"bannerkit/internal/providers/ideas"
	"bannerkit/internal/providers/ideogram"
	imageprovider "bannerkit/internal/providers/image"
	"bannerkit/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	st := store.New(runner)

	chat, err := ideas.NewOpenAIChat(ideas.OpenAIOptions{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure idea model")
	}
	ideaGen := ideas.NewGenerator(chat)

	httpClient := &http.Client{Timeout: 90 * time.Second}
	ideogramClient, err := ideogram.NewClient(ideogram.Options{
		APIKey:     cfg.IdeogramAPIKey,
		BaseURL:    cfg.IdeogramBaseURL,
		Model:      cfg.IdeogramModel,
		HTTPClient: httpClient,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure image backend")
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.ImageRatePerSec), cfg.ImageRateBurst)
	generator := imageprovider.NewIdeogramGenerator(ideogramClient, limiter)

	orchestrator := pipeline.NewOrchestrator(st, generator, cfg.GenerateFanout, logger)

	app := handlers.NewApp(st, logger, cfg, ideaGen, orchestrator)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
