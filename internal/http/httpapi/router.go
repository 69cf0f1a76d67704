package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"bannerkit/internal/http/handlers"
	"bannerkit/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS([]string{"http://localhost:3000"}),
		middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/templates", app.TemplatesList)
	r.Post("/v1/auth/login", app.AuthLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.Config.JWTSecret))

		r.Get("/v1/credits", app.CreditsGet)
		r.Post("/v1/ideas", app.IdeasGenerate)

		r.Route("/v1/banners", func(r chi.Router) {
			r.Post("/generate", app.BannersGenerate)
			r.Get("/", app.BannersList)
			r.Get("/zip", app.BannersZip)
			r.Post("/{banner_id}/save", app.BannerSave)
			r.Delete("/{banner_id}", app.BannerDelete)
		})

		r.Route("/v1/brand", func(r chi.Router) {
			r.Get("/", app.BrandGet)
			r.Put("/", app.BrandPut)
		})
	})

	return r
}
