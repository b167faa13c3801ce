package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/puckboard/puckboard/internal/api/handler"
	"github.com/puckboard/puckboard/internal/cache"
	"github.com/puckboard/puckboard/internal/config"
	"github.com/puckboard/puckboard/internal/db"
	"github.com/puckboard/puckboard/internal/repo"
	"github.com/puckboard/puckboard/internal/service"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *db.Pool, memo *cache.Memo, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	svc := service.New(repo.New(pool.Pool), cfg.DefaultTeam)
	h := handler.New(svc, pool, memo, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/seasons", h.GetSeasons)
		r.Get("/teams", h.GetTeams)
		r.Get("/updated", h.GetUpdated)

		r.Get("/skaters", h.GetSkaters)
		r.Get("/skaters/all-time", h.GetSkatersAllTime)
		r.Get("/goalies", h.GetGoalies)
		r.Get("/goalies/all-time", h.GetGoaliesAllTime)

		r.Get("/leaderboard/regular", h.GetRegularLeaderboard)
		r.Get("/leaderboard/playoffs", h.GetPlayoffLeaderboard)
	})

	return r
}
