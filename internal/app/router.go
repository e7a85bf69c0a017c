package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acrodocs/acrodocs-backend/internal/config"
	"github.com/acrodocs/acrodocs-backend/internal/service/extraction"
	"github.com/acrodocs/acrodocs-backend/internal/transport/middleware"
	"github.com/acrodocs/acrodocs-backend/internal/transport/rest"
)

// newRouter assembles the HTTP routes and middleware chain. The returned
// stop function releases middleware resources (the rate limiter's cleanup
// goroutine).
func newRouter(cfg *config.Config, pool *pgxpool.Pool, svc *extraction.Service, logger *slog.Logger) (http.Handler, func()) {
	mux := http.NewServeMux()

	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	extractHandler := rest.NewExtractHandler(svc, cfg.Extraction.MaxUploadBytes, cfg.Lookup.Language, logger)
	mux.HandleFunc("POST /api/v1/extract", extractHandler.Extract)
	mux.HandleFunc("POST /api/v1/extract/csv", extractHandler.ExtractCSV)
	mux.HandleFunc("POST /api/v1/learn", extractHandler.Learn)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}

	stop := func() {}
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(time.Minute)
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
		stop = limiter.Stop
	}

	return middleware.Chain(mws...)(mux), stop
}
