package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger checks one upstream dependency for /v1/ping.
type Pinger struct {
	Name string
	Ping func(ctx context.Context) error
}

// NewHTTPServer wires the API router into an http.Server.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, m *metrics.Metrics, pingers []Pinger, handlers *trivia.HTTPHandlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg.CORS, logger, m, pingers, handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the root router: base routes (health, metrics, ping) plus
// the trivia API.
func NewRouter(cors config.CORS, logger zerolog.Logger, m *metrics.Metrics, pingers []Pinger, handlers *trivia.HTTPHandlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger, m))
	r.Use(recoverJSON)
	r.Use(corsMiddleware(cors))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondMethodNotAllowed(w)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pingers); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	r.Mount("/", trivia.Routes(handlers))
	return r
}

func pingDependencies(ctx context.Context, pingers []Pinger) error {
	for _, p := range pingers {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
	}
	return nil
}
