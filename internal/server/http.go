package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-service/internal/config"
	"github.com/triviahub/trivia-service/internal/selection"
	"github.com/triviahub/trivia-service/internal/session"
)

// NewHTTPServer wires the API routes plus health, metrics and optional
// static file serving.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, questions *selection.HTTPHandler, sessions *session.HTTPHandler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /questions", questions.HandleGet)
	mux.HandleFunc("POST /sessions", sessions.HandleCreate)
	mux.HandleFunc("GET /sessions", sessions.HandleList)
	mux.HandleFunc("DELETE /sessions/{token}", sessions.HandleDelete)

	if cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: requestLogger(logger, mux),
	}
}

// requestLogger emits one line per handled request.
func requestLogger(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	})
}
