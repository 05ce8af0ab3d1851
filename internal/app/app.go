package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-service/internal/config"
	"github.com/triviahub/trivia-service/internal/db/repository"
	"github.com/triviahub/trivia-service/internal/logging"
	"github.com/triviahub/trivia-service/internal/question"
	"github.com/triviahub/trivia-service/internal/selection"
	"github.com/triviahub/trivia-service/internal/server"
	"github.com/triviahub/trivia-service/internal/session"
)

// Application aggregates shared infrastructure (DB, session store, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	refreshWorker *question.RefreshWorker
	bgCancels     []context.CancelFunc
}

// New bootstraps config, logger, corpus, session store and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	app := &Application{
		cfg:       cfg,
		logger:    logger,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}

	var corpusSource question.Source
	switch cfg.Corpus.Source {
	case config.CorpusSourcePostgres:
		connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

		pool, err := pgxpool.New(ctx, connString)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		app.pool = pool
		corpusSource = repository.NewQuestionRepository(pool)
	case config.CorpusSourceDir:
		corpusSource = question.NewDirSource(cfg.Corpus.Dir, logger)
	default:
		return nil, fmt.Errorf("unknown corpus source %q", cfg.Corpus.Source)
	}

	corpus := question.NewCorpus(corpusSource)
	if err := corpus.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial corpus load: %w", err)
	}
	logger.Info().Int("questions", corpus.Len()).Str("source", cfg.Corpus.Source).Msg("corpus loaded")

	var sessionStore session.Store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		sessionStore = session.NewRedisStore(app.redis, logger)
	case config.SessionStoreMemory:
		logger.Warn().Msg("using in-memory session store; sessions do not survive restarts")
		sessionStore = session.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}

	selectionSvc := selection.NewService(corpus, sessionStore, logger)
	questionsHandler := selection.NewHTTPHandler(selectionSvc, logger)
	sessionsHandler := session.NewHTTPHandler(sessionStore, logger)

	app.http = server.NewHTTPServer(cfg, logger, questionsHandler, sessionsHandler)

	if cfg.Corpus.RefreshInterval > 0 {
		app.refreshWorker = question.NewRefreshWorker(corpus, cfg.Corpus.RefreshInterval, logger)
	}

	return app, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.refreshWorker != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.refreshWorker.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("corpus refresh worker stopped")
			}
		}()
	}
}
