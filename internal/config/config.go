package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store backend selectors.
const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"

	CorpusSourcePostgres = "postgres"
	CorpusSourceDir      = "dir"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-service"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:3000"`
	StaticDir               string        `env:"STATIC_DIR"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Corpus   Corpus
	Session  Session
}

// Postgres captures connection info for the SQL database. Only required when
// the corpus source is postgres.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds session store configuration. Only required when the session
// store is redis.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Corpus controls where questions are loaded from and how often the snapshot
// is refreshed. A zero interval disables refreshing.
type Corpus struct {
	Source          string        `env:"CORPUS_SOURCE" envDefault:"postgres"`
	Dir             string        `env:"CORPUS_DIR" envDefault:"questions"`
	RefreshInterval time.Duration `env:"CORPUS_REFRESH_INTERVAL" envDefault:"0"`
}

// Session selects the session store backend.
type Session struct {
	Store string `env:"SESSION_STORE" envDefault:"redis"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.Corpus.Source {
	case CorpusSourcePostgres, CorpusSourceDir:
	default:
		return nil, fmt.Errorf("unknown CORPUS_SOURCE %q", cfg.Corpus.Source)
	}
	switch cfg.Session.Store {
	case SessionStoreRedis, SessionStoreMemory:
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Session.Store)
	}
	if cfg.Corpus.Source == CorpusSourcePostgres {
		if cfg.Postgres.User == "" || cfg.Postgres.Database == "" {
			return nil, fmt.Errorf("PG_USER and PG_DATABASE are required when CORPUS_SOURCE=postgres")
		}
	}
	return cfg, nil
}
