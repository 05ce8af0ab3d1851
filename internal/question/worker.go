package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RefreshWorker periodically reloads the corpus snapshot so externally
// authored questions become visible without a restart.
type RefreshWorker struct {
	corpus   *Corpus
	logger   zerolog.Logger
	interval time.Duration
}

func NewRefreshWorker(corpus *Corpus, interval time.Duration, logger zerolog.Logger) *RefreshWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RefreshWorker{
		corpus:   corpus,
		logger:   logger.With().Str("component", "corpus_refresh_worker").Logger(),
		interval: interval,
	}
}

// Run blocks until context cancellation.
func (w *RefreshWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.corpus.Reload(ctx); err != nil {
				w.logger.Warn().Err(err).Msg("corpus reload failed, keeping previous snapshot")
				continue
			}
			w.logger.Info().Int("questions", w.corpus.Len()).Msg("corpus snapshot refreshed")
		}
	}
}
