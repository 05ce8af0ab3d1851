package question

import (
	"context"
	"fmt"
	"sync"
)

// Source supplies the full question pool from some backing medium
// (Postgres repository, JSON directory). Implementations must return
// every record; filtering happens at selection time.
type Source interface {
	ListQuestions(ctx context.Context) ([]Question, error)
}

// Corpus holds an in-memory snapshot of the question pool. The snapshot is
// immutable once published; Reload swaps the whole slice under the lock, so
// readers never observe a partially loaded pool.
type Corpus struct {
	source Source

	mu        sync.RWMutex
	questions []Question
}

// NewCorpus builds a corpus backed by source. Call Reload before serving.
func NewCorpus(source Source) *Corpus {
	return &Corpus{source: source}
}

// Reload replaces the snapshot with a fresh read of the source.
func (c *Corpus) Reload(ctx context.Context) error {
	questions, err := c.source.ListQuestions(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	c.mu.Lock()
	c.questions = questions
	c.mu.Unlock()
	return nil
}

// Snapshot returns the current question pool. Callers may read the returned
// slice freely but must not mutate it; Reload never touches a published slice.
func (c *Corpus) Snapshot() []Question {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.questions
}

// Len reports the snapshot size.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.questions)
}
